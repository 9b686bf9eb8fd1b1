//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Research builds the CLI and runs one interactive research session.
// The provider key is read from $TAVILY_API_KEY or .secrets/tavily-api-key.
func Research() error {
	mg.Deps(Build)
	cmd := exec.Command(filepath.Join(binDir, binName), "research")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("research: %w", err)
	}
	return nil
}

// History lists the most recent recorded research runs.
func History() error {
	return sh.RunV("go", "run", cmdPkg, "history", "list")
}
