// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "short", 10, "short"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"ascii", "abcdefghijklmnop", 10, "abcdefg..."},
		{"cjk", "a" + strings.Repeat("日", 30), 10, "a日日日日日日..."},
		{"tiny max", "abcdef", 2, "ab"},
		{"zero max", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateMultiByteStaysValid(t *testing.T) {
	in := strings.Repeat("é日🙂", 50)
	for max := 1; max < 40; max++ {
		got := Truncate(in, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), max)
	}
}
