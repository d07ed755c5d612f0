// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFitText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays", "buy milk", 34, "buy milk"},
		{"ascii truncated", "a very long task title indeed", 10, "a very ..."},
		{"tiny max", "abcdef", 2, "ab"},
		{"zero max", "abcdef", 0, "abcdef"},
		{"multibyte truncated", "позвонить маме завтра в десять", 10, "позвони..."},
		{"multibyte fits by runes", "позвонить", 9, "позвонить"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fitText(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
