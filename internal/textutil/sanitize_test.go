package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeControl(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"safe", "plain text", "plain text"},
		{"escape sequence", "bad\x1b[31mred", "bad^[[31mred"},
		{"backspace", "a\bb", "a^Hb"},
		{"delete", "x\x7f", "x^?"},
		{"unicode untouched", "héllo 世界", "héllo 世界"},
		{"c1 csi", "a\u009b31mb", "a<9B>31mb"},
		{"c1 osc", "\u009d0;title\u009c", "<9D>0;title<9C>"},
		{"bidi override", "abc\u202Edef", "abc⟪RLO⟫def"},
		{"zero width space", "a\u200Bb", "a⟪ZWSP⟫b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeControl(tt.text))
		})
	}
}
