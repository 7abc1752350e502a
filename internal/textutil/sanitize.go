package textutil

import "strings"

const hexDigits = "0123456789ABCDEF"

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeControl makes text safe to write to the terminal. C0 controls and
// DEL use caret notation (ESC becomes "^["), C1 controls are shown as hex
// ("<9B>") and bidi or zero-width formatting runes get a visible label.
func SanitizeControl(text string) string {
	if !strings.ContainsFunc(text, needsSanitizing) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		switch {
		case isControl(r):
			b.WriteByte('^')
			if r == 0x7f {
				b.WriteByte('?')
			} else {
				b.WriteByte(byte(r) + '@')
			}
		case isC1Control(r):
			b.WriteByte('<')
			b.WriteByte(hexDigits[r>>4])
			b.WriteByte(hexDigits[r&0xf])
			b.WriteByte('>')
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(r rune) bool {
	return isControl(r) || isC1Control(r) || isFormattingRune(r)
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func isC1Control(r rune) bool {
	return r >= 0x80 && r < 0xa0
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
