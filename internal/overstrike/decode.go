// Package overstrike decodes the backspace convention used by nroff and
// man(1) output: "c\bc" renders c in bold and "_\bc" renders c underlined.
package overstrike

import (
	"strings"
	"unicode/utf8"
)

const backspace = '\b'

// Style is the attribute a span is drawn with.
type Style uint8

const (
	Plain Style = iota
	Bold
	Underline
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "bold"
	case Underline:
		return "underline"
	default:
		return "plain"
	}
}

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style Style
}

// Line is a decoded line. Adjacent spans never share a style.
type Line []Span

// String returns the line text with all styling dropped.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

type stateKind uint8

const (
	idle stateKind = iota
	pendingChar
	pendingCharBackspace
)

// state is the recognizer state. prev is only meaningful outside idle.
type state struct {
	kind stateKind
	prev rune
}

// emission is at most two characters produced by one transition.
type emission struct {
	n     int
	runes [2]rune
	style [2]Style
}

func (e *emission) push(r rune, s Style) {
	e.runes[e.n] = r
	e.style[e.n] = s
	e.n++
}

// step is the transition function of the recognizer.
func step(st state, r rune) (state, emission) {
	var out emission
	switch st.kind {
	case pendingChar:
		if r == backspace {
			return state{kind: pendingCharBackspace, prev: st.prev}, out
		}
		out.push(st.prev, Plain)
		return state{kind: pendingChar, prev: r}, out
	case pendingCharBackspace:
		switch {
		case r == st.prev:
			out.push(r, Bold)
		case st.prev == '_':
			out.push(r, Underline)
		default:
			out.push(st.prev, Plain)
			out.push(r, Plain)
		}
		return state{kind: idle}, out
	default:
		return state{kind: pendingChar, prev: r}, out
	}
}

// builder coalesces emitted characters into spans.
type builder struct {
	line  Line
	cur   strings.Builder
	style Style
	open  bool
}

func (b *builder) add(r rune, s Style) {
	if b.open && s != b.style {
		b.flush()
	}
	b.style = s
	b.open = true
	b.cur.WriteRune(r)
}

func (b *builder) flush() {
	if b.open && b.cur.Len() > 0 {
		b.line = append(b.line, Span{Text: b.cur.String(), Style: b.style})
	}
	b.cur.Reset()
	b.open = false
}

// Decode turns raw line bytes into styled spans. It never fails: invalid
// UTF-8 is replaced with U+FFFD and unrecognized backspace usage is kept as
// literal text.
func Decode(raw []byte) Line {
	var (
		st state
		b  builder
	)
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]

		var out emission
		st, out = step(st, r)
		for i := 0; i < out.n; i++ {
			b.add(out.runes[i], out.style[i])
		}
	}
	// A dangling "c\b" at end of line keeps c as plain text.
	if st.kind != idle {
		b.add(st.prev, Plain)
	}
	b.flush()
	return b.line
}

// DecodeString is Decode for string input.
func DecodeString(s string) Line {
	return Decode([]byte(s))
}
