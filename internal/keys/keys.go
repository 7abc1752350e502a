// Package keys implements the vim-style key sequence state machine.
package keys

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the position inside a key sequence.
type Mode int

const (
	Normal Mode = iota
	WaitingSecondG
	WaitingLineNumber
)

// State is the key machine state. N is the line number typed so far in
// WaitingLineNumber.
type State struct {
	Mode Mode
	N    int
}

// ActionType is the navigation produced by a key.
type ActionType int

const (
	None ActionType = iota
	Quit
	ScrollDownOne
	ScrollUpOne
	ScrollDownHalf
	ScrollUpHalf
	ScrollDownFull
	ScrollUpFull
	GoToTop
	GoToBottom
	GoToLine
)

func (a ActionType) String() string {
	switch a {
	case Quit:
		return "quit"
	case ScrollDownOne:
		return "scroll-down-one"
	case ScrollUpOne:
		return "scroll-up-one"
	case ScrollDownHalf:
		return "scroll-down-half"
	case ScrollUpHalf:
		return "scroll-up-half"
	case ScrollDownFull:
		return "scroll-down-full"
	case ScrollUpFull:
		return "scroll-up-full"
	case GoToTop:
		return "go-to-top"
	case GoToBottom:
		return "go-to-bottom"
	case GoToLine:
		return "go-to-line"
	default:
		return "none"
	}
}

// Action is a navigation request. Line is set for GoToLine.
type Action struct {
	Type ActionType
	Line int
}

// Next is the transition function: it returns the state after msg and the
// action msg completes, if any. Modifiers are ignored, so ctrl+d and alt+d
// both act as d unless a binding names the modified key itself.
func Next(st State, msg tea.KeyMsg, km KeyMap) (State, Action) {
	base := baseKey(msg)
	matches := func(b key.Binding) bool {
		return key.Matches(msg, b) || key.Matches(base, b)
	}

	switch st.Mode {
	case WaitingSecondG:
		if matches(km.Top) {
			return State{}, Action{Type: GoToTop}
		}
		if d, ok := digit(base); ok {
			return State{Mode: WaitingLineNumber, N: d}, Action{}
		}
		return State{}, Action{}

	case WaitingLineNumber:
		if d, ok := digit(base); ok {
			return State{Mode: WaitingLineNumber, N: appendDigit(st.N, d)}, Action{}
		}
		if msg.Type == tea.KeyEnter {
			return State{}, Action{Type: GoToLine, Line: st.N}
		}
		return State{}, Action{}
	}

	switch {
	case matches(km.Top):
		return State{Mode: WaitingSecondG}, Action{}
	case matches(km.Quit):
		return State{}, Action{Type: Quit}
	case matches(km.HalfPageDown):
		return State{}, Action{Type: ScrollDownHalf}
	case matches(km.HalfPageUp):
		return State{}, Action{Type: ScrollUpHalf}
	case matches(km.PageDown):
		return State{}, Action{Type: ScrollDownFull}
	case matches(km.PageUp):
		return State{}, Action{Type: ScrollUpFull}
	case matches(km.ScrollDown):
		return State{}, Action{Type: ScrollDownOne}
	case matches(km.ScrollUp):
		return State{}, Action{Type: ScrollUpOne}
	case matches(km.Bottom):
		return State{}, Action{Type: GoToBottom}
	}
	return State{}, Action{}
}

// baseKey strips alt and maps ctrl+letter to the bare letter. Control codes
// that double as tab, enter, newline and backspace keep their meaning.
func baseKey(msg tea.KeyMsg) tea.KeyMsg {
	msg.Alt = false
	if msg.Type < tea.KeyCtrlA || msg.Type > tea.KeyCtrlZ {
		return msg
	}
	switch msg.Type {
	case tea.KeyCtrlH, tea.KeyCtrlI, tea.KeyCtrlJ, tea.KeyCtrlM:
		return msg
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a' + rune(msg.Type-tea.KeyCtrlA)}}
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// appendDigit computes n*10+d, saturating at math.MaxInt.
func appendDigit(n, d int) int {
	if n > (math.MaxInt-d)/10 {
		return math.MaxInt
	}
	return n*10 + d
}
