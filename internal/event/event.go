// Package event defines the messages exchanged between the background
// producers and the main loop.
package event

import tea "github.com/charmbracelet/bubbletea"

// Event is one of TerminalInput, NewLines, EndOfInput, ReaderFailed or
// ReaderTerminationObserved.
type Event interface {
	event()
}

// LineBatch is a group of complete, tab-normalized lines delivered together.
type LineBatch []string

// TerminalInput carries a raw terminal message (key press or resize).
type TerminalInput struct {
	Msg tea.Msg
}

// NewLines delivers a batch of lines in source order.
type NewLines struct {
	Lines LineBatch
}

// EndOfInput is sent once after the final batch.
type EndOfInput struct{}

// ReaderFailed is sent once when the reader stops on an error.
type ReaderFailed struct {
	Cause error
}

// ReaderTerminationObserved is sent after the reader goroutine has returned.
type ReaderTerminationObserved struct{}

func (TerminalInput) event()             {}
func (NewLines) event()                  {}
func (EndOfInput) event()                {}
func (ReaderFailed) event()              {}
func (ReaderTerminationObserved) event() {}
