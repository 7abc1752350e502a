// Package index holds the ingested lines of the input.
package index

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/overstrike"
)

// ErrUnexpectedEvent is returned when Apply receives an event that is not
// line data.
var ErrUnexpectedEvent = errors.New("unexpected event for line store")

// LineStore is the append-only history of received lines. Lines are never
// modified or removed once stored.
type LineStore struct {
	lines     []string
	exhausted bool
	log       *slog.Logger
}

// NewLineStore creates an empty store.
func NewLineStore(logger *slog.Logger) *LineStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LineStore{log: logger}
}

// Apply folds a reader event into the store. A ReaderFailed event returns
// its cause.
func (s *LineStore) Apply(ev event.Event) error {
	switch ev := ev.(type) {
	case event.NewLines:
		s.lines = append(s.lines, ev.Lines...)
		s.log.Debug("received new lines", "count", len(ev.Lines), "total", len(s.lines))
	case event.EndOfInput:
		s.exhausted = true
	case event.ReaderFailed:
		return ev.Cause
	default:
		return fmt.Errorf("%w: %T", ErrUnexpectedEvent, ev)
	}
	return nil
}

// LineCount returns the number of lines stored so far.
func (s *LineStore) LineCount() int {
	return len(s.lines)
}

// Exhausted reports whether the end of input has been seen.
func (s *LineStore) Exhausted() bool {
	return s.exhausted
}

// Lines decodes up to count lines starting at start. The result is clamped
// to what is stored now and is empty when start is past the end.
func (s *LineStore) Lines(start, count int) []overstrike.Line {
	if count <= 0 || start < 0 || start >= len(s.lines) {
		return nil
	}
	if start+count > len(s.lines) {
		count = len(s.lines) - start
	}

	lines := make([]overstrike.Line, count)
	for i := range lines {
		lines[i] = overstrike.DecodeString(s.lines[start+i])
	}
	return lines
}
