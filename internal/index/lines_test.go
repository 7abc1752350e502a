package index

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/overstrike"
)

func newTestStore() *LineStore {
	return NewLineStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApplyCountsMonotonically(t *testing.T) {
	s := newTestStore()
	batches := []event.LineBatch{{"a"}, {"b", "c"}, {}, {"d", "e", "f"}}

	total := 0
	for _, batch := range batches {
		require.NoError(t, s.Apply(event.NewLines{Lines: batch}))
		total += len(batch)
		assert.Equal(t, total, s.LineCount())
	}
	assert.Equal(t, overstrike.Line{{Text: "f"}}, s.Lines(5, 1)[0])
}

func TestApplyEndOfInput(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.Exhausted())
	require.NoError(t, s.Apply(event.EndOfInput{}))
	assert.True(t, s.Exhausted())

	assert.Empty(t, s.Lines(0, 24))
}

func TestApplyReaderFailed(t *testing.T) {
	s := newTestStore()
	cause := errors.New("boom")
	assert.Equal(t, cause, s.Apply(event.ReaderFailed{Cause: cause}))
}

func TestApplyRejectsOtherEvents(t *testing.T) {
	s := newTestStore()
	assert.ErrorIs(t, s.Apply(event.TerminalInput{}), ErrUnexpectedEvent)
	assert.ErrorIs(t, s.Apply(event.ReaderTerminationObserved{}), ErrUnexpectedEvent)
}

func TestLinesRange(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Apply(event.NewLines{Lines: event.LineBatch{"zero", "one", "B\bBold", "three"}}))

	got := s.Lines(1, 2)
	require.Len(t, got, 2)
	assert.Equal(t, overstrike.Line{{Text: "one"}}, got[0])
	assert.Equal(t, overstrike.Line{{Text: "B", Style: overstrike.Bold}, {Text: "old"}}, got[1])

	assert.Len(t, s.Lines(2, 100), 2)
	assert.Empty(t, s.Lines(4, 1))
	assert.Empty(t, s.Lines(10, 1))
	assert.Empty(t, s.Lines(0, 0))
	assert.Empty(t, s.Lines(-1, 3))
}
