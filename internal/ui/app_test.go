package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/least/internal/config"
	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/render"
)

type sliceEvents struct {
	events []event.Event
}

func (s *sliceEvents) Recv() (event.Event, error) {
	if len(s.events) == 0 {
		return nil, event.ErrDisconnected
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func newTestModel(cfg *config.Config, evs ...event.Event) *Model {
	return NewModel(ModelOptions{
		Name:     "input.txt",
		Config:   cfg,
		Events:   &sliceEvents{events: evs},
		Renderer: render.NewPlainRenderer(),
		Logger:   discard,
	})
}

// pump runs the queued-event command n times through Update.
func pump(t *testing.T, m *Model, cmd tea.Cmd, n int) tea.Cmd {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NotNil(t, cmd)
		_, cmd = m.Update(cmd())
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelConsumesReaderEvents(t *testing.T) {
	m := newTestModel(bareConfig(),
		event.NewLines{Lines: event.LineBatch{"alpha", "beta"}},
		event.NewLines{Lines: event.LineBatch{"gamma"}},
		event.EndOfInput{},
	)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})

	pump(t, m, m.Init(), 3)
	assert.Equal(t, 3, m.Pane().Store().LineCount())
	assert.True(t, m.Pane().Store().Exhausted())
	assert.NoError(t, m.Err())

	assert.Equal(t, "alpha\nbeta\ngamma\n~\n~", m.View())
}

func TestModelQuitKey(t *testing.T) {
	m := newTestModel(bareConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.False(t, isQuit(cmd))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
	assert.NoError(t, m.Err())
}

func TestModelReaderFailureIsFatal(t *testing.T) {
	cause := assert.AnError
	m := newTestModel(bareConfig(), event.ReaderFailed{Cause: cause})

	_, cmd := m.Update(m.Init()())
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), cause)
}

func TestModelDisconnectedQueueIsFatal(t *testing.T) {
	m := newTestModel(bareConfig())

	_, cmd := m.Update(m.Init()())
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), event.ErrDisconnected)
}

func TestModelStatusLine(t *testing.T) {
	m := newTestModel(config.DefaultConfig(),
		event.NewLines{Lines: numbered(50)},
	)
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 11})
	pump(t, m, m.Init(), 1)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "input.txt")
	assert.Contains(t, view, "L1/50")
	assert.Contains(t, view, "...")
	assert.Contains(t, view, "quit")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	view = ansi.Strip(m.View())
	assert.Contains(t, view, "L41/50")
	assert.Contains(t, view, "100%")
}

func TestModelStatusLineAtEnd(t *testing.T) {
	m := newTestModel(config.DefaultConfig(), event.EndOfInput{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	pump(t, m, m.Init(), 1)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "L0/0")
	assert.Contains(t, view, "(END)")
}
