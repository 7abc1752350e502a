package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/least/internal/config"
	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/render"
)

// EventSource is the receiving end of the reader's event queue
type EventSource interface {
	Recv() (event.Event, error)
}

// ModelOptions configures a new model
type ModelOptions struct {
	Name     string
	Config   *config.Config
	Events   EventSource
	Renderer render.Renderer
	Logger   *slog.Logger
}

type eventMsg struct {
	ev event.Event
}

type disconnectedMsg struct {
	err error
}

// Model is the main application model
type Model struct {
	pane   *Pane
	events EventSource
	help   help.Model

	width      int
	height     int
	showStatus bool

	statusStyle lipgloss.Style

	quitting bool
	err      error
}

// NewModel creates a new application model
func NewModel(opts ModelOptions) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewStyleRenderer(nil, cfg.Theme)
	}

	h := help.New()
	h.ShortSeparator = " "

	return &Model{
		pane:       NewPane(opts.Name, cfg, renderer, opts.Logger),
		events:     opts.Events,
		help:       h,
		showStatus: cfg.Display.ShowStatusBar,
		statusStyle: lipgloss.NewStyle().
			Background(lipgloss.Color(cfg.Theme.StatusBar)).
			Foreground(lipgloss.Color(cfg.Theme.StatusBarText)),
	}
}

// Attach records the reader handle
func (m *Model) Attach(reader Waiter) {
	m.pane.Attach(reader)
}

// Pane returns the model's pane
func (m *Model) Pane() *Pane {
	return m.pane
}

// Err returns the error that ended the program, if any
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent receives the next reader event from the queue
func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, err := events.Recv()
		if err != nil {
			return disconnectedMsg{err: err}
		}
		return eventMsg{ev: ev}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if _, err := m.pane.Handle(msg.ev); err != nil {
			return m.fail(err)
		}
		return m, m.waitForEvent()

	case disconnectedMsg:
		return m.fail(msg.err)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.handleInput(msg)

	case tea.KeyMsg:
		return m.handleInput(msg)
	}

	return m, nil
}

func (m *Model) handleInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	quit, err := m.pane.Handle(event.TerminalInput{Msg: msg})
	if err != nil {
		return m.fail(err)
	}
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	slog.Error("fatal error", "error", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(m.pane.Render())
	if m.showStatus {
		builder.WriteString("\n")
		builder.WriteString(m.statusLine())
	}
	return builder.String()
}

func (m *Model) statusLine() string {
	vp := m.pane.Viewport()
	store := m.pane.Store()

	state := "..."
	if store.Exhausted() {
		state = "(END)"
	}
	status := fmt.Sprintf(" %s  L%d/%d  %.0f%%  %s ",
		m.pane.Name(),
		min(vp.TopLine()+1, store.LineCount()),
		store.LineCount(),
		vp.PercentScrolled(),
		state)

	left := m.statusStyle.Render(status)
	if m.width <= 0 {
		return left
	}

	m.help.Width = max(m.width-lipgloss.Width(left)-1, 0)
	hint := m.help.View(m.pane.KeyMap())
	line := left
	if hint != "" {
		line += " " + hint
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}
