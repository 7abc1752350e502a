package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/least/internal/config"
	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/index"
	"github.com/TimelordUK/least/internal/keys"
	"github.com/TimelordUK/least/internal/overstrike"
	"github.com/TimelordUK/least/internal/render"
	"github.com/TimelordUK/least/internal/view"
)

// Waiter is the handle of the background reader
type Waiter interface {
	Wait() error
}

// Pane owns the line store, key state and viewport for one input. All of
// its state is touched only from the goroutine calling Handle.
type Pane struct {
	store    *index.LineStore
	viewport *view.Viewport
	keyMap   keys.KeyMap
	keyState keys.State
	reader   Waiter

	name string
	// Rows reserved below the viewport
	reserved int
	log      *slog.Logger
}

// NewPane creates a pane for the named input
func NewPane(name string, cfg *config.Config, renderer render.Renderer, logger *slog.Logger) *Pane {
	if logger == nil {
		logger = slog.Default()
	}

	store := index.NewLineStore(logger)

	viewport := view.NewViewport(80, 24)
	viewport.SetSource(store)
	viewport.SetShowLineNumbers(cfg.Display.ShowLineNumbers)
	viewport.SetLineNumberStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.LineNumbers)))
	if renderer != nil {
		viewport.SetRenderer(renderer)
	}

	reserved := 0
	if cfg.Display.ShowStatusBar {
		reserved = 1
	}

	return &Pane{
		store:    store,
		viewport: viewport,
		keyMap:   keys.NewKeyMap(cfg.Keybindings),
		name:     name,
		reserved: reserved,
		log:      logger,
	}
}

// Attach records the reader handle joined when it terminates
func (p *Pane) Attach(reader Waiter) {
	p.reader = reader
}

// Handle processes one event to completion. It reports whether the user
// asked to quit; a non-nil error is fatal.
func (p *Pane) Handle(ev event.Event) (bool, error) {
	switch ev := ev.(type) {
	case event.TerminalInput:
		return p.handleInput(ev.Msg), nil

	case event.ReaderTerminationObserved:
		if p.reader == nil {
			return false, nil
		}
		if err := p.reader.Wait(); err != nil {
			return false, fmt.Errorf("reader failed: %w", err)
		}
		p.log.Debug("reader finished", "lines", p.store.LineCount())
		return false, nil

	default:
		return false, p.store.Apply(ev)
	}
}

func (p *Pane) handleInput(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		state, action := keys.Next(p.keyState, msg, p.keyMap)
		p.keyState = state
		return p.onAction(action)
	case tea.WindowSizeMsg:
		p.Resize(msg.Width, msg.Height)
	}
	return false
}

func (p *Pane) onAction(action keys.Action) bool {
	if action.Type != keys.None {
		p.log.Debug("key action", "action", action.Type.String(), "line", action.Line)
	}

	switch action.Type {
	case keys.Quit:
		return true
	case keys.ScrollDownOne:
		p.viewport.ScrollDown(1)
	case keys.ScrollUpOne:
		p.viewport.ScrollUp(1)
	case keys.ScrollDownHalf:
		p.viewport.HalfPageDown()
	case keys.ScrollUpHalf:
		p.viewport.HalfPageUp()
	case keys.ScrollDownFull:
		p.viewport.PageDown()
	case keys.ScrollUpFull:
		p.viewport.PageUp()
	case keys.GoToTop:
		p.viewport.GotoTop()
	case keys.GoToBottom:
		p.viewport.GotoBottom()
	case keys.GoToLine:
		p.viewport.GotoLine(action.Line)
	}
	return false
}

// Resize fits the viewport to a terminal of the given size
func (p *Pane) Resize(width, height int) {
	p.viewport.SetSize(width, height-p.reserved)
}

// Lines returns the decoded lines currently in view
func (p *Pane) Lines() []overstrike.Line {
	return p.viewport.Lines()
}

// Render returns the rendered viewport content
func (p *Pane) Render() string {
	return p.viewport.Render()
}

// Viewport returns the pane's viewport
func (p *Pane) Viewport() *view.Viewport {
	return p.viewport
}

// Store returns the pane's line store
func (p *Pane) Store() *index.LineStore {
	return p.store
}

// KeyState returns the current key sequence state
func (p *Pane) KeyState() keys.State {
	return p.keyState
}

// KeyMap returns the pane's key bindings
func (p *Pane) KeyMap() keys.KeyMap {
	return p.keyMap
}

// Name returns the display name of the input
func (p *Pane) Name() string {
	return p.name
}
