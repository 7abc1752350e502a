package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/least/internal/config"
)

// KeyMap holds the single-key bindings of normal mode. Top and GotoLine
// describe the fixed g sequences; only their first key is matched.
type KeyMap struct {
	Quit         key.Binding
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Bottom       key.Binding
	Top          key.Binding
	GotoLine     key.Binding
}

// DefaultKeyMap returns the built-in vim-style bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultConfig().Keybindings)
}

// NewKeyMap builds bindings from configuration.
func NewKeyMap(cfg config.KeybindingConfig) KeyMap {
	return KeyMap{
		Quit:         binding(cfg.Quit, "quit"),
		ScrollDown:   binding(cfg.ScrollDown, "down"),
		ScrollUp:     binding(cfg.ScrollUp, "up"),
		HalfPageDown: binding(cfg.HalfPageDown, "½ down"),
		HalfPageUp:   binding(cfg.HalfPageUp, "½ up"),
		PageDown:     binding(cfg.PageDown, "page down"),
		PageUp:       binding(cfg.PageUp, "page up"),
		Bottom:       binding(cfg.Bottom, "bottom"),
		Top:          key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
		GotoLine:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g<n>⏎", "line n")),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc))
}

func helpKeys(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, "/")
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollDown, k.ScrollUp, k.PageDown, k.PageUp, k.Top, k.Bottom, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ScrollDown, k.ScrollUp, k.HalfPageDown, k.HalfPageUp},
		{k.PageDown, k.PageUp, k.Top, k.Bottom, k.GotoLine},
		{k.Quit},
	}
}
