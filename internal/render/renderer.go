package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/least/internal/config"
	"github.com/TimelordUK/least/internal/overstrike"
	"github.com/TimelordUK/least/internal/textutil"
)

// Renderer turns a decoded line into terminal output no wider than width.
// A width of zero or less disables truncation.
type Renderer interface {
	Render(line overstrike.Line, width int) string
}

// StyleRenderer draws bold and underlined spans with lipgloss styles
type StyleRenderer struct {
	styles map[overstrike.Style]lipgloss.Style
}

// NewStyleRenderer creates a renderer for the theme. A nil lipgloss renderer
// uses the default one bound to stdout.
func NewStyleRenderer(r *lipgloss.Renderer, theme config.ThemeConfig) *StyleRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	bold := r.NewStyle().Bold(true)
	if theme.Bold != "" {
		bold = bold.Foreground(lipgloss.Color(theme.Bold))
	}
	underline := r.NewStyle().Underline(true)
	if theme.Underline != "" {
		underline = underline.Foreground(lipgloss.Color(theme.Underline))
	}

	return &StyleRenderer{
		styles: map[overstrike.Style]lipgloss.Style{
			overstrike.Bold:      bold,
			overstrike.Underline: underline,
		},
	}
}

// Render applies span styles to a line
func (r *StyleRenderer) Render(line overstrike.Line, width int) string {
	var b strings.Builder
	for _, span := range line {
		text := textutil.SanitizeControl(span.Text)
		style, ok := r.styles[span.Style]
		if !ok {
			b.WriteString(text)
			continue
		}
		b.WriteString(style.Render(text))
	}
	return truncate(b.String(), width)
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line text with styles dropped
func (r *PlainRenderer) Render(line overstrike.Line, width int) string {
	return truncate(textutil.SanitizeControl(line.String()), width)
}

func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
