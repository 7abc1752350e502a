package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/least/internal/overstrike"
	"github.com/TimelordUK/least/internal/render"
)

// LineSource is what the viewport reads lines from
type LineSource interface {
	LineCount() int
	Lines(start, count int) []overstrike.Line
}

// Viewport manages the visible portion of content.
// Every operation keeps the top line within [0, MaxTop()], with MaxTop
// recomputed from the source on each call.
type Viewport struct {
	source   LineSource
	renderer render.Renderer

	// Dimensions
	width  int
	height int

	// Scroll position
	top int

	// Styling
	lineNumberStyle lipgloss.Style

	// Options
	showLineNumbers bool
}

// NewViewport creates a new viewport
func NewViewport(width, height int) *Viewport {
	v := &Viewport{
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		renderer:        render.NewPlainRenderer(),
	}
	v.SetSize(width, height)
	return v
}

// SetRenderer sets the line renderer
func (v *Viewport) SetRenderer(r render.Renderer) {
	v.renderer = r
}

// SetSource sets the line source and returns to the top
func (v *Viewport) SetSource(source LineSource) {
	v.source = source
	v.top = 0
}

// SetLineNumberStyle sets the style of the line number gutter
func (v *Viewport) SetLineNumberStyle(style lipgloss.Style) {
	v.lineNumberStyle = style
}

// SetShowLineNumbers toggles line numbers
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}

// SetSize updates viewport dimensions, then re-clamps the top line
func (v *Viewport) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.clampScroll()
}

// Width returns the viewport width
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height
func (v *Viewport) Height() int {
	return v.height
}

// TopLine returns the index of the first visible line
func (v *Viewport) TopLine() int {
	return v.top
}

// MaxTop is the largest valid top line for the current line count
func (v *Viewport) MaxTop() int {
	if v.source == nil {
		return 0
	}
	return max(v.source.LineCount()-v.height, 0)
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.top = satAdd(v.top, n)
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.top -= n
	v.clampScroll()
}

// HalfPageDown scrolls down by half a screen
func (v *Viewport) HalfPageDown() {
	v.ScrollDown(v.height / 2)
}

// HalfPageUp scrolls up by half a screen
func (v *Viewport) HalfPageUp() {
	v.ScrollUp(v.height / 2)
}

// PageDown scrolls down by one screen
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height)
}

// PageUp scrolls up by one screen
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.top = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	v.top = v.MaxTop()
}

// GotoLine scrolls so that line is at the top, as far as possible
func (v *Viewport) GotoLine(line int) {
	v.top = line
	v.clampScroll()
}

// clampScroll ensures scroll offset is within valid bounds
func (v *Viewport) clampScroll() {
	v.top = min(max(v.top, 0), v.MaxTop())
}

// Lines returns the decoded lines currently in view
func (v *Viewport) Lines() []overstrike.Line {
	if v.source == nil {
		return nil
	}
	return v.source.Lines(v.top, v.height)
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	lines := v.Lines()

	var builder strings.Builder
	lineNumWidth := 0
	if v.showLineNumbers && v.source != nil {
		lineNumWidth = len(fmt.Sprintf("%d", max(v.source.LineCount(), 1)))
	}
	availableWidth := v.width
	if v.showLineNumbers {
		availableWidth = max(v.width-lineNumWidth-1, 1)
	}

	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}
		if v.showLineNumbers {
			numStr := fmt.Sprintf("%*d ", lineNumWidth, v.top+i+1)
			builder.WriteString(v.lineNumberStyle.Render(numStr))
		}
		builder.WriteString(v.renderer.Render(line, availableWidth))
	}

	// Pad with empty lines if needed
	for i := len(lines); i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

// PercentScrolled returns how far through the content we are
func (v *Viewport) PercentScrolled() float64 {
	if v.source == nil || v.source.LineCount() == 0 {
		return 0
	}

	total := v.source.LineCount()
	if total <= v.height {
		return 100
	}

	return float64(v.top) / float64(total-v.height) * 100
}

func satAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
