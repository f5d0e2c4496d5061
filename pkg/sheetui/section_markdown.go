package sheetui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// MarkdownSection renders markdown into a scrollable viewport.
type MarkdownSection struct {
	source   string
	style    string
	vp       viewport.Model
	rendered string
	width    int
	focused  bool
}

// NewMarkdownSection creates a markdown section. Rendering is deferred
// until the width is known.
func NewMarkdownSection(source string) *MarkdownSection {
	return &MarkdownSection{
		source: source,
		style:  "dark",
		vp:     viewport.New(0, 0),
	}
}

// WithGlamourStyle selects a glamour standard style ("dark", "light",
// "notty", ...).
func (s *MarkdownSection) WithGlamourStyle(name string) *MarkdownSection {
	s.style = name
	s.width = 0
	return s
}

func (s *MarkdownSection) render(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(s.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return s.source
	}
	out, err := renderer.Render(s.source)
	if err != nil {
		return s.source
	}
	return strings.Trim(out, "\n")
}

// Render implements Section.
func (s *MarkdownSection) Render(width, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	if width != s.width {
		s.width = width
		s.rendered = s.render(width)
		s.vp.SetContent(s.rendered)
	}
	s.vp.Width = width
	s.vp.Height = height
	return s.vp.View()
}

// Update implements Section.
func (s *MarkdownSection) Update(msg tea.Msg) (string, tea.Cmd) {
	if !s.focused {
		return "", nil
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return "", cmd
}

// ScrollBy scrolls the viewport by n lines; negative scrolls up.
func (s *MarkdownSection) ScrollBy(n int) {
	if n < 0 {
		s.vp.ScrollUp(-n)
	} else {
		s.vp.ScrollDown(n)
	}
}

// Focus implements Section.
func (s *MarkdownSection) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur implements Section.
func (s *MarkdownSection) Blur() {
	s.focused = false
}

// Focused implements Section.
func (s *MarkdownSection) Focused() bool {
	return s.focused
}
