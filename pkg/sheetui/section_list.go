package sheetui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier for this item
	Label string // Display text
	Data  any    // Optional associated data
}

// ListOption is a functional option for list sections.
type ListOption func(*ListSection)

// ListSection is a selectable list with a fuzzy filter input. The filter
// input is the text field the sheet blurs before moving.
type ListSection struct {
	items        []ListItem
	visible      []ListItem
	selected     int
	maxVisible   int
	scrollOffset int

	filter  textinput.Model
	focused bool
}

// NewListSection creates a list section.
func NewListSection(items []ListItem, opts ...ListOption) *ListSection {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 64

	s := &ListSection{
		items:      items,
		maxVisible: 8,
		filter:     ti,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyFilter()
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *ListSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// Selected returns the selected item, if any.
func (s *ListSection) Selected() (ListItem, bool) {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return ListItem{}, false
	}
	return s.visible[s.selected], true
}

// Visible returns the items that pass the current filter, best match
// first.
func (s *ListSection) Visible() []ListItem {
	return s.visible
}

// FilterFocused reports whether the filter input has focus.
func (s *ListSection) FilterFocused() bool {
	return s.filter.Focused()
}

// FocusFilter focuses the section and its filter input.
func (s *ListSection) FocusFilter() tea.Cmd {
	s.focused = true
	return s.filter.Focus()
}

// Focus implements Section. The filter stays blurred until requested.
func (s *ListSection) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur implements Section.
func (s *ListSection) Blur() {
	s.focused = false
	s.filter.Blur()
}

// Focused implements Section.
func (s *ListSection) Focused() bool {
	return s.focused
}

func (s *ListSection) applyFilter() {
	query := s.filter.Value()
	if query == "" {
		s.visible = append([]ListItem(nil), s.items...)
	} else {
		labels := make([]string, len(s.items))
		for i, item := range s.items {
			labels[i] = item.Label
		}
		matches := fuzzy.Find(query, labels)
		s.visible = make([]ListItem, len(matches))
		for i, match := range matches {
			s.visible[i] = s.items[match.Index]
		}
	}
	if s.selected >= len(s.visible) {
		s.selected = max(0, len(s.visible)-1)
	}
}

// Render implements Section.
func (s *ListSection) Render(width, height int) string {
	var lines []string
	if s.filter.Focused() || s.filter.Value() != "" {
		s.filter.Width = max(1, width-len(s.filter.Prompt)-1)
		lines = append(lines, s.filter.View())
	}

	if len(s.visible) == 0 {
		lines = append(lines, MutedText.Render("(no items)"))
		return clipLines(lines, width, height)
	}

	visibleCount := min(s.maxVisible, len(s.visible), max(1, height-len(lines)))

	// Adjust scroll to keep selection visible
	if s.selected < s.scrollOffset {
		s.scrollOffset = s.selected
	} else if s.selected >= s.scrollOffset+visibleCount {
		s.scrollOffset = s.selected - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.visible)-visibleCount))

	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	for i := 0; i < visibleCount; i++ {
		idx := s.scrollOffset + i
		if idx >= len(s.visible) {
			break
		}
		item := s.visible[idx]
		style := ListItemNormal
		cursor := "  "
		if idx == s.selected {
			cursor = ListCursor.Render("> ")
			style = ListItemSelected
			if s.focused {
				style = ListItemFocused
			}
		}
		lines = append(lines, cursor+style.Render(item.Label))
	}
	if s.scrollOffset+visibleCount < len(s.visible) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}
	return clipLines(lines, width, height)
}

// Update implements Section.
func (s *ListSection) Update(msg tea.Msg) (string, tea.Cmd) {
	if !s.focused {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	if s.filter.Focused() {
		switch keyMsg.String() {
		case "enter", "down":
			s.filter.Blur()
			return "", nil
		case "esc":
			s.filter.Blur()
			s.filter.SetValue("")
			s.applyFilter()
			return "", nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.applyFilter()
		return "", cmd
	}

	switch keyMsg.String() {
	case "/":
		return "", s.filter.Focus()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.visible)-1 {
			s.selected++
		}
	case "home":
		s.selected = 0
	case "end":
		s.selected = max(0, len(s.visible)-1)
	case "enter":
		if item, ok := s.Selected(); ok {
			return item.ID, nil
		}
	}
	return "", nil
}

// clipLines truncates each line to width and keeps at most height lines.
func clipLines(lines []string, width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
