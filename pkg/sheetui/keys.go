package sheetui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the sheet's key bindings.
type KeyMap struct {
	SnapTo      key.Binding
	Dismiss     key.Binding
	Filter      key.Binding
	NextSection key.Binding
	Blur        key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SnapTo: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "snap to point"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "d"),
			key.WithHelp("esc/d", "dismiss"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave section"),
		),
	}
}

// ShortHelp returns bindings for a one-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SnapTo, k.Dismiss, k.Filter, k.NextSection}
}

// FullHelp returns bindings grouped for an expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.SnapTo, k.Dismiss}, {k.Filter, k.NextSection, k.Blur}}
}

// Keys returns the active key map.
func (m *Model) Keys() KeyMap {
	return m.keys
}
