package sheetui

import tea "github.com/charmbracelet/bubbletea"

// Section is a block of content inside the sheet body.
type Section interface {
	// Render draws the section into at most height rows of the given
	// width.
	Render(width, height int) string

	// Update handles a message while the section is focused. A non-empty
	// action reports something the host may act on (a chosen item ID).
	Update(msg tea.Msg) (action string, cmd tea.Cmd)

	Focus() tea.Cmd
	Blur()
	Focused() bool
}
