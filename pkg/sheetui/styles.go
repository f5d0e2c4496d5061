package sheetui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the sheet and its sections.
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Muted        = lipgloss.Color("241")
	BgSheet      = lipgloss.Color("235")
	BorderNormal = lipgloss.Color("240")
	TipColor     = lipgloss.Color("244")
)

// Text styles
var (
	HeaderTitle = lipgloss.NewStyle().Bold(true)
	MutedText   = lipgloss.NewStyle().Foreground(Muted)
	ErrorText   = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// List styles for list sections
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// Style holds the presentation-only options of a sheet.
type Style struct {
	// SheetColor is the panel background.
	SheetColor lipgloss.Color

	// IsRoundBorderWithTipHeader draws a rounded top border and a drag
	// tip above the header.
	IsRoundBorderWithTipHeader bool

	// TipHeaderRadius above 0 selects rounded corners; 0 draws square
	// ones. Terminals have a single corner size.
	TipHeaderRadius int

	Container lipgloss.Style
	Tip       lipgloss.Style
	Header    lipgloss.Style
	Body      lipgloss.Style
}

// DefaultStyle returns the stock sheet look.
func DefaultStyle() Style {
	return Style{
		SheetColor:      BgSheet,
		TipHeaderRadius: 12,
		Container:       lipgloss.NewStyle(),
		Tip:             lipgloss.NewStyle().Foreground(TipColor),
		Header:          lipgloss.NewStyle().Padding(0, 1),
		Body:            lipgloss.NewStyle().Padding(0, 1),
	}
}

func (s Style) border() lipgloss.Border {
	if s.IsRoundBorderWithTipHeader && s.TipHeaderRadius > 0 {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}
