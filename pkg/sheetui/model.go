// Package sheetui renders a sheet.Controller as a bubbletea component:
// a dimming backdrop over the host's content, and a panel with a drag tip,
// a header and body sections that can be dragged between snap points.
//
// Sheet distances are in pixels; each terminal row is RowHeight pixels
// tall, so absolute snap specs and the backdrop fade keep their usual
// scale. Snap points are resolved against the terminal height, so a resize
// recreates the controller; the panel keeps its last settled snap point
// across the resize.
package sheetui

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheet/spring"
	"github.com/marcus/sheet/pkg/sheetui/mouse"
)

// Hit region IDs.
const (
	RegionBackdrop = "backdrop"
	RegionPanel    = "panel"
	RegionHandle   = "handle"
	RegionSection  = "section"
)

const (
	// DefaultRowHeight is the pixel height of one terminal row.
	DefaultRowHeight = 16

	// validateHeight is the screen height New validates the config against
	// before the real terminal size is known.
	validateHeight = 100
)

// Options configure a Model.
type Options struct {
	// Sheet is the panel configuration. ScreenHeight is ignored and taken
	// from the terminal.
	Sheet sheet.Config

	// RowHeight is pixels per terminal row; 0 means DefaultRowHeight.
	RowHeight int

	Style    Style
	Header   string
	Sections []Section

	// EngineOptions tune the spring engine.
	EngineOptions []spring.Option

	Logger *slog.Logger
}

// ActionMsg is emitted when a section reports an action (e.g. enter on a
// list item).
type ActionMsg struct {
	Section int
	Action  string
}

type frameMsg struct {
	gen int
}

// Model is the bubbletea sheet component. Use pointer receivers.
type Model struct {
	opts   Options
	style  Style
	keys   KeyMap
	log    *slog.Logger
	rowH   float64
	width  int
	height int

	ctrl   *sheet.Controller
	engine *spring.Engine
	mouse  *mouse.Handler

	// top and opacity follow the controller's offset value.
	top      int
	opacity  float64
	unlisten func()

	sections []Section
	focus    int // focused section, -1 for none

	background string
	gen        int
	ticking    bool
}

// New validates opts and returns a component. The controller is created
// on the first SetSize or tea.WindowSizeMsg.
func New(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	check := opts.Sheet
	check.ScreenHeight = validateHeight
	check.OnChangeSnap = nil
	check.OnClose = nil
	check.Keyboard = nil
	check.Logger = logger
	if check.IsAnimatedYFromParent && check.AnimatedValueY != nil {
		check.AnimatedValueY = sheet.NewValue(0)
	}
	if _, err := sheet.New(check, spring.New()); err != nil {
		return nil, err
	}

	style := opts.Style
	if style.SheetColor == "" {
		style = DefaultStyle()
		style.IsRoundBorderWithTipHeader = opts.Style.IsRoundBorderWithTipHeader
	}

	rowH := opts.RowHeight
	if rowH <= 0 {
		rowH = DefaultRowHeight
	}

	return &Model{
		opts:     opts,
		style:    style,
		keys:     DefaultKeyMap(),
		log:      logger,
		rowH:     float64(rowH),
		mouse:    mouse.NewHandler(),
		sections: opts.Sections,
		focus:    -1,
	}, nil
}

// Init implements part of tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Controller returns the current controller, or nil before the first size.
func (m *Model) Controller() *sheet.Controller {
	return m.ctrl
}

// Engine returns the current engine, or nil before the first size.
func (m *Model) Engine() *spring.Engine {
	return m.engine
}

// SetBackground sets the host content drawn behind the panel.
func (m *Model) SetBackground(s string) {
	m.background = s
}

// SetSize (re)creates the controller for a width x height terminal.
func (m *Model) SetSize(width, height int) error {
	if width == m.width && height == m.height && m.ctrl != nil {
		return nil
	}
	cfg := m.opts.Sheet
	cfg.ScreenHeight = float64(height) * m.rowH
	cfg.Logger = m.log
	cfg.Keyboard = sheet.KeyboardFunc(m.dismissKeyboard)

	if m.ctrl != nil {
		// Resizing re-derives the snap points; start where the old panel
		// last settled.
		if st := m.ctrl.State(); st.Known {
			spec := m.ctrl.Specs()[st.Index]
			cfg.InitialPosition = &spec
		}
	}

	engine := spring.New(m.opts.EngineOptions...)
	ctrl, err := sheet.New(cfg, engine)
	if err != nil {
		return err
	}
	if m.unlisten != nil {
		m.unlisten()
	}
	m.width, m.height = width, height
	m.ctrl, m.engine = ctrl, engine
	m.unlisten = ctrl.Offset().Listen(m.follow)
	m.follow(ctrl.Offset().Get())
	m.gen++
	m.ticking = false
	m.log.Debug("sheet resized", "width", width, "height", height)
	return nil
}

// follow caches the panel row and backdrop opacity for offset y.
func (m *Model) follow(y float64) {
	m.top = int(math.Round(y / m.rowH))
	m.opacity = sheet.BackdropOpacity(y, m.ctrl.ScreenHeight())
}

// dismissKeyboard blurs every section; the sheet calls it before moves.
func (m *Model) dismissKeyboard() {
	for _, s := range m.sections {
		s.Blur()
	}
	m.focus = -1
	if m.opts.Sheet.Keyboard != nil {
		m.opts.Sheet.Keyboard.Dismiss()
	}
}

// SnapTo moves the panel and starts the animation.
func (m *Model) SnapTo(index int) (tea.Cmd, error) {
	if m.ctrl == nil {
		return nil, fmt.Errorf("snap to %d: sheet has no size yet", index)
	}
	if err := m.ctrl.SnapTo(index); err != nil {
		return nil, err
	}
	return m.tick(), nil
}

// Dismiss moves the panel to its dismiss position, if it has one.
func (m *Model) Dismiss() tea.Cmd {
	if m.ctrl == nil || !m.ctrl.Dismiss() {
		return nil
	}
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.ticking || m.engine == nil || !m.engine.Animating() {
		return nil
	}
	m.ticking = true
	gen := m.gen
	return tea.Tick(time.Second/time.Duration(m.engine.FPS()), func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

// Update handles window, frame, mouse and key messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.SetSize(msg.Width, msg.Height); err != nil {
			m.log.Error("resize sheet", "err", err)
		}
		return nil

	case frameMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.ticking = false
		m.engine.Step()
		return m.tick()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}

	if m.focus >= 0 && m.focus < len(m.sections) {
		sec := m.sections[m.focus]
		if key.Matches(msg, m.keys.Blur) && !typing(sec) {
			sec.Blur()
			m.focus = -1
			return nil
		}
		if key.Matches(msg, m.keys.NextSection) {
			return m.focusNext()
		}
		action, cmd := sec.Update(msg)
		if action != "" {
			idx := m.focus
			return tea.Batch(cmd, func() tea.Msg { return ActionMsg{Section: idx, Action: action} })
		}
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		return m.Dismiss()
	case key.Matches(msg, m.keys.NextSection):
		return m.focusNext()
	case key.Matches(msg, m.keys.Filter):
		for i, s := range m.sections {
			if ls, ok := s.(*ListSection); ok {
				m.focus = i
				return ls.FocusFilter()
			}
		}
	case key.Matches(msg, m.keys.SnapTo):
		index := int(msg.Runes[0] - '1')
		cmd, err := m.SnapTo(index)
		if err != nil {
			m.log.Debug("snap key ignored", "index", index, "err", err)
		}
		return cmd
	}
	return nil
}

// Typing reports whether a focused section is taking text input, so the
// host should not treat printable keys as its own shortcuts.
func (m *Model) Typing() bool {
	return m.focus >= 0 && m.focus < len(m.sections) && typing(m.sections[m.focus])
}

// typing reports whether sec has a text field that should receive esc.
func typing(sec Section) bool {
	ls, ok := sec.(*ListSection)
	return ok && ls.FilterFocused()
}

func (m *Model) focusNext() tea.Cmd {
	if len(m.sections) == 0 {
		return nil
	}
	if m.focus >= 0 {
		m.sections[m.focus].Blur()
	}
	m.focus = (m.focus + 1) % len(m.sections)
	return m.sections[m.focus].Focus()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	action := m.mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return nil
		}
		switch action.Region.ID {
		case RegionBackdrop:
			if m.ctrl.TapToDismissActive() {
				return m.Dismiss()
			}
		case RegionHandle, RegionPanel:
			if m.engine.BeginDrag() {
				m.mouse.StartDrag(action.X, action.Y, action.Region.ID, m.panelTop())
			}
		case RegionSection:
			if idx, ok := action.Region.Data.(int); ok && idx != m.focus {
				if m.focus >= 0 {
					m.sections[m.focus].Blur()
				}
				m.focus = idx
				return m.sections[idx].Focus()
			}
		}

	case mouse.ActionDrag:
		m.engine.DragBy(float64(action.DragDY) * m.rowH)

	case mouse.ActionDragEnd:
		m.engine.DragBy(float64(action.DragDY) * m.rowH)
		m.engine.EndDrag()
		return m.tick()

	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if action.Region == nil || action.Region.ID != RegionSection {
			return nil
		}
		if idx, ok := action.Region.Data.(int); ok {
			if md, ok := m.sections[idx].(*MarkdownSection); ok {
				if action.Type == mouse.ActionScrollUp {
					md.ScrollBy(-3)
				} else {
					md.ScrollBy(3)
				}
			}
		}
	}
	return nil
}

// Captures reports whether a click at (x, y) belongs to the sheet rather
// than to the content behind it.
func (m *Model) Captures(x, y int) bool {
	if m.ctrl == nil {
		return false
	}
	if y >= m.panelTop() {
		return true
	}
	return m.ctrl.BackdropBlocksInput()
}

// panelTop returns the terminal row of the panel's top edge.
func (m *Model) panelTop() int {
	return m.top
}

// View renders the full screen: background rows above the panel, panel
// rows below it. Hit regions are rebuilt on every call.
func (m *Model) View() string {
	if m.ctrl == nil || m.height <= 0 {
		return ""
	}
	m.mouse.Clear()

	top := m.panelTop()
	bg := strings.Split(m.background, "\n")
	rows := make([]string, m.height)

	dim := m.ctrl.BackdropVisible()
	opacity := m.opacity
	for y := 0; y < m.height && y < top; y++ {
		line := ""
		if y < len(bg) {
			line = bg[y]
		}
		if dim {
			line = m.dimLine(line, opacity)
		}
		rows[y] = padLine(line, m.width)
	}
	if dim && top > 0 {
		m.mouse.HitMap.AddRect(RegionBackdrop, 0, 0, m.width, min(top, m.height), nil)
	}

	panel := m.panelLines(m.height - top)
	skip := 0
	if top < 0 {
		skip = -top
	}
	for i := skip; i < len(panel); i++ {
		y := top + i
		if y < 0 || y >= m.height {
			continue
		}
		rows[y] = panel[i]
	}
	return strings.Join(rows, "\n")
}

// panelLines renders the panel for a visible height, registering its hit
// regions. The returned slice starts at the panel's top edge.
func (m *Model) panelLines(visible int) []string {
	if visible <= 0 {
		return nil
	}
	top := m.height - visible
	bg := lipgloss.NewStyle().Background(m.style.SheetColor)
	inner := max(1, m.width-2)

	var lines []string
	border := m.style.border()
	edge := lipgloss.NewStyle().Foreground(BorderNormal)
	lines = append(lines, edge.Render(border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight))

	handleRows := 1
	if m.ctrl.ShowTip(m.style.IsRoundBorderWithTipHeader) {
		tip := m.style.Tip.Render("▬▬▬▬")
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tip))
		handleRows++
	}
	if m.ctrl.ShowHeader() && m.opts.Header != "" {
		header := m.style.Header.Render(HeaderTitle.Render(m.opts.Header))
		lines = append(lines, strings.Split(header, "\n")...)
		handleRows = len(lines)
	}

	m.mouse.HitMap.AddRect(RegionPanel, 0, top, m.width, visible, nil)
	m.mouse.HitMap.AddRect(RegionHandle, 0, top, m.width, handleRows, nil)

	remaining := visible - len(lines)
	bodyWidth := max(1, m.width-m.style.Body.GetHorizontalFrameSize())
	for i, sec := range m.sections {
		if remaining <= 0 {
			break
		}
		out := sec.Render(bodyWidth, remaining)
		if out == "" {
			continue
		}
		secLines := strings.Split(m.style.Body.Render(out), "\n")
		if len(secLines) > remaining {
			secLines = secLines[:remaining]
		}
		m.mouse.HitMap.AddRect(RegionSection, 0, top+len(lines), m.width, len(secLines), i)
		lines = append(lines, secLines...)
		remaining -= len(secLines)
	}

	for len(lines) < visible {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = bg.Render(padLine(l, m.width))
	}
	return lines
}

// dimLine fades a background line toward the backdrop color. Terminals
// cannot blend, so the text is restyled with a gray picked by opacity.
func (m *Model) dimLine(line string, opacity float64) string {
	if opacity <= 0.05 {
		return line
	}
	plain := ansi.Strip(line)
	fg := blendGray(opacity)
	style := lipgloss.NewStyle().Foreground(fg)
	if c := m.ctrl.BackdropColor(); c != "" && opacity >= 0.5 {
		style = style.Background(lipgloss.Color(c))
	}
	return style.Render(plain)
}

// blendGray maps opacity 0..1 to a gray from light (text untouched) to
// nearly black.
func blendGray(opacity float64) lipgloss.Color {
	o := math.Max(0, math.Min(1, opacity))
	level := int(math.Round(0xd0 - (0xd0-0x30)*o))
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", level, level, level))
}

// padLine truncates or pads line to exactly width cells.
func padLine(line string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-w)
}
