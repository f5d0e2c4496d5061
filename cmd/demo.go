package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/sheet/internal/config"
	"github.com/marcus/sheet/internal/db"
	"github.com/marcus/sheet/internal/output"
	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheetui"
)

const logFile = "sheet.log"

const defaultMarkdown = `## Bottom sheet

Drag the **tip** or the header to move the panel. Release it and it
springs to the nearest snap point.

- ` + "`1-9`" + ` snap to a point
- ` + "`esc`" + ` or ` + "`d`" + ` dismiss
- ` + "`o`" + ` open fully
- ` + "`q`" + ` quit
`

var defaultItems = []config.Item{
	{ID: "share", Label: "Share"},
	{ID: "copy", Label: "Copy link"},
	{ID: "rename", Label: "Rename"},
	{ID: "move", Label: "Move to folder"},
	{ID: "delete", Label: "Delete"},
}

type demoFlags struct {
	snap           []sheet.SnapSpec
	initial        *sheet.SnapSpec
	modal          bool
	backdrop       bool
	backdropColor  string
	dismissOnPress bool
	noDrag         bool
	rowHeight      int
	remember       bool
	noHistory      bool
	debug          bool
}

var demoOpts demoFlags

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive sheet demo",
	Long: `Runs a full screen demo with the sheet over some host content.

Keys: 1-9 snap, esc/d dismiss, o open, / filter, tab next section, q quit.
Mouse: drag the tip or header, click the backdrop to dismiss.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		applyDemoFlags(cmd.Flags(), &demoOpts, cfg)

		logger, closeLog, err := openLog(baseDir, demoOpts.debug)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer closeLog()

		var history *db.DB
		if !demoOpts.noHistory {
			history, err = db.Open(baseDir)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			defer history.Close()
		}

		m, err := newDemoModel(cfg, baseDir, history, logger)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			output.Error("%v", err)
			return err
		}
		if history != nil {
			fmt.Printf("session %s\n", m.session)
		}
		return nil
	},
}

func init() {
	registerDemoFlags(demoCmd.Flags(), &demoOpts)
	rootCmd.AddCommand(demoCmd)
}

func registerDemoFlags(f *pflag.FlagSet, opts *demoFlags) {
	def := config.Default()
	f.Var(newSnapSpecsValue(def.Snap, &opts.snap), "snap", "snap points, e.g. 0,50%,600")
	f.Var(&snapSpecValue{spec: &opts.initial}, "initial", `initial position ("open" for fully open)`)
	f.BoolVar(&opts.modal, "modal", false, "modal sheet: no drag, no header")
	f.BoolVar(&opts.backdrop, "backdrop", def.Backdrop, "draw a dimming backdrop")
	f.StringVar(&opts.backdropColor, "backdrop-color", "", "backdrop color")
	f.BoolVar(&opts.dismissOnPress, "dismiss-on-press", def.DismissOnPress, "clicking the backdrop dismisses")
	f.BoolVar(&opts.noDrag, "no-drag", false, "disable dragging")
	f.IntVar(&opts.rowHeight, "row-height", sheetui.DefaultRowHeight, "pixels per terminal row")
	f.BoolVar(&opts.remember, "remember", false, "store the last settled point as the initial position")
	f.BoolVar(&opts.noHistory, "no-history", false, "do not record settle events")
	f.BoolVar(&opts.debug, "debug", false, "debug logging to .sheet/sheet.log")
}

// applyDemoFlags overrides cfg with the flags the user set.
func applyDemoFlags(flags *pflag.FlagSet, opts *demoFlags, cfg *config.Config) {
	if flags.Changed("snap") {
		cfg.Snap = opts.snap
	}
	if flags.Changed("initial") {
		cfg.Initial = opts.initial
	}
	if flags.Changed("modal") {
		cfg.Modal = opts.modal
	}
	if flags.Changed("backdrop") {
		cfg.Backdrop = opts.backdrop
	}
	if flags.Changed("backdrop-color") {
		cfg.BackdropColor = opts.backdropColor
	}
	if flags.Changed("dismiss-on-press") {
		cfg.DismissOnPress = opts.dismissOnPress
	}
	if flags.Changed("no-drag") {
		drag := !opts.noDrag
		cfg.Drag = &drag
	}
	if flags.Changed("row-height") {
		cfg.RowHeight = opts.rowHeight
	}
	if flags.Changed("remember") {
		cfg.RememberPosition = opts.remember
	}
}

// openLog opens .sheet/sheet.log. The TUI owns the terminal, so logs go
// to a file.
func openLog(baseDir string, debug bool) (*slog.Logger, func(), error) {
	dir := filepath.Join(baseDir, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return newLogger(f, debug), func() { f.Close() }, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

var (
	demoTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	demoStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// demoModel hosts a sheet over a page of text and records settles.
type demoModel struct {
	sheet   *sheetui.Model
	help    help.Model
	log     *slog.Logger
	history *db.DB
	baseDir string
	session string

	remember bool
	status   string
	events   []string
}

func newDemoModel(cfg *config.Config, baseDir string, history *db.DB, logger *slog.Logger) (*demoModel, error) {
	d := &demoModel{
		help:     help.New(),
		log:      logger,
		history:  history,
		baseDir:  baseDir,
		session:  uuid.NewString(),
		remember: cfg.RememberPosition,
		status:   "ready",
	}

	items := cfg.Items
	if len(items) == 0 {
		items = defaultItems
	}
	listItems := make([]sheetui.ListItem, len(items))
	for i, it := range items {
		listItems[i] = sheetui.ListItem{ID: it.ID, Label: it.Label}
	}
	markdown := cfg.Markdown
	if markdown == "" {
		markdown = defaultMarkdown
	}
	md := sheetui.NewMarkdownSection(markdown)
	if cfg.GlamourStyle != "" {
		md.WithGlamourStyle(cfg.GlamourStyle)
	}

	sc := cfg.SheetConfig()
	sc.OnChangeSnap = d.onChangeSnap
	sc.OnClose = d.onClose

	style := sheetui.DefaultStyle()
	style.IsRoundBorderWithTipHeader = true

	m, err := sheetui.New(sheetui.Options{
		Sheet:     sc,
		RowHeight: cfg.RowHeight,
		Style:     style,
		Header:    cfg.Title,
		Sections: []sheetui.Section{
			sheetui.NewListSection(listItems, sheetui.WithMaxVisible(6)),
			md,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	d.sheet = m
	return d, nil
}

func (d *demoModel) Init() tea.Cmd {
	return d.sheet.Init()
}

func (d *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return d, tea.Quit
		}
		if !d.sheet.Typing() {
			switch msg.String() {
			case "q":
				return d, tea.Quit
			case "o":
				return d, d.open()
			}
		}
	case tea.WindowSizeMsg:
		d.help.Width = msg.Width
	case sheetui.ActionMsg:
		d.addEvent(fmt.Sprintf("selected %q", msg.Action))
		d.log.Info("sheet action", "section", msg.Section, "action", msg.Action)
		return d, nil
	}
	return d, d.sheet.Update(msg)
}

// open snaps to the highest snap point.
func (d *demoModel) open() tea.Cmd {
	ctrl := d.sheet.Controller()
	if ctrl == nil {
		return nil
	}
	best := 0
	for i, p := range ctrl.SnapPoints() {
		if p.Y < ctrl.SnapPoints()[best].Y {
			best = i
		}
	}
	cmd, err := d.sheet.SnapTo(best)
	if err != nil {
		d.log.Warn("open sheet", "err", err)
	}
	return cmd
}

func (d *demoModel) onChangeSnap(ch sheet.SnapChange) {
	ctrl := d.sheet.Controller()
	st := ctrl.State()

	d.status = fmt.Sprintf("settled at %d (%s)", ch.Index, ch.Value)
	if st.Dismissed {
		d.status += ", dismissed"
	}
	d.addEvent(d.status)
	d.log.Info("sheet settled", "index", ch.Index, "spec", ch.Value.String(), "offset_y", st.OffsetY, "dismissed", st.Dismissed)

	if d.history != nil {
		err := d.history.RecordSettle(&db.Settle{
			Session:      d.session,
			Index:        ch.Index,
			Spec:         ch.Value.String(),
			OffsetY:      st.OffsetY,
			ScreenHeight: ctrl.ScreenHeight(),
			Dismissed:    st.Dismissed,
		})
		if err != nil {
			d.log.Error("record settle", "err", err)
		}
	}

	if d.remember && !st.Dismissed {
		if err := config.SetInitial(d.baseDir, ch.Value); err != nil {
			d.log.Error("remember position", "err", err)
		}
	}
}

func (d *demoModel) onClose() {
	d.addEvent("closing")
}

func (d *demoModel) addEvent(s string) {
	d.events = append(d.events, s)
	if len(d.events) > 8 {
		d.events = d.events[len(d.events)-8:]
	}
}

func (d *demoModel) background() string {
	var b strings.Builder
	b.WriteString(demoTitle.Render("sheet demo"))
	b.WriteString("\n")
	b.WriteString(demoStatus.Render(d.status))
	b.WriteString("\n\n")
	for _, e := range d.events {
		b.WriteString("  " + e + "\n")
	}
	b.WriteString("\n")
	b.WriteString(d.help.View(d.sheet.Keys()))
	b.WriteString("\n")
	b.WriteString(demoStatus.Render("o open • q quit"))
	return b.String()
}

func (d *demoModel) View() string {
	d.sheet.SetBackground(d.background())
	return d.sheet.View()
}
