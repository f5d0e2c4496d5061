package cmd

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/marcus/sheet/internal/config"
	"github.com/marcus/sheet/internal/db"
	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheetui"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDemo(t *testing.T, mutate func(*config.Config)) (*demoModel, *db.DB, string) {
	t.Helper()
	dir := t.TempDir()
	history, err := db.Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { history.Close() })

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	d, err := newDemoModel(cfg, dir, history, newLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("newDemoModel() error: %v", err)
	}
	d.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	return d, history, dir
}

// settleDemo steps the spring until the sheet comes to rest.
func settleDemo(t *testing.T, d *demoModel) {
	t.Helper()
	engine := d.sheet.Engine()
	for i := 0; engine.Animating(); i++ {
		if i > 2000 {
			t.Fatal("sheet did not settle")
		}
		engine.Step()
	}
}

func TestApplyDemoFlags(t *testing.T) {
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	var opts demoFlags
	registerDemoFlags(fs, &opts)
	if err := fs.Parse([]string{"--snap", "0,30%", "--modal", "--no-drag", "--initial", "open", "--row-height", "8"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	cfg := config.Default()
	applyDemoFlags(fs, &opts, cfg)

	if len(cfg.Snap) != 2 || cfg.Snap[1] != sheet.Pct("30%") {
		t.Errorf("Snap = %v", cfg.Snap)
	}
	if !cfg.Modal {
		t.Error("Modal not applied")
	}
	if cfg.Drag == nil || *cfg.Drag {
		t.Errorf("Drag = %v, want false", cfg.Drag)
	}
	if cfg.Initial != nil {
		t.Errorf("Initial = %v, want nil", cfg.Initial)
	}
	if cfg.RowHeight != 8 {
		t.Errorf("RowHeight = %d, want 8", cfg.RowHeight)
	}
	// untouched flags keep the file values
	if !cfg.Backdrop || !cfg.DismissOnPress {
		t.Error("unset flags should not override the config")
	}
}

func TestDemoSnapRecordsHistory(t *testing.T) {
	d, history, _ := newTestDemo(t, nil)

	d.Update(keyRunes("3"))
	settleDemo(t, d)

	settles, err := history.ListSettles(db.ListOptions{})
	if err != nil {
		t.Fatalf("ListSettles failed: %v", err)
	}
	if len(settles) != 1 {
		t.Fatalf("settles = %d, want 1", len(settles))
	}
	s := settles[0]
	if s.Session != d.session || s.Index != 2 || s.Spec != "80%" || s.Dismissed {
		t.Errorf("settle = %+v", s)
	}
	// 20 rows of 16px; 80% leaves the top at 64
	if s.OffsetY != 64 || s.ScreenHeight != 320 {
		t.Errorf("offset = %v of %v, want 64 of 320", s.OffsetY, s.ScreenHeight)
	}
	if !strings.Contains(d.status, "settled at 2") {
		t.Errorf("status = %q", d.status)
	}
}

func TestDemoDismissAndOpen(t *testing.T) {
	d, history, _ := newTestDemo(t, nil)

	d.Update(keyRunes("d"))
	settleDemo(t, d)
	if !d.sheet.Controller().Dismissed() {
		t.Fatal("d should dismiss the sheet")
	}
	if len(d.events) < 2 || d.events[0] != "closing" {
		t.Errorf("events = %v, want closing first", d.events)
	}

	d.Update(keyRunes("o"))
	settleDemo(t, d)
	st := d.sheet.Controller().State()
	if st.Dismissed || st.Index != 2 {
		t.Errorf("state = %+v, want open at index 2", st)
	}

	settles, err := history.ListSettles(db.ListOptions{})
	if err != nil {
		t.Fatalf("ListSettles failed: %v", err)
	}
	if len(settles) != 2 || !settles[1].Dismissed {
		t.Errorf("settles = %+v", settles)
	}
}

func TestDemoRememberPosition(t *testing.T) {
	d, _, dir := newTestDemo(t, func(c *config.Config) { c.RememberPosition = true })

	d.Update(keyRunes("3"))
	settleDemo(t, d)
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Initial == nil || *cfg.Initial != sheet.Pct("80%") {
		t.Errorf("Initial = %v, want 80%%", cfg.Initial)
	}

	// a dismissed panel is not remembered
	d.Update(keyRunes("d"))
	settleDemo(t, d)
	cfg, err = config.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Initial == nil || *cfg.Initial != sheet.Pct("80%") {
		t.Errorf("Initial = %v, want 80%% kept", cfg.Initial)
	}
}

func TestDemoQuit(t *testing.T) {
	d, _, _ := newTestDemo(t, nil)

	for _, k := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := d.Update(k)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", k)
		}
	}
}

func TestDemoTypingSuppressesShortcuts(t *testing.T) {
	d, _, _ := newTestDemo(t, nil)

	d.Update(keyRunes("/"))
	if !d.sheet.Typing() {
		t.Fatal("/ should focus the list filter")
	}
	d.Update(keyRunes("q"))
	if !d.sheet.Typing() {
		t.Error("q while typing should go to the filter")
	}
}

func TestDemoActionAndView(t *testing.T) {
	d, _, _ := newTestDemo(t, nil)

	d.Update(sheetui.ActionMsg{Section: 0, Action: "copy"})
	if len(d.events) != 1 || d.events[0] != `selected "copy"` {
		t.Errorf("events = %v", d.events)
	}

	view := d.View()
	if !strings.Contains(view, "sheet demo") {
		t.Error("view should show the host content above the panel")
	}
	if !strings.Contains(view, "Sheet") {
		t.Error("view should show the sheet title")
	}
}

func TestDemoEventsCapped(t *testing.T) {
	d, _, _ := newTestDemo(t, nil)
	for i := 0; i < 12; i++ {
		d.addEvent("e")
	}
	if len(d.events) != 8 {
		t.Errorf("events = %d, want 8", len(d.events))
	}
}
