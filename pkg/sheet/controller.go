// Package sheet implements the snap-position model and state machine of a
// draggable bottom panel.
//
// A Controller resolves the host's snap specs once, hands the resulting
// points to an Engine, and keeps the settled index, the dismissed flag and
// the backdrop opacity consistent as the engine reports motion:
//
//	c, err := sheet.New(sheet.Config{
//	    ScreenHeight: 800,
//	    SnapPoints:   []sheet.SnapSpec{sheet.Px(0), sheet.Pct("50%"), sheet.Px(600)},
//	    OnChangeSnap: func(ch sheet.SnapChange) { ... },
//	}, engine)
//
//	c.SnapTo(1)  // engine animates, then calls Settle(1)
//	c.Dismiss()  // snaps to the first 0 / "0%" spec and fires OnClose
//
// Continuous state (OffsetY, Opacity) follows the engine frame by frame;
// discrete state (Index, Dismissed) changes only when the engine settles.
package sheet

import (
	"log/slog"
)

// SnapChange is the payload of OnChangeSnap.
type SnapChange struct {
	Index int
	Value SnapSpec
}

// Config is supplied once when the panel is created.
type Config struct {
	// SnapPoints are the resting positions, in host order. Required.
	SnapPoints []SnapSpec

	// InitialPosition is where the panel starts. Nil means fully open.
	InitialPosition *SnapSpec

	// ScreenHeight is the height snap specs resolve against. Required.
	ScreenHeight float64

	// IsModal disables dragging, pins the top boundary to 0 and hides
	// the header and tip.
	IsModal bool

	// DragEnabled defaults to true when nil. Ignored for modal panels.
	DragEnabled *bool

	IsBackDrop               bool
	BackDropColor            string
	IsBackDropDismissByPress bool

	// IsAnimatedYFromParent selects AnimatedValueY as the offset source
	// instead of the controller's own value.
	IsAnimatedYFromParent bool
	AnimatedValueY        *Value

	OnChangeSnap func(SnapChange)
	OnClose      func()

	// Keyboard is cleared before moves on panels that can be dismissed.
	Keyboard Keyboard

	Logger *slog.Logger
}

// State is the panel's settled state plus the current offset.
type State struct {
	// Index is the last settled snap index; meaningful only when Known.
	Index int
	// Known is false before the first settle and while a drag is in
	// progress.
	Known     bool
	OffsetY   float64
	Dismissed bool
}

// Controller is the imperative handle returned to the host.
// It is not safe for concurrent use.
type Controller struct {
	cfg     Config
	specs   []SnapSpec
	points  []SnapPoint
	initial SnapPoint
	engine  Engine
	offset  *Value
	log     *slog.Logger

	index     int
	known     bool
	dismissed bool
}

// New validates cfg, resolves its snap points and attaches engine.
// Errors match ErrInvalidConfiguration.
func New(cfg Config, engine Engine) (*Controller, error) {
	if len(cfg.SnapPoints) == 0 {
		return nil, &ConfigError{Field: "SnapPoints", Reason: "at least one snap point is required"}
	}
	if cfg.ScreenHeight <= 0 {
		return nil, &ConfigError{Field: "ScreenHeight", Reason: "must be positive"}
	}
	if engine == nil {
		return nil, &ConfigError{Field: "Engine", Reason: "engine is required"}
	}
	if cfg.IsAnimatedYFromParent && cfg.AnimatedValueY == nil {
		return nil, &ConfigError{Field: "AnimatedValueY", Reason: "required when IsAnimatedYFromParent is set"}
	}

	specs := append([]SnapSpec(nil), cfg.SnapPoints...)
	points, err := ResolveSnapPoints(specs, cfg.ScreenHeight)
	if err != nil {
		return nil, &ConfigError{Field: "SnapPoints", Reason: "unresolvable snap point", Err: err}
	}
	initial, err := ResolveInitialPosition(cfg.InitialPosition, cfg.ScreenHeight)
	if err != nil {
		return nil, &ConfigError{Field: "InitialPosition", Reason: "unresolvable initial position", Err: err}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	offset := cfg.AnimatedValueY
	if !cfg.IsAnimatedYFromParent {
		offset = NewValue(cfg.ScreenHeight)
	}

	c := &Controller{
		cfg:       cfg,
		specs:     specs,
		points:    points,
		initial:   initial,
		engine:    engine,
		offset:    offset,
		log:       logger,
		dismissed: initialDismissed(cfg.InitialPosition),
	}

	engine.Attach(EngineConfig{
		SnapPoints:  c.SnapPoints(),
		Initial:     initial,
		Boundaries:  c.Boundaries(),
		DragEnabled: c.DragEnabled(),
		Offset:      offset,
		Settle:      c.settleFromEngine,
		DragStarted: c.DragStarted,
	})

	logger.Debug("sheet configured", "snap_points", len(points), "initial_y", initial.Y, "modal", cfg.IsModal)
	return c, nil
}

// SnapTo asks the engine to move the panel to snap point index. State is
// updated later, when the engine settles.
func (c *Controller) SnapTo(index int) error {
	if index < 0 || index >= len(c.points) {
		return &IndexError{Index: index, Len: len(c.points)}
	}
	if c.cfg.Keyboard != nil && HasDismissPosition(c.specs) {
		c.cfg.Keyboard.Dismiss()
	}
	c.engine.SnapTo(index)
	return nil
}

// Dismiss moves the panel to its first dismiss position and fires OnClose
// without waiting for the engine. Panels without a dismiss position are
// left alone; the return value reports whether a move was issued.
func (c *Controller) Dismiss() bool {
	index := DismissIndex(c.specs)
	if index < 0 {
		return false
	}
	if err := c.SnapTo(index); err != nil {
		return false
	}
	if c.cfg.OnClose != nil {
		c.cfg.OnClose()
	}
	return true
}

// Settle records that the engine stopped on snap point index and notifies
// the host. Drag and programmatic moves both end here.
func (c *Controller) Settle(index int) error {
	if index < 0 || index >= len(c.specs) {
		err := &IndexError{Index: index, Len: len(c.specs)}
		c.log.Warn("ignoring settle", "index", index, "err", err)
		return err
	}
	c.index = index
	c.known = true
	c.dismissed = Dismissed(c.specs, index)

	if c.cfg.OnChangeSnap != nil {
		c.cfg.OnChangeSnap(SnapChange{Index: index, Value: c.specs[index]})
	}
	return nil
}

func (c *Controller) settleFromEngine(index int) {
	_ = c.Settle(index)
}

// DragStarted forgets the settled index until the next settle. The
// dismissed flag keeps its last settled value.
func (c *Controller) DragStarted() {
	c.known = false
}

// State returns a snapshot of the panel state.
func (c *Controller) State() State {
	return State{
		Index:     c.index,
		Known:     c.known,
		OffsetY:   c.offset.Get(),
		Dismissed: c.dismissed,
	}
}

// Dismissed reports whether the panel last settled on a dismiss position.
func (c *Controller) Dismissed() bool {
	return c.dismissed
}

// Offset returns the active offset source.
func (c *Controller) Offset() *Value {
	return c.offset
}

// Opacity returns the backdrop opacity for the current offset.
func (c *Controller) Opacity() float64 {
	return BackdropOpacity(c.offset.Get(), c.cfg.ScreenHeight)
}

// SnapPoints returns a copy of the resolved snap points.
func (c *Controller) SnapPoints() []SnapPoint {
	return append([]SnapPoint(nil), c.points...)
}

// Specs returns a copy of the snap specs.
func (c *Controller) Specs() []SnapSpec {
	return append([]SnapSpec(nil), c.specs...)
}

// InitialPoint returns the resolved initial position.
func (c *Controller) InitialPoint() SnapPoint {
	return c.initial
}

// ScreenHeight returns the height the snap points were resolved against.
func (c *Controller) ScreenHeight() float64 {
	return c.cfg.ScreenHeight
}

// Boundaries returns the engine boundaries for the configured mode.
func (c *Controller) Boundaries() Boundaries {
	return boundariesFor(c.cfg.IsModal)
}

// DragEnabled reports whether the user may drag the panel.
func (c *Controller) DragEnabled() bool {
	if c.cfg.IsModal {
		return false
	}
	return c.cfg.DragEnabled == nil || *c.cfg.DragEnabled
}

// IsModal reports whether the panel was configured as a modal.
func (c *Controller) IsModal() bool {
	return c.cfg.IsModal
}

// BackdropVisible reports whether the dimming overlay is drawn at all.
func (c *Controller) BackdropVisible() bool {
	return c.cfg.IsBackDrop
}

// BackdropColor returns the configured backdrop color.
func (c *Controller) BackdropColor() string {
	return c.cfg.BackDropColor
}

// BackdropBlocksInput reports whether the backdrop captures clicks meant
// for content behind it. A dismissed panel lets them through.
func (c *Controller) BackdropBlocksInput() bool {
	return c.cfg.IsBackDrop && !c.dismissed
}

// TapToDismissActive reports whether a click outside the panel dismisses
// it.
func (c *Controller) TapToDismissActive() bool {
	return !c.cfg.IsModal && c.cfg.IsBackDropDismissByPress && c.cfg.IsBackDrop && !c.dismissed
}

// ShowHeader reports whether the header slot is rendered.
func (c *Controller) ShowHeader() bool {
	return !c.cfg.IsModal
}

// ShowTip reports whether the drag tip is drawn above the header. The tip
// belongs to the rounded border style and is hidden on modal panels.
func (c *Controller) ShowTip(roundBorder bool) bool {
	return roundBorder && !c.cfg.IsModal
}
