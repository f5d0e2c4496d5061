// Package spring is a frame-stepped animation engine for sheet.Controller
// built on harmonica's damped spring.
//
// The engine owns the panel's position between snap points. Hosts call
// Step once per frame while Animating reports true, and feed pointer
// drags through BeginDrag, DragBy and EndDrag. When motion stops on a
// snap point the engine writes the exact row and reports the settle.
package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/marcus/sheet/pkg/sheet"
)

const (
	defaultFPS       = 60
	defaultFrequency = 9.0
	defaultDamping   = 0.85

	// settleEpsilon is how close, in rows and rows/second, the spring must
	// be to its target before the move counts as settled.
	settleEpsilon = 0.05

	// tossFrames is how many frames of the last drag velocity are added to
	// the release position when choosing a snap point.
	tossFrames = 4
)

// Option configures an Engine.
type Option func(*Engine)

// WithFPS sets the frame rate Step is expected to run at.
func WithFPS(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithSpring sets the spring's angular frequency and damping ratio.
func WithSpring(frequency, damping float64) Option {
	return func(e *Engine) {
		if frequency > 0 {
			e.frequency = frequency
		}
		if damping >= 0 {
			e.damping = damping
		}
	}
}

// Engine implements sheet.Engine.
type Engine struct {
	fps       int
	frequency float64
	damping   float64
	spring    harmonica.Spring

	cfg      sheet.EngineConfig
	attached bool

	pos float64
	vel float64

	target    int // -1 when no move is in flight
	animating bool

	dragging  bool
	dragStart float64
	dragVel   float64
}

// New returns an unattached engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fps:       defaultFPS,
		frequency: defaultFrequency,
		damping:   defaultDamping,
		target:    -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.spring = harmonica.NewSpring(harmonica.FPS(e.fps), e.frequency, e.damping)
	return e
}

// Attach implements sheet.Engine. The panel is placed at the initial
// position without animating and without a settle.
func (e *Engine) Attach(cfg sheet.EngineConfig) {
	e.cfg = cfg
	e.attached = true
	e.pos = cfg.Initial.Y
	e.vel = 0
	e.target = -1
	e.animating = false
	e.dragging = false
	e.publish()
}

// SnapTo implements sheet.Engine. A move already in flight is retargeted
// and keeps its velocity; an active drag is abandoned.
func (e *Engine) SnapTo(index int) {
	if !e.attached || index < 0 || index >= len(e.cfg.SnapPoints) {
		return
	}
	e.dragging = false
	e.target = index
	e.animating = true
}

// FPS returns the frame rate the engine steps at.
func (e *Engine) FPS() int {
	return e.fps
}

// Animating reports whether Step still has work to do.
func (e *Engine) Animating() bool {
	return e.animating
}

// Dragging reports whether a drag is in progress.
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Position returns the panel's current top row.
func (e *Engine) Position() float64 {
	return e.pos
}

// Target returns the snap index of the move in flight, or -1.
func (e *Engine) Target() int {
	if !e.animating {
		return -1
	}
	return e.target
}

// Step advances the animation one frame. It returns true while more frames
// are needed.
func (e *Engine) Step() bool {
	if !e.animating {
		return false
	}
	b := e.cfg.Boundaries
	// A snap point above the top boundary is unreachable; rest against it.
	goal := math.Max(e.cfg.SnapPoints[e.target].Y, b.Top)
	e.pos, e.vel = e.spring.Update(e.pos, e.vel, goal)

	if e.pos < b.Top {
		e.pos = b.Top
		e.vel = -e.vel * b.Bounce
	}

	if math.Abs(e.pos-goal) < settleEpsilon && math.Abs(e.vel) < settleEpsilon {
		e.pos = goal
		e.vel = 0
		e.animating = false
		index := e.target
		e.target = -1
		e.publish()
		if e.cfg.Settle != nil {
			e.cfg.Settle(index)
		}
		return false
	}

	e.publish()
	return true
}

// BeginDrag starts following the pointer. It returns false when dragging
// is disabled. Any move in flight stops where it is.
func (e *Engine) BeginDrag() bool {
	if !e.attached || !e.cfg.DragEnabled {
		return false
	}
	e.dragging = true
	e.animating = false
	e.target = -1
	e.vel = 0
	e.dragVel = 0
	e.dragStart = e.pos
	if e.cfg.DragStarted != nil {
		e.cfg.DragStarted()
	}
	return true
}

// DragBy moves the panel to dy rows from where the drag began. The panel
// cannot be dragged above the top boundary.
func (e *Engine) DragBy(dy float64) {
	if !e.dragging {
		return
	}
	next := e.dragStart + dy
	if next < e.cfg.Boundaries.Top {
		next = e.cfg.Boundaries.Top
	}
	e.dragVel = next - e.pos
	e.pos = next
	e.publish()
}

// EndDrag releases the panel and animates it to the snap point nearest to
// where it was heading.
func (e *Engine) EndDrag() {
	if !e.dragging {
		return
	}
	e.dragging = false
	projected := e.pos + e.dragVel*tossFrames
	e.SnapTo(Nearest(e.cfg.SnapPoints, projected))
}

// Nearest returns the index of the snap point closest to y. Ties go to the
// lower index. It returns -1 for an empty slice.
func Nearest(points []sheet.SnapPoint, y float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range points {
		if d := math.Abs(p.Y - y); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (e *Engine) publish() {
	if e.cfg.Offset != nil {
		e.cfg.Offset.Set(e.pos)
	}
}
