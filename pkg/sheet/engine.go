package sheet

// Boundaries limit how far the engine lets the panel travel upward.
// Top is the smallest row the panel's top edge may reach; Bounce is the
// fraction of velocity kept when the panel hits it.
type Boundaries struct {
	Top    float64
	Bounce float64
}

const (
	defaultTopBoundary = -300
	defaultBounce      = 0.5
)

// boundariesFor returns the boundaries for the given mode. Modal panels
// may not travel above the top of the screen and do not bounce.
func boundariesFor(modal bool) Boundaries {
	if modal {
		return Boundaries{Top: 0, Bounce: 0}
	}
	return Boundaries{Top: defaultTopBoundary, Bounce: defaultBounce}
}

// EngineConfig is what the controller hands an engine on attach.
type EngineConfig struct {
	SnapPoints  []SnapPoint
	Initial     SnapPoint
	Boundaries  Boundaries
	DragEnabled bool

	// Offset is the value the engine writes the panel's top row into.
	Offset *Value

	// Settle must be called once each time motion stops on a snap point,
	// in the order the engine observes them.
	Settle func(index int)

	// DragStarted is called when a user drag begins.
	DragStarted func()
}

// Engine is the animation collaborator that moves the panel. The core
// only issues targets and reacts to the callbacks in EngineConfig.
type Engine interface {
	Attach(cfg EngineConfig)
	SnapTo(index int)
}

// Keyboard clears on-screen text input focus.
type Keyboard interface {
	Dismiss()
}

// KeyboardFunc adapts a func to Keyboard.
type KeyboardFunc func()

func (f KeyboardFunc) Dismiss() { f() }
