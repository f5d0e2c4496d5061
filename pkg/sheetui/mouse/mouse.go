// Package mouse turns bubbletea mouse events into clicks, hovers, wheel
// scrolls and drags over named screen regions.
//
// Regions are registered each frame while rendering (render-then-measure)
// and tested in reverse order, so a region added later sits on top of the
// ones added before it.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the longest gap between two clicks on the same
// region that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, hit-testable area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the current frame.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Later regions take priority.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			r := hm.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns the registered regions in insertion order.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes all regions.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a handled mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	default:
		return "none"
	}
}

// MouseAction is the result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int

	// DragDX and DragDY are measured from where the drag started.
	DragDX, DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	now           func() time.Time
	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick hit-tests a click and detects double clicks on the same
// region. A double click resets the sequence.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := h.now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= doubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag of region at (x, y). startValue is whatever the
// caller wants to remember about the dragged thing (a width, a row).
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool {
	return h.dragging
}

// DragRegion returns the ID passed to StartDrag.
func (h *Handler) DragRegion() string {
	return h.dragRegion
}

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int {
	return h.dragStartValue
}

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// HandleMouse classifies msg. Motion during a drag is reported as
// ActionDrag and the release that ends it as ActionDragEnd.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	base := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			base.Region = h.HitMap.Test(msg.X, msg.Y)
			if msg.Shift {
				base.Type = ActionScrollLeft
			} else {
				base.Type = ActionScrollUp
			}
			return base
		case tea.MouseButtonWheelDown:
			base.Region = h.HitMap.Test(msg.X, msg.Y)
			if msg.Shift {
				base.Type = ActionScrollRight
			} else {
				base.Type = ActionScrollDown
			}
			return base
		case tea.MouseButtonWheelLeft:
			base.Region = h.HitMap.Test(msg.X, msg.Y)
			base.Type = ActionScrollLeft
			return base
		case tea.MouseButtonWheelRight:
			base.Region = h.HitMap.Test(msg.X, msg.Y)
			base.Type = ActionScrollRight
			return base
		case tea.MouseButtonLeft:
			click := h.HandleClick(msg.X, msg.Y)
			base.Region = click.Region
			base.Type = ActionClick
			if click.IsDoubleClick {
				base.Type = ActionDoubleClick
			}
			return base
		}

	case tea.MouseActionMotion:
		if h.dragging {
			base.Type = ActionDrag
			base.Region = &Region{ID: h.dragRegion}
			base.DragDX, base.DragDY = h.DragDelta(msg.X, msg.Y)
			return base
		}
		base.Type = ActionHover
		base.Region = h.HitMap.Test(msg.X, msg.Y)
		return base

	case tea.MouseActionRelease:
		if h.dragging {
			base.Type = ActionDragEnd
			base.Region = &Region{ID: h.dragRegion}
			base.DragDX, base.DragDY = h.DragDelta(msg.X, msg.Y)
			h.EndDrag()
			return base
		}
	}

	return base
}

// Clear drops all regions. Call at the start of each render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
