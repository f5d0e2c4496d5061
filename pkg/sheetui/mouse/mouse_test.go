package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // Top-left corner
		{29, 10, true},  // Top-right edge (exclusive width)
		{10, 19, true},  // Bottom-left edge (exclusive height)
		{29, 19, true},  // Bottom-right corner
		{15, 15, true},  // Center
		{9, 10, false},  // Just left
		{30, 10, false}, // Just right (exclusive)
		{10, 9, false},  // Just above
		{10, 20, false}, // Just below (exclusive)
	}

	for _, tc := range cases {
		got := r.Contains(tc.x, tc.y)
		if got != tc.expected {
			t.Errorf("Rect(%+v).Contains(%d, %d) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestHitMapBasic(t *testing.T) {
	hm := NewHitMap()

	hm.AddRect("panel", 0, 0, 50, 50, "sheet")
	hm.AddRect("backdrop", 60, 0, 50, 50, "dim")

	// Test hit on panel
	r := hm.Test(25, 25)
	if r == nil || r.ID != "panel" {
		t.Errorf("expected hit on panel, got %v", r)
	}

	// Test hit on backdrop
	r = hm.Test(85, 25)
	if r == nil || r.ID != "backdrop" {
		t.Errorf("expected hit on backdrop, got %v", r)
	}

	// Test miss
	r = hm.Test(55, 25)
	if r != nil {
		t.Errorf("expected no hit, got %v", r)
	}
}

func TestHitMapPriority(t *testing.T) {
	hm := NewHitMap()

	// Add overlapping regions - later ones have higher priority
	hm.AddRect("backdrop", 0, 0, 100, 100, nil)
	hm.AddRect("panel", 10, 10, 80, 80, nil)
	hm.AddRect("tip", 40, 40, 20, 20, nil)

	// Tip sits on top of the panel, which sits on the backdrop
	r := hm.Test(50, 50)
	if r == nil || r.ID != "tip" {
		t.Errorf("expected hit on tip, got %v", r)
	}

	// Panel outside the tip
	r = hm.Test(15, 15)
	if r == nil || r.ID != "panel" {
		t.Errorf("expected hit on panel, got %v", r)
	}

	// Test at background location (not panel)
	r = hm.Test(5, 5)
	if r == nil || r.ID != "backdrop" {
		t.Errorf("expected hit on backdrop, got %v", r)
	}
}

func TestHitMapClear(t *testing.T) {
	hm := NewHitMap()

	hm.AddRect("panel", 0, 0, 50, 50, nil)
	hm.AddRect("backdrop", 60, 0, 50, 50, nil)

	if len(hm.Regions()) != 2 {
		t.Errorf("expected 2 regions, got %d", len(hm.Regions()))
	}

	hm.Clear()

	if len(hm.Regions()) != 0 {
		t.Errorf("expected 0 regions after clear, got %d", len(hm.Regions()))
	}
}

func TestHandlerClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("tip", 10, 10, 30, 10, nil)

	result := h.HandleClick(20, 15)
	if result.Region == nil || result.Region.ID != "tip" {
		t.Errorf("expected click on tip, got %v", result.Region)
	}
	if result.IsDoubleClick {
		t.Error("first click should not be double-click")
	}

	// Miss click
	result = h.HandleClick(5, 5)
	if result.Region != nil {
		t.Errorf("expected no region on miss, got %v", result.Region)
	}
}

func TestHandlerDoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("tip", 10, 10, 30, 10, nil)

	// First click
	result := h.HandleClick(20, 15)
	if result.IsDoubleClick {
		t.Error("first click should not be double-click")
	}

	// Second quick click on same region
	result = h.HandleClick(20, 15)
	if !result.IsDoubleClick {
		t.Error("second quick click should be double-click")
	}

	// Third click should not be double-click (reset after double)
	result = h.HandleClick(20, 15)
	if result.IsDoubleClick {
		t.Error("third click should not be double-click")
	}
}

func TestHandlerDrag(t *testing.T) {
	h := NewHandler()

	h.StartDrag(100, 100, "header", 250)

	if !h.IsDragging() {
		t.Error("expected dragging to be true")
	}
	if h.DragRegion() != "header" {
		t.Errorf("expected drag region 'header', got %q", h.DragRegion())
	}
	if h.DragStartValue() != 250 {
		t.Errorf("expected drag start value 250, got %d", h.DragStartValue())
	}

	dx, dy := h.DragDelta(150, 120)
	if dx != 50 || dy != 20 {
		t.Errorf("expected delta (50, 20), got (%d, %d)", dx, dy)
	}

	h.EndDrag()

	if h.IsDragging() {
		t.Error("expected dragging to be false after EndDrag")
	}
}

func TestHandleMouseActions(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("tip", 10, 10, 30, 10, nil)

	// Test click
	action := h.HandleMouse(tea.MouseMsg{
		X:      20,
		Y:      15,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if action.Type != ActionClick {
		t.Errorf("expected ActionClick, got %v", action.Type)
	}
	if action.Region == nil || action.Region.ID != "tip" {
		t.Errorf("expected region 'tip', got %v", action.Region)
	}

	// Test hover
	action = h.HandleMouse(tea.MouseMsg{
		X:      25,
		Y:      15,
		Action: tea.MouseActionMotion,
	})
	if action.Type != ActionHover {
		t.Errorf("expected ActionHover, got %v", action.Type)
	}

	// Test scroll down
	action = h.HandleMouse(tea.MouseMsg{
		X:      20,
		Y:      15,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
	})
	if action.Type != ActionScrollDown {
		t.Errorf("expected ActionScrollDown, got %v", action.Type)
	}

	// Test scroll up
	action = h.HandleMouse(tea.MouseMsg{
		X:      20,
		Y:      15,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
	})
	if action.Type != ActionScrollUp {
		t.Errorf("expected ActionScrollUp, got %v", action.Type)
	}
}

func TestHandleMouseShiftScroll(t *testing.T) {
	h := NewHandler()

	// Shift+scroll up = scroll left
	action := h.HandleMouse(tea.MouseMsg{
		X:      10,
		Y:      10,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelUp,
		Shift:  true,
	})
	if action.Type != ActionScrollLeft {
		t.Errorf("expected ActionScrollLeft, got %v", action.Type)
	}

	// Shift+scroll down = scroll right
	action = h.HandleMouse(tea.MouseMsg{
		X:      10,
		Y:      10,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
		Shift:  true,
	})
	if action.Type != ActionScrollRight {
		t.Errorf("expected ActionScrollRight, got %v", action.Type)
	}
}

func TestHandleMouseDragMotion(t *testing.T) {
	h := NewHandler()

	// Start a drag
	h.StartDrag(100, 100, "tip", 50)

	// Motion while dragging
	action := h.HandleMouse(tea.MouseMsg{
		X:      150,
		Y:      110,
		Action: tea.MouseActionMotion,
	})
	if action.Type != ActionDrag {
		t.Errorf("expected ActionDrag, got %v", action.Type)
	}
	if action.DragDX != 50 || action.DragDY != 10 {
		t.Errorf("expected drag delta (50, 10), got (%d, %d)", action.DragDX, action.DragDY)
	}

	// Release
	action = h.HandleMouse(tea.MouseMsg{
		X:      150,
		Y:      110,
		Action: tea.MouseActionRelease,
	})
	if action.Type != ActionDragEnd {
		t.Errorf("expected ActionDragEnd, got %v", action.Type)
	}

	if h.IsDragging() {
		t.Error("expected dragging to be false after release")
	}
}

func TestHandlerClear(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("tip", 10, 10, 30, 10, nil)

	h.Clear()

	if len(h.HitMap.Regions()) != 0 {
		t.Errorf("expected 0 regions after Clear, got %d", len(h.HitMap.Regions()))
	}
}

func TestHandlerDoubleClickWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	h := NewHandler()
	h.now = func() time.Time { return now }
	h.HitMap.AddRect("header", 0, 0, 80, 2, nil)

	h.HandleClick(5, 1)
	now = now.Add(doubleClickWindow + time.Millisecond)
	if h.HandleClick(5, 1).IsDoubleClick {
		t.Error("click after the window should not be a double-click")
	}

	now = now.Add(doubleClickWindow / 2)
	if !h.HandleClick(5, 1).IsDoubleClick {
		t.Error("click inside the window should be a double-click")
	}
}

func TestHandleMouseDoubleClickAction(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("header", 0, 0, 80, 2, nil)
	press := tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	if a := h.HandleMouse(press); a.Type != ActionClick {
		t.Errorf("first press = %v, want click", a.Type)
	}
	if a := h.HandleMouse(press); a.Type != ActionDoubleClick {
		t.Errorf("second press = %v, want double-click", a.Type)
	}
}

func TestHandleMouseReleaseWithoutDrag(t *testing.T) {
	h := NewHandler()
	a := h.HandleMouse(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease})
	if a.Type != ActionNone {
		t.Errorf("release without drag = %v, want none", a.Type)
	}
}

func TestHandleMouseDragEndDelta(t *testing.T) {
	h := NewHandler()
	h.StartDrag(10, 20, "header", 20)

	a := h.HandleMouse(tea.MouseMsg{X: 12, Y: 26, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if a.Type != ActionDragEnd || a.DragDY != 6 || a.Region == nil || a.Region.ID != "header" {
		t.Errorf("drag end = %+v, want header drag end with DY 6", a)
	}
}
