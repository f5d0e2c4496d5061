package sheet

import (
	"math"
	"testing"
)

func TestIsDismissSpec(t *testing.T) {
	tests := []struct {
		spec SnapSpec
		want bool
	}{
		{Px(0), true},
		{Px(0.0), true},
		{Px(math.Copysign(0, -1)), true},
		{Pct("0%"), true},
		{Pct("0.0%"), true},
		{Px(1), false},
		{Px(0.001), false},
		{Pct("1%"), false},
		{Pct("50%"), false},
		{Pct("x%"), false},
	}

	for _, tt := range tests {
		if got := IsDismissSpec(tt.spec); got != tt.want {
			t.Errorf("IsDismissSpec(%s) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestDismissed(t *testing.T) {
	specs := []SnapSpec{Pct("0%"), Pct("50%"), Px(600)}

	tests := []struct {
		index int
		want  bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{-1, false},
		{3, false},
	}

	for _, tt := range tests {
		if got := Dismissed(specs, tt.index); got != tt.want {
			t.Errorf("Dismissed(specs, %d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestDismissIndex(t *testing.T) {
	tests := []struct {
		name  string
		specs []SnapSpec
		want  int
	}{
		{"first", []SnapSpec{Px(0), Pct("50%")}, 0},
		{"later", []SnapSpec{Px(300), Pct("40%"), Pct("0%"), Px(0)}, 2},
		{"none", []SnapSpec{Px(100), Px(300)}, -1},
		{"empty", nil, -1},
	}

	for _, tt := range tests {
		if got := DismissIndex(tt.specs); got != tt.want {
			t.Errorf("%s: DismissIndex() = %d, want %d", tt.name, got, tt.want)
		}
		if got := HasDismissPosition(tt.specs); got != (tt.want >= 0) {
			t.Errorf("%s: HasDismissPosition() = %v, want %v", tt.name, got, tt.want >= 0)
		}
	}
}

func TestInitialDismissed(t *testing.T) {
	zero := Px(0)
	zeroPct := Pct("0%")
	half := Pct("50%")

	if initialDismissed(nil) {
		t.Error("nil initial position should be open")
	}
	if !initialDismissed(&zero) || !initialDismissed(&zeroPct) {
		t.Error("0 and 0% initial positions should be dismissed")
	}
	if initialDismissed(&half) {
		t.Error("50% initial position should be open")
	}
}
