package sheet

// IsDismissSpec reports whether the spec is the literal dismiss position:
// the absolute offset 0 or a percentage whose numeric portion is 0
// ("0%", "0.0%"). The check is on the spec as written, not on the
// resolved offset.
func IsDismissSpec(spec SnapSpec) bool {
	if !spec.IsPercent() {
		return spec.px == 0
	}
	p, err := spec.percent()
	return err == nil && p == 0
}

// Dismissed reports whether the spec at index is a dismiss position.
// Indexes outside specs are never dismissed.
func Dismissed(specs []SnapSpec, index int) bool {
	if index < 0 || index >= len(specs) {
		return false
	}
	return IsDismissSpec(specs[index])
}

// DismissIndex returns the first dismiss-capable index, or -1 if the
// panel has no dismiss position.
func DismissIndex(specs []SnapSpec) int {
	for i, spec := range specs {
		if IsDismissSpec(spec) {
			return i
		}
	}
	return -1
}

// HasDismissPosition reports whether any spec is a dismiss position.
func HasDismissPosition(specs []SnapSpec) bool {
	return DismissIndex(specs) >= 0
}

// initialDismissed seeds the dismissed flag from the initial position.
// A nil initial position is fully open.
func initialDismissed(initial *SnapSpec) bool {
	return initial != nil && IsDismissSpec(*initial)
}
