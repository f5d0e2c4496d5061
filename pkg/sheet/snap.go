package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNotFinite = errors.New("not a finite number")

// SnapSpec is a user-supplied resting position for the panel: either an
// absolute offset measured upward from the bottom of the screen, or a
// percentage of the screen height such as "40%".
//
// The zero value is the absolute offset 0, the dismiss position.
type SnapSpec struct {
	px    float64
	pct   string // raw percentage text
	isPct bool
}

// SnapPoint is a resolved snap spec: the screen row the panel's top edge
// rests on.
type SnapPoint struct {
	Y float64
}

// Px returns an absolute snap spec.
func Px(offset float64) SnapSpec {
	return SnapSpec{px: offset}
}

// Pct returns a percentage snap spec. The text is kept verbatim and is only
// validated when resolved, so Pct("abc%") is representable and rejected by
// New.
func Pct(s string) SnapSpec {
	return SnapSpec{pct: s, isPct: true}
}

// ParseSnapSpec parses text input. Anything containing '%' is a percentage
// spec; everything else must be a plain number.
func ParseSnapSpec(s string) (SnapSpec, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "%") {
		spec := Pct(s)
		if _, err := spec.percent(); err != nil {
			return SnapSpec{}, err
		}
		return spec, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SnapSpec{}, &InvalidSnapSpecError{Spec: s, Err: err}
	}
	if !finite(v) {
		return SnapSpec{}, &InvalidSnapSpecError{Spec: s, Err: errNotFinite}
	}
	return Px(v), nil
}

// MustParseSnapSpecs parses each string with ParseSnapSpec and panics on
// failure. Intended for literals in tests and examples.
func MustParseSnapSpecs(specs ...string) []SnapSpec {
	out := make([]SnapSpec, len(specs))
	for i, s := range specs {
		spec, err := ParseSnapSpec(s)
		if err != nil {
			panic(err)
		}
		out[i] = spec
	}
	return out
}

// IsPercent reports whether the spec is a percentage string.
func (s SnapSpec) IsPercent() bool {
	return s.isPct
}

// String returns the spec the way the host wrote it: "40%" or "120".
func (s SnapSpec) String() string {
	if s.IsPercent() {
		return s.pct
	}
	return strconv.FormatFloat(s.px, 'f', -1, 64)
}

// percent parses the numeric portion before the first '%'.
func (s SnapSpec) percent() (float64, error) {
	head, _, _ := strings.Cut(s.pct, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(head), 64)
	if err != nil {
		return 0, &InvalidSnapSpecError{Spec: s.pct, Err: err}
	}
	if !finite(v) {
		return 0, &InvalidSnapSpecError{Spec: s.pct, Err: errNotFinite}
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Offset resolves the spec to an absolute offset from the bottom of a
// screen of the given height.
func (s SnapSpec) Offset(screenHeight float64) (float64, error) {
	if !s.IsPercent() {
		if !finite(s.px) {
			return 0, &InvalidSnapSpecError{Spec: s.String(), Err: errNotFinite}
		}
		return s.px, nil
	}
	p, err := s.percent()
	if err != nil {
		return 0, err
	}
	return (screenHeight / 100) * p, nil
}

// Point resolves the spec to the row the panel's top edge rests on.
// Negative rows are allowed; keeping the panel on screen is the job of
// the engine's boundaries.
func (s SnapSpec) Point(screenHeight float64) (SnapPoint, error) {
	off, err := s.Offset(screenHeight)
	if err != nil {
		return SnapPoint{}, err
	}
	return SnapPoint{Y: screenHeight - off}, nil
}

// ResolveSnapPoints resolves every spec in order. The first failure is
// returned together with its index.
func ResolveSnapPoints(specs []SnapSpec, screenHeight float64) ([]SnapPoint, error) {
	points := make([]SnapPoint, len(specs))
	for i, spec := range specs {
		p, err := spec.Point(screenHeight)
		if err != nil {
			return nil, fmt.Errorf("snap point %d: %w", i, err)
		}
		points[i] = p
	}
	return points, nil
}

// ResolveInitialPosition resolves the initial position. A nil spec means
// fully open: the panel's top edge at row 0.
func ResolveInitialPosition(spec *SnapSpec, screenHeight float64) (SnapPoint, error) {
	if spec == nil {
		return SnapPoint{Y: 0}, nil
	}
	return spec.Point(screenHeight)
}

// MarshalJSON encodes absolute specs as numbers and percentages as strings.
func (s SnapSpec) MarshalJSON() ([]byte, error) {
	if s.IsPercent() {
		return json.Marshal(s.pct)
	}
	return json.Marshal(s.px)
}

// UnmarshalJSON accepts a number or a percentage string.
func (s *SnapSpec) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Pct(str)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return &InvalidSnapSpecError{Spec: string(data), Err: err}
	}
	*s = Px(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (s SnapSpec) MarshalYAML() (any, error) {
	if s.IsPercent() {
		return s.pct, nil
	}
	return s.px, nil
}

// UnmarshalYAML accepts a number or a string. Quoted strings are always
// percentage specs, like their JSON counterparts.
func (s *SnapSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &InvalidSnapSpecError{Spec: node.Value, Err: fmt.Errorf("line %d: expected a scalar", node.Line)}
	}
	switch node.Tag {
	case "!!int", "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return &InvalidSnapSpecError{Spec: node.Value, Err: err}
		}
		*s = Px(v)
	default:
		*s = Pct(node.Value)
	}
	return nil
}
