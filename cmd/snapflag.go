package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/marcus/sheet/pkg/sheet"
)

// snapSpecsValue is a comma separated list of snap specs, e.g. "0,50%,600".
// Like pflag's slice flags, the first Set replaces the default and later
// ones append.
type snapSpecsValue struct {
	specs   *[]sheet.SnapSpec
	changed bool
}

var _ pflag.Value = (*snapSpecsValue)(nil)

func newSnapSpecsValue(def []sheet.SnapSpec, p *[]sheet.SnapSpec) *snapSpecsValue {
	*p = append([]sheet.SnapSpec(nil), def...)
	return &snapSpecsValue{specs: p}
}

func (v *snapSpecsValue) String() string {
	if v.specs == nil {
		return ""
	}
	parts := make([]string, len(*v.specs))
	for i, s := range *v.specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

func (v *snapSpecsValue) Set(s string) error {
	var parsed []sheet.SnapSpec
	for _, field := range strings.Split(s, ",") {
		spec, err := sheet.ParseSnapSpec(strings.TrimSpace(field))
		if err != nil {
			return err
		}
		parsed = append(parsed, spec)
	}
	if !v.changed {
		*v.specs = parsed
		v.changed = true
	} else {
		*v.specs = append(*v.specs, parsed...)
	}
	return nil
}

func (v *snapSpecsValue) Type() string {
	return "snapSpecs"
}

// snapSpecValue is a single optional snap spec. "open" clears it.
type snapSpecValue struct {
	spec **sheet.SnapSpec
}

var _ pflag.Value = (*snapSpecValue)(nil)

func (v *snapSpecValue) String() string {
	if v.spec == nil || *v.spec == nil {
		return "open"
	}
	return (*v.spec).String()
}

func (v *snapSpecValue) Set(s string) error {
	if s == "open" || s == "" {
		*v.spec = nil
		return nil
	}
	spec, err := sheet.ParseSnapSpec(s)
	if err != nil {
		return err
	}
	*v.spec = &spec
	return nil
}

func (v *snapSpecValue) Type() string {
	return "snapSpec"
}
