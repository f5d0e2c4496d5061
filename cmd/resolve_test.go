package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/marcus/sheet/internal/output"
	"github.com/marcus/sheet/pkg/sheet"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := output.Stdout
	output.Stdout = &buf
	t.Cleanup(func() { output.Stdout = old })
	return &buf
}

func TestResolveSnapPoints(t *testing.T) {
	specs := sheet.MustParseSnapSpecs("0", "50%", "600")
	result, err := resolveSnapPoints(specs, 800)
	if err != nil {
		t.Fatalf("resolveSnapPoints() error: %v", err)
	}

	want := []struct {
		y, offset, opacity float64
		dismiss            bool
	}{
		{800, 0, 0, true},
		{400, 400, 1 - 400.0/700, false},
		{200, 600, 1 - 200.0/700, false},
	}
	if len(result.Points) != len(want) {
		t.Fatalf("points = %d, want %d", len(result.Points), len(want))
	}
	for i, w := range want {
		p := result.Points[i]
		if p.Index != i || p.Y != w.y || p.Offset != w.offset || p.Dismiss != w.dismiss {
			t.Errorf("point %d = %+v, want %+v", i, p, w)
		}
		if math.Abs(p.Opacity-w.opacity) > 1e-9 {
			t.Errorf("point %d opacity = %v, want %v", i, p.Opacity, w.opacity)
		}
	}
}

func TestResolveSnapPointsErrors(t *testing.T) {
	tests := []struct {
		name   string
		specs  []sheet.SnapSpec
		height float64
		want   error
	}{
		{"no specs", nil, 800, sheet.ErrInvalidConfiguration},
		{"zero height", sheet.MustParseSnapSpecs("0"), 0, sheet.ErrInvalidConfiguration},
		{"bad percent", []sheet.SnapSpec{sheet.Pct("abc%")}, 800, sheet.ErrInvalidSnapSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSnapPoints(tt.specs, tt.height)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResultTree(t *testing.T) {
	result, err := resolveSnapPoints(sheet.MustParseSnapSpecs("0", "50%"), 320)
	if err != nil {
		t.Fatalf("resolveSnapPoints() error: %v", err)
	}
	root := resultTree(result)
	if root.Label != "screen height 320" {
		t.Errorf("root label = %q", root.Label)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Mark == "" || root.Children[1].Mark != "" {
		t.Errorf("only the dismiss point should be marked: %+v", root.Children)
	}
	if !strings.Contains(root.Children[1].Label, "y=160") {
		t.Errorf("label = %q, want y=160", root.Children[1].Label)
	}
}

func TestResolveCommandJSON(t *testing.T) {
	buf := captureStdout(t)
	resetSnapFlag(t)

	rootCmd.SetArgs([]string{"resolve", "--snap", "0,50%,600", "--height", "800", "--json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var got resolveResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, buf.String())
	}
	if got.ScreenHeight != 800 || len(got.Points) != 3 {
		t.Fatalf("result = %+v", got)
	}
	if got.Points[1].Spec != sheet.Pct("50%") || got.Points[2].Spec != sheet.Px(600) {
		t.Errorf("specs not preserved: %v, %v", got.Points[1].Spec, got.Points[2].Spec)
	}
}

// resetSnapFlag makes the next --snap replace the list instead of
// appending to what an earlier Execute set.
func resetSnapFlag(t *testing.T) {
	t.Helper()
	resolveCmd.Flags().Lookup("snap").Value.(*snapSpecsValue).changed = false
}

func TestResolveCommandTree(t *testing.T) {
	buf := captureStdout(t)
	resetSnapFlag(t)

	rootCmd.SetArgs([]string{"resolve", "--snap", "0,50%", "--height", "320", "--json=false"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want root plus two points", buf.String())
	}
	if lines[0] != "screen height 320" {
		t.Errorf("root = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "├── [0] 0") || !strings.HasSuffix(lines[1], "✗ dismiss") {
		t.Errorf("line 1 = %q, want marked dismiss point", lines[1])
	}
	if !strings.HasPrefix(lines[2], "└── [1] 50%") || !strings.Contains(lines[2], "y=160") {
		t.Errorf("line 2 = %q, want last point at y=160", lines[2])
	}
}
