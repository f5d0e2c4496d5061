package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/sheet/internal/config"
	"github.com/marcus/sheet/internal/output"
	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheetui"
)

// fallbackRows is used when stdout is not a terminal.
const fallbackRows = 24

type resolvedPoint struct {
	Index   int            `json:"index"`
	Spec    sheet.SnapSpec `json:"spec"`
	Offset  float64        `json:"offset"`
	Y       float64        `json:"y"`
	Dismiss bool           `json:"dismiss"`
	Opacity float64        `json:"backdrop_opacity"`
}

type resolveResult struct {
	ScreenHeight float64         `json:"screen_height"`
	Points       []resolvedPoint `json:"points"`
}

var (
	resolveSnap      []sheet.SnapSpec
	resolveHeight    float64
	resolveRowHeight int
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved snap points for a screen height",
	Long: `Resolves snap specs against a screen height in pixels.

Without --height the height is the terminal's row count times --row-height.
Specs default to the ones in .sheet/config.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs := resolveSnap
		if !cmd.Flags().Changed("snap") {
			cfg, err := config.Load(getBaseDir())
			if err != nil {
				output.Error("load config: %v", err)
				return err
			}
			specs = cfg.Snap
		}

		height := resolveHeight
		if !cmd.Flags().Changed("height") {
			height = float64(terminalRows() * resolveRowHeight)
		}

		result, err := resolveSnapPoints(specs, height)
		if err != nil {
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				output.JSONError("invalid_snap_points", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(result)
		}
		fmt.Fprintln(output.Stdout, output.RenderTree(resultTree(result), output.TreeRenderOptions{ShowMarks: true}))
		return nil
	},
}

func init() {
	f := resolveCmd.Flags()
	f.Var(newSnapSpecsValue(config.Default().Snap, &resolveSnap), "snap", "snap points, e.g. 0,50%,600")
	f.Float64Var(&resolveHeight, "height", 0, "screen height in pixels")
	f.IntVar(&resolveRowHeight, "row-height", sheetui.DefaultRowHeight, "pixels per terminal row")
	f.Bool("json", false, "JSON output")

	rootCmd.AddCommand(resolveCmd)
}

// terminalRows returns the height of the terminal on stdout.
func terminalRows() int {
	_, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || rows <= 0 {
		return fallbackRows
	}
	return rows
}

func resolveSnapPoints(specs []sheet.SnapSpec, height float64) (*resolveResult, error) {
	if len(specs) == 0 {
		return nil, &sheet.ConfigError{Field: "SnapPoints", Reason: "at least one snap point is required"}
	}
	if height <= 0 {
		return nil, &sheet.ConfigError{Field: "ScreenHeight", Reason: fmt.Sprintf("must be positive, got %v", height)}
	}
	points, err := sheet.ResolveSnapPoints(specs, height)
	if err != nil {
		return nil, err
	}
	result := &resolveResult{ScreenHeight: height}
	for i, p := range points {
		result.Points = append(result.Points, resolvedPoint{
			Index:   i,
			Spec:    specs[i],
			Offset:  height - p.Y,
			Y:       p.Y,
			Dismiss: sheet.IsDismissSpec(specs[i]),
			Opacity: sheet.BackdropOpacity(p.Y, height),
		})
	}
	return result, nil
}

func resultTree(r *resolveResult) output.TreeNode {
	root := output.TreeNode{Label: fmt.Sprintf("screen height %g", r.ScreenHeight)}
	for _, p := range r.Points {
		node := output.TreeNode{
			Label: fmt.Sprintf("[%d] %s  y=%g  offset=%g  backdrop=%.2f", p.Index, p.Spec, p.Y, p.Offset, p.Opacity),
		}
		if p.Dismiss {
			node.Mark = "✗ dismiss"
		}
		root.Children = append(root.Children, node)
	}
	return root
}
