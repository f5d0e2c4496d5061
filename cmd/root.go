package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/sheet/internal/workdir"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Draggable bottom sheet for the terminal",
	Long: `sheet - a multi-position bottom panel for terminal UIs.

The panel rests at host-defined snap points (absolute offsets or percentages
of the screen height), can be dragged between them with the mouse, and
dismisses itself when it settles on a 0 or "0%" point.

Settings are read from .sheet/config.yaml; flags override them.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
}

func initBaseDir() {
	if baseDir != "" {
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(wd)
}

// getBaseDir returns the directory holding .sheet/
func getBaseDir() string {
	return baseDir
}
