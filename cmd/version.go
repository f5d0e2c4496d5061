package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/sheet/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := version
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(output.Stdout, "sheet %s\n", v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
