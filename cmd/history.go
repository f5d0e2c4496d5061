package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/sheet/internal/db"
	"github.com/marcus/sheet/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded settle events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
			n, err := database.ClearSettles()
			if err != nil {
				output.Error("%v", err)
				return err
			}
			fmt.Fprintf(output.Stdout, "CLEARED %d events\n", n)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")
		settles, err := database.ListSettles(db.ListOptions{Session: session, Limit: limit})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if settles == nil {
				settles = []db.Settle{}
			}
			return output.JSON(settles)
		}
		printSettles(output.Stdout, settles)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum events to show (0 for all)")
	historyCmd.Flags().String("session", "", "only events from this demo session")
	historyCmd.Flags().Bool("json", false, "JSON output")
	historyCmd.Flags().Bool("clear", false, "delete all recorded events")

	rootCmd.AddCommand(historyCmd)
}

func printSettles(w io.Writer, settles []db.Settle) {
	if len(settles) == 0 {
		fmt.Fprintln(w, "No settle events recorded")
		return
	}
	for _, s := range settles {
		session := s.Session
		if len(session) > 8 {
			session = session[:8]
		}
		line := fmt.Sprintf("%s  %s  #%d  %-6s y=%-7.1f of %g",
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"), session, s.Index, s.Spec, s.OffsetY, s.ScreenHeight)
		if s.Dismissed {
			line += "  dismissed"
		}
		fmt.Fprintln(w, line)
	}
}
