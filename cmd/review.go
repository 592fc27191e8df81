package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Show the spaced review schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		all, _ := cmd.Flags().GetBool("all")
		srs := ws.ctrl.Scheduler()
		today := srs.Today()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-16s  %-16s  %-10s  %8s  %-7s  %s\n",
			"Exercise", "Skill", "Next", "Interval", "Rating", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 78))

		shown := 0
		for _, rec := range srs.All() {
			if !all && !rec.IsDue(today) {
				continue
			}
			skill := "?"
			if ref, ok := ws.catalog.Lookup(rec.ExerciseID); ok {
				ex, _ := ws.catalog.Get(ref)
				skill = ex.SkillID
			}
			fmt.Fprintf(out, "%-16s  %-16s  %-10s  %7dd  %-7s  %s\n",
				rec.ExerciseID, skill, rec.NextReviewDate, rec.Interval, rec.Rating, rec.Status(today))
			shown++
		}

		fmt.Fprintf(out, "\n%d due today, %d tracked\n", len(srs.ReviewQueue()), srs.Len())
		if shown == 0 && !all {
			fmt.Fprintln(out, "Nothing to review. Use --all to see the full schedule.")
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Bool("all", false, "Show every tracked exercise, not only due ones")
}
