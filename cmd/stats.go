package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bhasha/internal/screens/history"
	"github.com/abhisek/bhasha/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		limit, _ := cmd.Flags().GetInt("sessions")
		profile := ws.ctrl.Profile()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s learning %s\n", profile.Username, profile.SelectedLanguage)
		fmt.Fprintf(out, "XP: %d   Streak: %d days   Lessons completed: %d   Reviews due: %d\n\n",
			profile.CurrentXP, profile.Streak, ws.ctrl.SessionsCompleted(),
			len(ws.ctrl.Scheduler().ReviewQueue()))

		ids := profile.SkillIDs()
		if len(ids) > 0 {
			fmt.Fprintf(out, "%-16s  %7s  %8s  %8s  %10s\n", "Skill", "Mastery", "Answered", "Accuracy", "Completion")
			fmt.Fprintln(out, strings.Repeat("─", 57))
			for _, id := range ids {
				sp := profile.Skill(id)
				fmt.Fprintf(out, "%-16s  %6d%%  %8d  %7.0f%%  %9.0f%%\n",
					id, sp.MasteryLevel, sp.ExercisesCompleted, sp.Accuracy(), sp.CompletionPercent())
			}
			fmt.Fprintln(out)
		}

		sessions, err := ws.store.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No lessons recorded yet.")
			return nil
		}
		fmt.Fprintln(out, "Recent lessons:")
		for _, rec := range sessions {
			fmt.Fprintf(out, "  %s  +%d XP\n", history.FormatRecord(rec), rec.XPEarned)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 10, "Number of recent lessons to show")
}
