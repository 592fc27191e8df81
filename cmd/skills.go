package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List skills with mastery and accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		profile := ws.ctrl.Profile()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-16s  %-24s  %-10s  %9s  %7s  %8s\n",
			"ID", "Name", "Language", "Exercises", "Mastery", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 85))

		skills := ws.catalog.Skills()
		for _, sk := range skills {
			name := sk.Name
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			mastery, accuracy := "-", "-"
			if profile.HasSkill(sk.ID) {
				sp := profile.Skill(sk.ID)
				mastery = fmt.Sprintf("%d%%", sp.MasteryLevel)
				accuracy = fmt.Sprintf("%.0f%%", sp.Accuracy())
			}
			fmt.Fprintf(out, "%-16s  %-24s  %-10s  %9d  %7s  %8s\n",
				sk.ID, name, sk.Language, len(ws.catalog.ExercisesForSkill(sk.ID)), mastery, accuracy)
		}

		fmt.Fprintf(out, "\n%d skills, %d exercises\n", len(skills), ws.catalog.Len())
		return nil
	},
}
