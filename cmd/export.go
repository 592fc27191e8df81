package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/bhasha/internal/progress"
	"github.com/abhisek/bhasha/internal/store"
)

// exportDoc is the JSON document written by `bhasha export`.
type exportDoc struct {
	Profile           progress.Snapshot        `json:"profile"`
	SessionsCompleted int                      `json:"sessionsCompleted"`
	Reviews           []store.ReviewRecordData `json:"reviews"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the learner profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		doc := exportDoc{
			Profile:           ws.ctrl.Profile().Snapshot(),
			SessionsCompleted: ws.ctrl.SessionsCompleted(),
			Reviews:           ws.ctrl.Scheduler().SnapshotData(),
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		data = append(data, '\n')

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")
}
