package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bhasha/internal/app"
	"github.com/abhisek/bhasha/internal/screens/home"
	"github.com/abhisek/bhasha/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the lesson UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		skillID, _ := cmd.Flags().GetString("skill")
		return runApp(cmd, skillID)
	},
}

func init() {
	playCmd.Flags().String("skill", "", "Open a lesson for this skill id directly")
}

// runApp restores the learner, launches the TUI and saves on exit.
func runApp(cmd *cobra.Command, skillID string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	if skillID != "" {
		if _, ok := ws.catalog.Skill(skillID); !ok {
			return fmt.Errorf("unknown skill %q (see `bhasha skills`)", skillID)
		}
	}

	session.NewRecorder(ws.ctrl, ws.store.EventRepo(), ws.logger, ws.cfg.Store.WriteTimeout)
	deps := home.Deps{
		Controller: ws.ctrl,
		Catalog:    ws.catalog,
		Collector:  session.NewSummaryCollector(ws.ctrl),
		Plan:       ws.planOptions(),
		Events:     ws.store.EventRepo(),
	}

	runErr := app.Run(deps, skillID)
	if ws.ctrl.Active() {
		ws.ctrl.EndLesson()
	}
	if err := ws.Save(context.Background()); err != nil {
		ws.logger.Error("save learner", "error", err)
		if runErr == nil {
			return fmt.Errorf("save progress: %w", err)
		}
	}
	return runErr
}
