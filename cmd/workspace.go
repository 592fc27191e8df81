package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/bhasha/internal/config"
	"github.com/abhisek/bhasha/internal/content"
	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/progress"
	"github.com/abhisek/bhasha/internal/session"
	"github.com/abhisek/bhasha/internal/store"
)

// workspace is the learner state restored from the store, ready to drive
// lessons or reports.
type workspace struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
	store   *store.Store
	catalog *exercise.Catalog
	ctrl    *session.Controller
}

// openWorkspace loads config and content, opens the store and restores
// the profile and review schedule from the latest snapshot.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, logFile, err := config.SetupLogging(cfg)
	if err != nil {
		return nil, err
	}
	ws := &workspace{cfg: cfg, logger: logger, logFile: logFile}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		ws.Close()
		return nil, err
	}
	ws.store, err = store.Open(cfg.DBPath)
	if err != nil {
		ws.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	ws.catalog, err = content.Load(cfg.ContentPath, logger)
	if err != nil {
		ws.Close()
		return nil, err
	}

	simulate, _ := cmd.Flags().GetInt("simulate-days")
	if err := ws.restore(cmd.Context(), simulate); err != nil {
		ws.Close()
		return nil, err
	}
	return ws, nil
}

// restore rebuilds the controller from the latest snapshot. A positive
// simulateDays moves the profile's today forward before the streak check.
func (ws *workspace) restore(ctx context.Context, simulateDays int) error {
	snap, err := ws.store.SnapshotRepo().Latest(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	profile := progress.NewProfile()
	var completed int
	if snap != nil {
		profile, err = progress.FromSnapshot(snap.Data.Profile)
		if err != nil {
			return fmt.Errorf("restore profile: %w", err)
		}
		completed = snap.Data.SessionsCompleted
	}
	if simulateDays > 0 {
		profile.AdvanceSimulatedDate(simulateDays)
		ws.logger.Info("simulated date", "days", simulateDays, "today", profile.Today().String())
	}
	profile.CheckStreakValidity()

	// The controller's scheduler reads today from its current profile.
	ws.ctrl = session.NewController(profile,
		session.WithLogger(ws.logger),
		session.WithSessionsCompleted(completed),
	)
	srs := ws.ctrl.Scheduler()
	rows, err := ws.store.ReviewRepo().LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load review records: %w", err)
	}
	if err := srs.LoadSnapshot(rows); err != nil {
		ws.logger.Warn("skipped review records", "error", err)
	}

	ws.logger.Info("learner restored", "xp", profile.CurrentXP, "streak", profile.Streak,
		"reviews", srs.Len(), "sessions_completed", completed)
	return nil
}

// planOptions maps session settings to lesson planning options.
func (ws *workspace) planOptions() session.PlanOptions {
	return session.PlanOptions{
		MaxExercises: ws.cfg.Session.MaxExercises,
		Shuffle:      ws.cfg.Session.Shuffle,
		ReviewFirst:  ws.cfg.Session.ReviewFirst,
	}
}

// Save writes a profile snapshot and every review record, then prunes old
// snapshots.
func (ws *workspace) Save(ctx context.Context) error {
	seq, err := ws.store.EventRepo().LastSequence(ctx)
	if err != nil {
		return fmt.Errorf("read event sequence: %w", err)
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Profile:           ws.ctrl.Profile().Snapshot(),
			SessionsCompleted: ws.ctrl.SessionsCompleted(),
		},
	}
	if err := ws.store.SnapshotRepo().Save(ctx, snap); err != nil {
		return err
	}
	if err := ws.store.ReviewRepo().SaveAll(ctx, ws.ctrl.Scheduler().SnapshotData()); err != nil {
		return err
	}
	if err := ws.store.SnapshotRepo().Prune(ctx, ws.cfg.Store.SnapshotKeep); err != nil {
		return err
	}
	ws.logger.Info("learner saved", "snapshot_id", snap.ID, "sequence", seq)
	return nil
}

// Close releases the store and log file.
func (ws *workspace) Close() {
	if ws.store != nil {
		if err := ws.store.Close(); err != nil {
			ws.logger.Error("close store", "error", err)
		}
	}
	if ws.logFile != nil {
		ws.logFile.Close()
	}
}
