package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/bhasha/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "bhasha",
	Short: "Language lessons in your terminal",
	Long:  "Bhasha runs short vocabulary and script lessons with XP, streaks and spaced review.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is the common case.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BHASHA_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to a JSON or YAML content pack (overrides BHASHA_CONTENT env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/bhasha/config.yaml)")
	rootCmd.PersistentFlags().Int("simulate-days", 0, "Pretend today is this many days ahead, for trying out streaks and reviews")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from the config file, then the environment,
// then command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		cfg.ContentPath = p
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}
