// Package cmd implements the saastrack CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/logger"
	"github.com/theirongolddev/saastrack/internal/metrics"
	"github.com/theirongolddev/saastrack/internal/model"
	"github.com/theirongolddev/saastrack/internal/store"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDBPath   string
	flagQuiet    bool
	flagLogLevel string
)

// appCfg and log are set up by the root pre-run hook for every command.
var (
	appCfg = config.DefaultConfig()
	log    = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "saastrack",
	Short: "SaaS growth tracker",
	Long:  "Track users and revenue against your goals and derive MRR, ARR, LTV, CAC, retention and churn.",
	RunE:  runSummary,

	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Workspace database path (default "+config.DataDir()+"/workspace.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings and progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadRuntime loads .env, the config file and SAASTRACK_* overrides, then applies
// command-line flags on top.
func loadRuntime(_ *cobra.Command, _ []string) error {
	config.LoadDotEnv()

	cfg, err := config.LoadEffective()
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.General.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	appCfg = cfg

	log = componentLogger("cli")
	log.Debug().Str("db", cfg.DBPath()).Str("config", config.Path()).Msg("configuration loaded")
	return nil
}

func componentLogger(component string) zerolog.Logger {
	return logger.New(logger.Options{
		Component: component,
		Level:     logger.ParseLevel(appCfg.Log.Level),
		Format:    appCfg.Log.Format,
	})
}

func openWorkspace() (*store.Workspace, error) {
	ws, err := store.Open(appCfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening workspace: %w", err)
	}
	return ws, nil
}

// loadSnapshot reads the current snapshot and closes the workspace.
func loadSnapshot() (model.BusinessSnapshot, error) {
	ws, err := openWorkspace()
	if err != nil {
		return model.BusinessSnapshot{}, err
	}
	defer ws.Close()

	s, err := ws.LoadSnapshot()
	if err != nil {
		return s, fmt.Errorf("loading snapshot: %w", err)
	}
	return s, nil
}

func engine() metrics.Engine {
	return metrics.New(appCfg.Heuristics())
}

// warnIncomplete prints which required fields are missing. Metrics are still
// computed; undefined ones show as sentinels.
func warnIncomplete(s model.BusinessSnapshot) {
	res := validate.Snapshot(s)
	if res.Complete() || flagQuiet {
		return
	}
	log.Debug().Strs("missing", res.MissingNames()).Msg("incomplete snapshot")
	fmt.Fprintln(os.Stderr, warningLine(res))
}
