package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/logger"
	"github.com/theirongolddev/saastrack/internal/tui"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Background fills need a color profile even when stdout is not detected as a tty.
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns stderr while the dashboard runs.
	logPath := filepath.Join(config.DataDir(), "tui.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	//nolint:gosec // log path is under the user's data directory
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open tui log: %w", err)
	}
	defer func() { _ = logf.Close() }()

	app := tui.NewApp(appCfg, logger.New(logger.Options{
		Component: "tui",
		Level:     logger.ParseLevel(appCfg.Log.Level),
		Format:    appCfg.Log.Format,
		Output:    logf,
	}))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
