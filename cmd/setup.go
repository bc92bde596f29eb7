package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/saastrack/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive form for the required business fields",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	base, err := ws.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	vals := tui.SetupValuesFrom(base)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	s, err := vals.Apply(base)
	if err != nil {
		return err
	}
	rev, err := ws.SaveSnapshot(s)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Info().Str("revision", rev).Msg("snapshot saved")

	fmt.Println()
	fmt.Printf("  Saved %s to %s\n", s.Name, appCfg.DBPath())
	fmt.Println("  Run `saastrack` for the summary or `saastrack tui` for the dashboard.")
	fmt.Println()
	return nil
}
