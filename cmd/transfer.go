package cmd

import (
	"fmt"

	"github.com/theirongolddev/saastrack/internal/source"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the workspace snapshot with a JSON, YAML or TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the snapshot and history to a JSON, YAML or TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	s, err := source.ReadSnapshot(args[0])
	if err != nil {
		return err
	}
	s = validate.Normalize(s)

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	rev, err := ws.SaveSnapshot(s)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Info().Str("revision", rev).Str("file", args[0]).Msg("snapshot imported")

	fmt.Printf("  Imported %q with %d months of history\n", s.Name, len(s.History))
	warnIncomplete(s)
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	if err := source.WriteSnapshot(args[0], s); err != nil {
		return err
	}
	fmt.Printf("  Exported to %s\n", args[0])
	return nil
}
