package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/saastrack/internal/panel"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var flagShareCopy bool

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a progress update ready to post",
	RunE:  runShare,
}

func init() {
	shareCmd.Flags().BoolVarP(&flagShareCopy, "copy", "c", false, "Copy the text to the clipboard")
	rootCmd.AddCommand(shareCmd)
}

func runShare(_ *cobra.Command, _ []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	warnIncomplete(s)

	text := panel.ShareText(s)
	fmt.Println(text)

	if flagShareCopy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "\n  Copied to clipboard.")
		}
	}
	return nil
}
