package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/metrics"
	"github.com/theirongolddev/saastrack/internal/model"
	"github.com/theirongolddev/saastrack/internal/source"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagHistoryReplace bool
	flagHistoryYes     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and edit the monthly users/revenue history",
	RunE:  runHistoryList,
}

var historyAddCmd = &cobra.Command{
	Use:     "add MONTH USERS REVENUE",
	Short:   "Append one month",
	Example: "  saastrack history add 2026-09 420 3150",
	Args:    cobra.ExactArgs(3),
	RunE:    runHistoryAdd,
}

var historyImportCmd = &cobra.Command{
	Use:   "import FILE.csv",
	Short: "Append months from a month,users,revenue CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryImport,
}

var historyExportCmd = &cobra.Command{
	Use:   "export [FILE.csv]",
	Short: "Write the history as CSV (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryExport,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded month",
	RunE:  runHistoryClear,
}

func init() {
	historyImportCmd.Flags().BoolVar(&flagHistoryReplace, "replace", false, "Replace the existing history instead of appending")
	historyClearCmd.Flags().BoolVarP(&flagHistoryYes, "yes", "y", false, "Confirm removal")
	historyCmd.AddCommand(historyAddCmd, historyImportCmd, historyExportCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	if len(s.History) == 0 {
		fmt.Println("\n  No monthly history yet.")
		fmt.Println("  Add months with `saastrack history add` or `saastrack history import`.")
		return nil
	}

	t := cli.Table{
		Title:   fmt.Sprintf("History (%d months)", len(s.History)),
		Headers: []string{"#", "Month", "Users", "Δ Users", "Revenue", "Δ Revenue"},
		Aligns:  []cli.Align{cli.AlignRight, cli.AlignLeft},
	}
	for i, c := range metrics.MonthOverMonth(s.History) {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			c.Month,
			cli.FormatNumber(int64(c.Users)),
			deltaCell(i, c.UserGrowthPct),
			cli.FormatCurrency(c.Revenue),
			deltaCell(i, c.RevenueGrowthPct),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(t))
	return nil
}

// deltaCell leaves the first month blank since it has nothing to compare with.
func deltaCell(i int, pct float64) string {
	if i == 0 {
		return ""
	}
	switch {
	case pct > 0:
		return cli.Good(cli.FormatSignedPercent(pct))
	case pct < 0:
		return cli.Bad(cli.FormatSignedPercent(pct))
	default:
		return cli.Muted(cli.FormatSignedPercent(pct))
	}
}

func runHistoryAdd(_ *cobra.Command, args []string) error {
	month := strings.TrimSpace(args[0])
	if month == "" {
		return errors.New("month must not be empty")
	}
	users, err := strconv.Atoi(strings.ReplaceAll(args[1], ",", ""))
	if err != nil || users < 0 {
		return fmt.Errorf("invalid users %q: want a whole number", args[1])
	}
	revenue, err := strconv.ParseFloat(strings.TrimPrefix(strings.ReplaceAll(args[2], ",", ""), "$"), 64)
	if err != nil || revenue < 0 {
		return fmt.Errorf("invalid revenue %q: want a dollar amount", args[2])
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	rev, err := ws.AppendHistory(model.MonthPoint{Month: month, Users: users, Revenue: revenue})
	if err != nil {
		return fmt.Errorf("adding month: %w", err)
	}
	log.Info().Str("revision", rev).Str("month", month).Msg("history appended")
	fmt.Printf("  Added %s: %s users, %s\n", month, cli.FormatNumber(int64(users)), cli.FormatCurrency(revenue))
	return nil
}

func runHistoryImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening history csv: %w", err)
	}
	defer f.Close()

	var progress func(int)
	var bar *progressbar.ProgressBar
	if !flagQuiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("  Reading months"),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		progress = func(rows int) { _ = bar.Set(rows) }
	}

	points, err := source.ReadHistoryCSV(f, progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("  No rows found; nothing imported.")
		return nil
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	var rev string
	if flagHistoryReplace {
		s, err := ws.LoadSnapshot()
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		s.History = points
		rev, err = ws.SaveSnapshot(validate.Normalize(s))
		if err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
	} else {
		rev, err = ws.AppendHistory(points...)
		if err != nil {
			return fmt.Errorf("appending history: %w", err)
		}
	}
	log.Info().Str("revision", rev).Int("months", len(points)).Bool("replace", flagHistoryReplace).Msg("history imported")
	fmt.Printf("  Imported %d months from %s\n", len(points), args[0])
	return nil
}

func runHistoryExport(_ *cobra.Command, args []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	toFile := len(args) == 1 && args[0] != "-"
	if toFile {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer f.Close()
		w = f
	}
	if err := source.WriteHistoryCSV(w, s.History); err != nil {
		return fmt.Errorf("writing history csv: %w", err)
	}
	if toFile && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d months to %s\n", len(s.History), args[0])
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	if !flagHistoryYes {
		return errors.New("refusing to clear history without --yes")
	}
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	rev, err := ws.ClearHistory()
	if err != nil {
		return err
	}
	log.Info().Str("revision", rev).Msg("history cleared")
	fmt.Println("  History cleared.")
	return nil
}
