package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/metrics"

	"github.com/spf13/cobra"
)

var flagForecastMonths int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Monthly history with a compounding projection",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&flagForecastMonths, "months", "m", 0, "Months to project (default from config)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	if flagForecastMonths < 0 {
		return errors.New("--months must not be negative")
	}
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	if len(s.History) == 0 {
		fmt.Println("\n  No monthly history yet.")
		fmt.Println("  Add months with `saastrack history add` or `saastrack history import`.")
		return nil
	}

	eng := engine()
	months := flagForecastMonths
	if months == 0 {
		months = eng.Heuristics().ForecastMonths
	}
	series := eng.ProjectForward(s.History, s.GrowthRate, months)
	changes := metrics.MonthOverMonth(s.History)

	users := make([]float64, len(series))
	revenue := make([]float64, len(series))
	for i, p := range series {
		users[i] = float64(p.Users)
		revenue[i] = p.Revenue
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %d months at %s growth", months, cli.FormatPercent(s.GrowthRate))))
	fmt.Println()
	fmt.Printf("  Users    %s\n", cli.RenderSparkline(users))
	fmt.Printf("  Revenue  %s\n\n", cli.RenderSparkline(revenue))

	t := cli.Table{
		Headers: []string{"Month", "Users", "Δ Users", "Revenue", "Δ Revenue"},
	}
	for _, c := range changes {
		t.Rows = append(t.Rows, []string{
			c.Month,
			cli.FormatNumber(int64(c.Users)),
			cli.FormatSignedPercent(c.UserGrowthPct),
			cli.FormatCurrency(c.Revenue),
			cli.FormatSignedPercent(c.RevenueGrowthPct),
		})
	}
	if months > 0 {
		t.Rows = append(t.Rows, []string{cli.SeparatorRow})
	}
	for _, p := range series[len(s.History):] {
		t.Rows = append(t.Rows, []string{
			cli.Muted(p.Month),
			cli.Muted(cli.FormatNumber(int64(p.Users))),
			"",
			cli.Muted(cli.FormatCurrency(p.Revenue)),
			"",
		})
	}
	fmt.Print(cli.RenderTable(t))

	trend := metrics.ComputeTrend(s.History)
	fmt.Println()
	fmt.Print(cli.RenderKeyValues("Last month", [][2]string{
		{"User trend", cli.FormatSignedPercent(trend.UserPct)},
		{"Revenue trend", cli.FormatSignedPercent(trend.RevenuePct)},
	}))
	fmt.Println()
	return nil
}
