package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and heuristics",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	status := "using defaults (no config file)"
	if config.Exists() {
		status = "loaded"
	}
	fmt.Println()
	fmt.Print(cli.RenderKeyValues("Files", [][2]string{
		{"Config file", config.Path()},
		{"Status", status},
		{"Workspace", cfg.DBPath()},
	}))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Dashboard", [][2]string{
		{"Theme", cfg.Appearance.Theme},
		{"Auto refresh", strconv.FormatBool(cfg.TUI.AutoRefresh)},
		{"Refresh interval", fmt.Sprintf("%ds", cfg.TUI.RefreshIntervalSec)},
	}))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Daemon", [][2]string{
		{"Address", cfg.Daemon.Addr},
		{"Poll interval", fmt.Sprintf("%ds", cfg.Daemon.IntervalSec)},
		{"Event buffer", strconv.Itoa(cfg.Daemon.EventsBuffer)},
	}))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Logging", [][2]string{
		{"Level", cfg.Log.Level},
		{"Format", cfg.Log.Format},
	}))
	fmt.Println()

	h := cfg.Heuristics()
	fmt.Print(cli.RenderKeyValues("Heuristics", [][2]string{
		{"DAU ratio", cli.FormatPercent(h.DAURatio * 100)},
		{"WAU ratio", cli.FormatPercent(h.WAURatio * 100)},
		{"CAC user multiple", cli.FormatRatio(h.CACUserMultiple)},
		{"CAC revenue share", cli.FormatPercent(h.CACRevenueShare * 100)},
		{"Lifetime months", strconv.FormatFloat(h.LifetimeMonths, 'f', -1, 64)},
		{"No-churn lifetime", cli.FormatMonths(int(h.NoChurnLifetimeMonths))},
		{"Retention target", cli.FormatPercent(h.RetentionTarget)},
		{"NRR target", cli.FormatPercent(h.NRRTarget)},
		{"LTV:CAC target", cli.FormatRatio(h.LTVCACTarget)},
		{"Revenue premium", fmt.Sprintf("+%s pts", strconv.FormatFloat(h.ForecastRevenuePremium, 'f', -1, 64))},
		{"Forecast months", strconv.Itoa(h.ForecastMonths)},
	}))
	fmt.Println()

	fmt.Printf("  Environment overrides use the %s_ prefix.\n", config.EnvPrefix)
	return nil
}
