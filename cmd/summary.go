package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/spf13/cobra"
)

var (
	flagOnly []string
	flagJSON bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "KPI table with goal progress and status",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringSliceVar(&flagOnly, "only", nil, "Show only metrics whose name contains these terms")
		c.Flags().BoolVar(&flagJSON, "json", false, "Print the snapshot and report as JSON")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	r := engine().Compute(s)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Snapshot any      `json:"snapshot"`
			Metrics  any      `json:"metrics"`
			Missing  []string `json:"missing,omitempty"`
		}{s, r, validate.Snapshot(s).MissingNames()})
	}

	warnIncomplete(s)

	name := s.Name
	if name == "" {
		name = "Untitled"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(name) + "  Growth Summary"))
	fmt.Println()

	goals := cli.Table{
		Title:   "Goals",
		Headers: []string{"Goal", "Current", "Target", "Progress"},
		Aligns:  []cli.Align{cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignLeft},
	}
	for _, g := range panel.Gauges(s, r) {
		goals.Rows = append(goals.Rows, []string{g.Label, g.Value, g.Note, cli.RenderProgressBar(g.Progress, 20)})
	}
	fmt.Print(cli.RenderTable(goals))
	fmt.Println()

	cards := panel.Filter(flagOnly).Apply(panel.Cards(s, r, appCfg.Heuristics()))
	if len(cards) == 0 {
		fmt.Printf("  No metrics match %s\n", strings.Join(flagOnly, ", "))
		return nil
	}
	kpis := cli.Table{
		Title:   "Metrics",
		Headers: []string{"Metric", "Value", "Target", "Progress", "Note"},
		Aligns:  []cli.Align{cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignLeft, cli.AlignLeft},
	}
	for _, c := range cards {
		progress := ""
		if c.HasProgress {
			progress = cli.RenderProgressBar(c.Progress, 12)
		}
		kpis.Rows = append(kpis.Rows, []string{c.Title, toned(c.Value, c.Tone), c.Target, progress, c.Note})
	}
	fmt.Print(cli.RenderTable(kpis))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Status", [][2]string{
		{"Growth", toned(panel.GrowthBadge(r.GrowthStatus).Text, panel.GrowthBadge(r.GrowthStatus).Tone)},
		{"Churn", toned(panel.ChurnBadge(r.ChurnStatus).Text, panel.ChurnBadge(r.ChurnStatus).Tone)},
		{"Time to goal", panel.TimeToGoalText(r)},
	}))
	fmt.Println()
	return nil
}

// toned colors s by a panel tone.
func toned(s string, tone panel.Tone) string {
	switch tone {
	case panel.ToneGood:
		return cli.Good(s)
	case panel.ToneInfo:
		return cli.Info(s)
	case panel.ToneWarn:
		return cli.Warn(s)
	case panel.ToneBad:
		return cli.Bad(s)
	default:
		return s
	}
}

func warningLine(res validate.Result) string {
	return cli.RenderWarning(fmt.Sprintf("Missing required fields: %s. Run `saastrack setup` or `saastrack set`.",
		strings.Join(res.MissingLabels(), ", ")))
}
