package cmd

import (
	"fmt"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/panel"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Key insights: trends, time to goal and status badges",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	s, err := loadSnapshot()
	if err != nil {
		return err
	}
	warnIncomplete(s)
	r := engine().Compute(s)

	fmt.Println()
	fmt.Println(cli.RenderTitle("KEY INSIGHTS"))
	fmt.Println()

	t := cli.Table{
		Headers: []string{"Insight", "Value", "Trend", "Status", "Detail"},
		Aligns:  []cli.Align{cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignLeft, cli.AlignLeft},
	}
	for _, in := range panel.Insights(s, r) {
		trend := ""
		if in.Trend != nil {
			trend = toned(panel.TrendArrow(*in.Trend)+" "+cli.FormatSignedPercent(*in.Trend), panel.TrendTone(*in.Trend))
		}
		badge := ""
		if in.Badge != nil {
			badge = toned(in.Badge.Text, in.Badge.Tone)
		}
		t.Rows = append(t.Rows, []string{in.Title, in.Value, trend, badge, in.Description})
	}
	fmt.Print(cli.RenderTable(t))
	fmt.Println()

	mix := make([][2]string, 0, len(r.RevenueBreakdown))
	for _, slice := range r.RevenueBreakdown {
		mix = append(mix, [2]string{slice.Name, cli.FormatCurrency(slice.Value)})
	}
	fmt.Print(cli.RenderKeyValues("Estimated Revenue Mix", mix))
	fmt.Println()
	fmt.Print(cli.RenderKeyValues("Highlights", panel.Highlights(r)))
	fmt.Println()
	return nil
}
