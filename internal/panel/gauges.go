package panel

import (
	"fmt"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/model"
)

// Gauge is one goal or performance bar.
type Gauge struct {
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	Note     string  `json:"note"`
	Progress float64 `json:"progress"`
	Tone     Tone    `json:"tone"`
}

// GaugeTone colors a progress value in 20-point bands.
func GaugeTone(progress float64) Tone {
	switch {
	case progress >= 80:
		return ToneGood
	case progress >= 60:
		return ToneInfo
	case progress >= 40:
		return ToneWarn
	default:
		return ToneNeutral
	}
}

// Gauges returns the user and revenue goal bars followed by the retention
// and momentum performance gauges.
func Gauges(s model.BusinessSnapshot, r model.MetricsReport) []Gauge {
	toGoal := max(s.RevenueGoal-s.MonthlyRevenue, 0)
	gs := []Gauge{
		{
			Label:    "Users",
			Value:    fmt.Sprintf("%s / %s", cli.FormatNumber(int64(s.CurrentUsers)), cli.FormatNumber(int64(s.GoalUsers))),
			Note:     cli.FormatNumber(int64(r.RemainingUsers)) + " remaining",
			Progress: r.UserProgress,
		},
		{
			Label:    "Revenue",
			Value:    fmt.Sprintf("%s / %s", cli.FormatWholeCurrency(s.MonthlyRevenue), cli.FormatWholeCurrency(s.RevenueGoal)),
			Note:     cli.FormatWholeCurrency(toGoal) + " to goal",
			Progress: r.RevenueProgress,
		},
		{
			Label:    "Retention Rate",
			Value:    fmt.Sprintf("%.1f / 100", r.RetentionRate),
			Note:     fmt.Sprintf("%d%% complete", roundHalfUp(r.RetentionGauge)),
			Progress: r.RetentionGauge,
		},
		{
			Label:    "Growth Momentum",
			Value:    fmt.Sprintf("%s / 20", trimFloat(r.GrowthMomentum)),
			Note:     fmt.Sprintf("%d%% complete", roundHalfUp(r.MomentumGauge)),
			Progress: r.MomentumGauge,
		},
	}
	for i := range gs {
		gs[i].Tone = GaugeTone(gs[i].Progress)
	}
	return gs
}

// Highlights are the headline figures under the gauges.
func Highlights(r model.MetricsReport) [][2]string {
	return [][2]string{
		{"Revenue per User", cli.FormatCurrency(r.RevenuePerUser)},
		{"Projected MRR at Goal", cli.FormatCurrency(r.ProjectedMRR)},
	}
}
