package panel

import (
	"fmt"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/model"
)

// Badge is a qualitative label attached to an insight.
type Badge struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Insight is one row of the key insights list. Trend is nil when there is no
// measured change to show.
type Insight struct {
	Title       string   `json:"title"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	Trend       *float64 `json:"trend,omitempty"`
	Badge       *Badge   `json:"badge,omitempty"`
}

// GrowthBadge labels a growth status bucket.
func GrowthBadge(s model.GrowthStatus) Badge {
	switch s {
	case model.GrowthExcellent:
		return Badge{Text: "Excellent Growth", Tone: ToneGood}
	case model.GrowthGood:
		return Badge{Text: "Good Growth", Tone: ToneInfo}
	case model.GrowthSlow:
		return Badge{Text: "Slow Growth", Tone: ToneWarn}
	default:
		return Badge{Text: "No Growth", Tone: ToneBad}
	}
}

// ChurnBadge labels a churn status bucket.
func ChurnBadge(s model.ChurnStatus) Badge {
	switch s {
	case model.ChurnExcellent:
		return Badge{Text: "Excellent", Tone: ToneGood}
	case model.ChurnGood:
		return Badge{Text: "Good", Tone: ToneInfo}
	case model.ChurnAverage:
		return Badge{Text: "Average", Tone: ToneWarn}
	default:
		return Badge{Text: "High Risk", Tone: ToneBad}
	}
}

// TimeToGoalText describes the months-to-goal estimate. An unreachable
// estimate reads "Set growth rate". A zero or negative estimate means the
// user goal is already met and reads "Goal reached" rather than asking for
// a growth rate.
func TimeToGoalText(r model.MetricsReport) string {
	switch {
	case !r.GoalReachable:
		return "Set growth rate"
	case r.MonthsToGoal <= 0:
		return "Goal reached"
	default:
		return cli.FormatMonths(r.MonthsToGoal)
	}
}

// Insights returns the key insight rows for a snapshot.
func Insights(s model.BusinessSnapshot, r model.MetricsReport) []Insight {
	trend := r.Trend
	growthBadge := GrowthBadge(r.GrowthStatus)
	churnBadge := ChurnBadge(r.ChurnStatus)

	monthly := Insight{
		Title:       "Monthly Growth",
		Value:       trimFloat(s.GrowthRate) + "%",
		Description: "Target growth rate",
	}
	if trend.UserPct != 0 {
		monthly.Value = trimFloat(trend.UserPct) + "%"
		monthly.Description = "Actual last month"
		monthly.Trend = ptr(trend.UserPct)
	}

	revenue := Insight{
		Title:       "Revenue Trend",
		Value:       "N/A",
		Description: "No historical data",
	}
	rpu := Insight{
		Title:       "Revenue per User",
		Value:       cli.FormatCurrency(r.RevenuePerUser),
		Description: "Average monthly revenue",
	}
	if trend.RevenuePct != 0 {
		revenue.Value = cli.FormatSignedPercent(trend.RevenuePct)
		revenue.Description = "Last month change"
		revenue.Trend = ptr(trend.RevenuePct)
		rpu.Trend = ptr(trend.RevenuePct)
	}

	return []Insight{
		{Title: "Time to Goal", Value: TimeToGoalText(r), Description: "At current growth rate"},
		rpu,
		monthly,
		{
			Title:       "User Momentum",
			Value:       trimFloat(s.GrowthRate) + "%",
			Description: "Monthly user growth target",
			Badge:       &growthBadge,
		},
		{
			Title:       "Churn Rate",
			Value:       trimFloat(s.ChurnRate) + "%",
			Description: "Monthly user churn",
			Badge:       &churnBadge,
		},
		revenue,
	}
}

// TrendArrow returns the arrow shown next to a trend value.
func TrendArrow(v float64) string {
	switch {
	case v > 0:
		return "↗"
	case v < 0:
		return "↘"
	default:
		return "→"
	}
}

// TrendTone colors a trend by direction.
func TrendTone(v float64) Tone {
	switch {
	case v > 0:
		return ToneGood
	case v < 0:
		return ToneBad
	default:
		return ToneNeutral
	}
}

func ptr(v float64) *float64 { return &v }

// ShareText is the progress summary meant for social posts.
func ShareText(s model.BusinessSnapshot) string {
	progress := 0.0
	if s.GoalUsers > 0 {
		progress = float64(s.CurrentUsers) / float64(s.GoalUsers) * 100
	}
	return fmt.Sprintf("🚀 %s Progress Update!\n\n📊 Current Users: %s\n🎯 Goal: %s users\n📈 Progress: %d%%\n\n#SaaS #Growth #Startup",
		s.Name,
		cli.FormatNumber(int64(s.CurrentUsers)),
		cli.FormatNumber(int64(s.GoalUsers)),
		roundHalfUp(progress),
	)
}
