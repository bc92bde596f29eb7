// Package panel turns a snapshot and its metrics report into display-ready
// cards, insights and gauges shared by the CLI, the TUI and the daemon.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/model"
)

// Tone is the color hint a renderer applies to a value.
type Tone int

// Tones, from neutral to alarming.
const (
	ToneNeutral Tone = iota
	ToneGood
	ToneInfo
	ToneWarn
	ToneBad
)

func (t Tone) String() string {
	switch t {
	case ToneGood:
		return "good"
	case ToneInfo:
		return "info"
	case ToneWarn:
		return "warn"
	case ToneBad:
		return "bad"
	default:
		return "neutral"
	}
}

// Card is one advanced metric tile.
type Card struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Note        string  `json:"note"`
	Target      string  `json:"target,omitempty"`
	Progress    float64 `json:"progress,omitempty"`
	HasProgress bool    `json:"has_progress"`
	Tone        Tone    `json:"tone"`
}

// Card titles.
const (
	TitleMRR       = "Monthly Recurring Revenue"
	TitleARR       = "Annual Recurring Revenue"
	TitleDAU       = "Daily Active Users"
	TitleWAU       = "Weekly Active Users"
	TitleRPU       = "Revenue per User"
	TitleCLV       = "Customer Lifetime Value"
	TitleCAC       = "Customer Acquisition Cost"
	TitleLTVCAC    = "LTV:CAC Ratio"
	TitleNRR       = "Net Revenue Retention"
	TitleRetention = "Retention Rate"
	TitleEfficient = "Growth Efficiency"
	TitlePayback   = "Payback Period"
)

// Cards lists the twelve advanced metrics in display order. Undefined values
// render as "Not set" or "N/A".
func Cards(s model.BusinessSnapshot, r model.MetricsReport, h config.Heuristics) []Card {
	cac := "Not set"
	if r.CustomerAcquisitionCost > 0 {
		cac = cli.FormatWholeCurrency(r.CustomerAcquisitionCost)
	}
	payback := "N/A"
	if r.PaybackPeriodMonths > 0 {
		payback = cli.FormatMonths(r.PaybackPeriodMonths)
	}

	return []Card{
		{
			Title: TitleMRR, Value: cli.FormatCurrency(r.MonthlyRecurringRevenue), Note: "current month",
			Target: cli.FormatWholeCurrency(s.RevenueGoal), Progress: r.MRRProgress, HasProgress: true,
			Tone: ToneGood,
		},
		{
			Title: TitleARR, Value: cli.FormatCurrency(r.AnnualRecurringRevenue), Note: "projected annually",
			Target: cli.FormatWholeCurrency(s.RevenueGoal * 12), Progress: r.ARRProgress, HasProgress: true,
			Tone: ToneInfo,
		},
		{Title: TitleDAU, Value: cli.FormatNumber(int64(r.DailyActiveUsers)), Note: "estimated daily", Tone: ToneInfo},
		{Title: TitleWAU, Value: cli.FormatNumber(int64(r.WeeklyActiveUsers)), Note: "estimated weekly"},
		{Title: TitleRPU, Value: cli.FormatCurrency(r.RevenuePerUser), Note: "current average", Tone: ToneGood},
		{Title: TitleCLV, Value: cli.FormatWholeCurrency(r.CustomerLifetimeValue), Note: "based on churn rate", Tone: ToneGood},
		{Title: TitleCAC, Value: cac, Note: "estimated cost", Tone: ToneInfo},
		{
			Title: TitleLTVCAC, Value: cli.FormatRatio(r.LTVCACRatio), Note: "business health metric",
			Target: trimFloat(h.LTVCACTarget) + ":1", Progress: r.LTVCACProgress, HasProgress: true,
			Tone: healthTone(r.LTVCACHealthy, ToneNeutral),
		},
		{
			Title: TitleNRR, Value: fmt.Sprintf("%.1f%%", r.NetRevenueRetention), Note: "growth minus churn",
			Target: trimFloat(h.NRRTarget) + "%", Progress: r.NRRProgress, HasProgress: true,
			Tone: healthTone(r.NRRHealthy, ToneBad),
		},
		{
			Title: TitleRetention, Value: fmt.Sprintf("%.1f%%", r.RetentionRate), Note: "monthly retention",
			Target: trimFloat(h.RetentionTarget) + "%", Progress: r.RetentionProgress, HasProgress: true,
			Tone: healthTone(r.RetentionHealthy, ToneBad),
		},
		{Title: TitleEfficient, Value: fmt.Sprintf("%.1fx", r.GrowthEfficiency), Note: "current efficiency", Tone: ToneInfo},
		{Title: TitlePayback, Value: payback, Note: "time to recover CAC"},
	}
}

func healthTone(healthy bool, otherwise Tone) Tone {
	if healthy {
		return ToneGood
	}
	return otherwise
}

// Filter keeps the cards whose title contains any of the terms,
// case-insensitively. No terms keeps everything.
type Filter []string

// Apply returns the matching cards in their original order.
func (f Filter) Apply(cards []Card) []Card {
	if len(f) == 0 {
		return cards
	}
	var out []Card
	for _, c := range cards {
		title := strings.ToLower(c.Title)
		for _, term := range f {
			term = strings.ToLower(strings.TrimSpace(term))
			if term != "" && strings.Contains(title, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// trimFloat formats v without trailing zeros, e.g. 3 -> "3", 2.5 -> "2.5".
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundHalfUp rounds to the nearest integer with halves rounded up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
