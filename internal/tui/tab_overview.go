package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/tui/components"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	// Row 1: headline cards
	headline := []panel.Card{
		{Title: "Users", Value: cli.FormatNumber(int64(a.snapshot.CurrentUsers)),
			Note: fmt.Sprintf("%s to go", cli.FormatNumber(int64(a.report.RemainingUsers)))},
		{Title: "MRR", Value: cli.FormatCurrency(a.report.MonthlyRecurringRevenue),
			Note: "ARR " + cli.FormatCompactCurrency(a.report.AnnualRecurringRevenue)},
		{Title: "Growth", Value: cli.FormatPercent(a.snapshot.GrowthRate),
			Note: panel.GrowthBadge(a.report.GrowthStatus).Text, Tone: panel.GrowthBadge(a.report.GrowthStatus).Tone},
		{Title: "Time to Goal", Value: panel.TimeToGoalText(a.report), Note: "at current growth"},
	}
	perRow := 4
	if a.isCompactLayout() {
		perRow = 2
	}
	b.WriteString(components.MetricCardGrid(headline, perRow, cw))
	b.WriteString("\n")

	// Row 2: gauges + highlights
	gaugeW, highW := cw, cw
	if !a.isCompactLayout() {
		halves := components.LayoutRow(cw, 3)
		gaugeW = halves[0] + halves[1]
		highW = halves[2]
	}

	labelW := 0
	for _, g := range a.gauges {
		labelW = max(labelW, lipgloss.Width(g.Label))
	}
	barW := max(components.CardInnerWidth(gaugeW)-labelW-10, 8)

	var gaugeBody strings.Builder
	for i, g := range a.gauges {
		if i > 0 {
			gaugeBody.WriteString("\n")
		}
		// Value and note go on their own line so the bar keeps its width.
		value := g
		value.Value, value.Note = "", ""
		gaugeBody.WriteString(components.GaugeBar(value, labelW, barW))
		gaugeBody.WriteString("\n")
		gaugeBody.WriteString(strings.Repeat(" ", labelW+1))
		gaugeBody.WriteString(mutedText(truncStr(strings.TrimSpace(g.Value+"  "+g.Note), barW+8)))
	}
	gaugeCard := components.ContentCard("Goals & Performance", gaugeBody.String(), gaugeW)

	highCard := components.ContentCard("Highlights", keyValueBody(panel.Highlights(a.report), components.CardInnerWidth(highW)), highW)

	if a.isCompactLayout() {
		b.WriteString(gaugeCard)
		b.WriteString("\n")
		b.WriteString(highCard)
	} else {
		b.WriteString(components.CardRow([]string{gaugeCard, highCard}))
	}
	b.WriteString("\n")

	// Row 3: history sparklines
	if h := a.snapshot.History; len(h) > 0 {
		users := make([]float64, len(h))
		revenue := make([]float64, len(h))
		for i, p := range h {
			users[i] = float64(p.Users)
			revenue[i] = p.Revenue
		}
		last := h[len(h)-1]
		trend := a.report.Trend

		var body strings.Builder
		fmt.Fprintf(&body, "%s %s  %s %s\n",
			mutedText(fmt.Sprintf("%-8s", "Users")),
			components.Sparkline(users, t.Blue),
			cli.FormatNumber(int64(last.Users)),
			trendText(trend.UserPct))
		fmt.Fprintf(&body, "%s %s  %s %s",
			mutedText(fmt.Sprintf("%-8s", "Revenue")),
			components.Sparkline(revenue, t.Green),
			cli.FormatCurrency(last.Revenue),
			trendText(trend.RevenuePct))
		b.WriteString(components.ContentCard(fmt.Sprintf("History (%d months)", len(h)), body.String(), cw))
	} else {
		b.WriteString(components.ContentCard("History", mutedText("No monthly history yet. Add months with `saastrack history add`."), cw))
	}

	return b.String()
}

// keyValueBody renders label/value pairs with right-aligned values.
func keyValueBody(pairs [][2]string, innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		label := labelStyle.Render(p[0])
		value := valueStyle.Render(p[1])
		gap := max(innerW-lipgloss.Width(label)-lipgloss.Width(value), 1)
		lines[i] = label + labelStyle.Render(strings.Repeat(" ", gap)) + value
	}
	return strings.Join(lines, "\n")
}

func mutedText(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(s)
}

func toneText(s string, tone panel.Tone) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(components.ToneColor(tone)).Background(t.Surface).Render(s)
}

// trendText renders a signed percentage with its direction arrow.
func trendText(pct float64) string {
	return toneText(panel.TrendArrow(pct)+" "+cli.FormatSignedPercent(pct), panel.TrendTone(pct))
}
