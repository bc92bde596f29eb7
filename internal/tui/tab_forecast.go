package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/tui/components"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	series := a.projection
	if len(series) == 0 {
		return components.ContentCard("Forecast",
			mutedText("A forecast needs at least one month of history. Add months with `saastrack history add`."), cw)
	}

	projectedFrom := len(a.snapshot.History)
	labels := make([]string, len(series))
	users := make([]float64, len(series))
	revenue := make([]float64, len(series))
	for i, p := range series {
		labels[i] = p.Month
		users[i] = float64(p.Users)
		revenue[i] = p.Revenue
	}

	chartH := 10
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		chartH = 7
		halves = []int{cw, cw}
	}

	userChart := components.ContentCard(
		"Users",
		components.BarChart(components.Series{
			Values: users, Labels: labels,
			Color: t.Blue, ProjectedColor: t.TextMuted, ProjectedFrom: projectedFrom,
		}, components.CardInnerWidth(halves[0]), chartH),
		halves[0],
	)
	revenueChart := components.ContentCard(
		"Revenue",
		components.BarChart(components.Series{
			Values: revenue, Labels: labels,
			Color: t.Green, ProjectedColor: t.TextMuted, ProjectedFrom: projectedFrom,
			Currency: true,
		}, components.CardInnerWidth(halves[1]), chartH),
		halves[1],
	)

	header := fmt.Sprintf("%s months projected at %s growth (revenue +%s)  [+/-] adjust",
		cli.FormatNumber(int64(a.forecastLen)),
		cli.FormatPercent(a.snapshot.GrowthRate),
		cli.FormatPercent(a.heuristics.ForecastRevenuePremium))
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background).Render(" " + header))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(userChart)
		b.WriteString("\n")
		b.WriteString(revenueChart)
	} else {
		b.WriteString(components.CardRow([]string{userChart, revenueChart}))
	}
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Month over Month", a.monthTable(components.CardInnerWidth(cw)), cw))

	return b.String()
}

// monthTable lists history then projected months, newest last.
func (a App) monthTable(innerW int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	projStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Italic(true)

	monthW := 10
	numW := max((innerW-monthW)/4-1, 8)
	cell := func(s string) string { return fmt.Sprintf("%*s ", numW, s) }

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s ", monthW, "Month") +
		cell("Users") + cell("Δ Users") + cell("Revenue") + cell("Δ Revenue")))

	for _, c := range a.changes {
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s ", monthW, truncStr(c.Month, monthW)) +
			cell(cli.FormatNumber(int64(c.Users))) +
			cell(cli.FormatSignedPercent(c.UserGrowthPct)) +
			cell(cli.FormatCurrency(c.Revenue)) +
			cell(cli.FormatSignedPercent(c.RevenueGrowthPct))))
	}
	for _, p := range a.projection[len(a.changes):] {
		b.WriteString("\n")
		b.WriteString(projStyle.Render(fmt.Sprintf("%-*s ", monthW, truncStr(p.Month, monthW)) +
			cell(cli.FormatNumber(int64(p.Users))) + cell("") +
			cell(cli.FormatCurrency(p.Revenue)) + cell("")))
	}
	return b.String()
}
