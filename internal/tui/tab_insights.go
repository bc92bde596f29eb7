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

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	titleW, valueW := 0, 0
	for _, in := range a.insights {
		titleW = max(titleW, lipgloss.Width(in.Title))
		valueW = max(valueW, lipgloss.Width(in.Value))
	}

	var body strings.Builder
	for i, in := range a.insights {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(titleStyle.Render(fmt.Sprintf("%-*s", titleW, in.Title)))
		body.WriteString(space.Render("  "))
		body.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", valueW, in.Value)))
		if in.Trend != nil {
			body.WriteString(space.Render("  "))
			body.WriteString(trendText(*in.Trend))
		}
		if in.Badge != nil {
			body.WriteString(space.Render("  "))
			body.WriteString(toneText("["+in.Badge.Text+"]", in.Badge.Tone))
		}
		body.WriteString("\n")
		body.WriteString(mutedText(strings.Repeat(" ", titleW+2) + in.Description))
	}

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	var mix strings.Builder
	breakdown := a.report.RevenueBreakdown
	total := 0.0
	for _, s := range breakdown {
		total += s.Value
	}
	nameW := 0
	for _, s := range breakdown {
		nameW = max(nameW, lipgloss.Width(s.Name))
	}
	barMax := max(components.CardInnerWidth(halves[0])-nameW-16, 4)
	colors := []lipgloss.Color{t.Blue, t.Green, t.Magenta}
	for i, s := range breakdown {
		if i > 0 {
			mix.WriteString("\n")
		}
		n := 0
		if total > 0 {
			n = int(s.Value / total * float64(barMax))
		}
		bar := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface).Render(strings.Repeat("█", n))
		fmt.Fprintf(&mix, "%s %s%s %s",
			mutedText(fmt.Sprintf("%-*s", nameW, s.Name)),
			bar,
			space.Render(strings.Repeat(" ", barMax-n)),
			valueStyle.Render(cli.FormatCurrency(s.Value)))
	}
	mixCard := components.ContentCard("Estimated Revenue Mix", mix.String(), halves[0])
	shareCard := components.ContentCard("Share", mutedText(panel.ShareText(a.snapshot)), halves[1])

	var b strings.Builder
	b.WriteString(components.ContentCard("Key Insights", body.String(), cw))
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(mixCard)
		b.WriteString("\n")
		b.WriteString(shareCard)
	} else {
		b.WriteString(components.CardRow([]string{mixCard, shareCard}))
	}
	return b.String()
}
