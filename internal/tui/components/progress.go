package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar followed by its percentage.
// pct is a fraction in [0,1].
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	if width < 1 {
		width = 1
	}
	filled := int(pct * float64(width))
	filled = max(0, min(filled, width))

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// GaugeBar renders a labeled gauge row: label, bar, value and note.
func GaugeBar(g panel.Gauge, labelW, barWidth int) string {
	t := theme.Active

	pct := max(0, min(g.Progress/100, 1))
	color := ToneColor(g.Tone)
	if g.Tone == panel.ToneNeutral {
		color = t.Accent
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	line := labelStyle.Render(fmt.Sprintf("%-*s", labelW, g.Label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", g.Progress))
	if g.Value != "" {
		line += spaceStyle.Render("  ") + valueStyle.Render(g.Value)
	}
	if g.Note != "" {
		line += spaceStyle.Render("  ") + noteStyle.Render(g.Note)
	}
	return line
}

// CompactGauge renders a tiny status-bar-sized progress indicator.
func CompactGauge(label string, pct float64, width int) string {
	t := theme.Active

	pct = max(0, min(pct, 1))

	barW := width - lipgloss.Width(label) - 6
	if barW < 4 {
		barW = 4
	}

	color := string(ToneColor(panel.GaugeTone(pct * 100)))
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%2.0f%%", pct*100))
}
