// Package components provides reusable widgets for the saastrack dashboard.
package components

import (
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// The first items absorb the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// ToneColor maps a panel tone onto the active palette.
func ToneColor(tone panel.Tone) lipgloss.Color {
	t := theme.Active
	switch tone {
	case panel.ToneGood:
		return t.Good()
	case panel.ToneInfo:
		return t.Info()
	case panel.ToneWarn:
		return t.Warn()
	case panel.ToneBad:
		return t.Bad()
	default:
		return t.TextPrimary
	}
}

// MetricCard renders one advanced metric tile: title, value, note and an
// optional progress bar toward its target. outerWidth includes the border.
func MetricCard(c panel.Card, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(ToneColor(c.Tone)).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	content := labelStyle.Render(c.Title) + "\n" + valueStyle.Render(c.Value)
	if c.Note != "" {
		content += "\n" + noteStyle.Render(c.Note)
	}
	if c.HasProgress {
		content += "\n" + ProgressBar(c.Progress/100, CardInnerWidth(outerWidth)-5)
		if c.Target != "" {
			content += "\n" + noteStyle.Render("Target: "+c.Target)
		}
	}

	return cardStyle.Render(content)
}

// MetricCardGrid lays cards out perRow to a row, each row totalWidth wide.
func MetricCardGrid(cards []panel.Card, perRow, totalWidth int) string {
	if len(cards) == 0 || perRow <= 0 {
		return ""
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		widths := LayoutRow(totalWidth, perRow)
		rendered := make([]string, 0, end-start)
		for i, c := range cards[start:end] {
			rendered = append(rendered, MetricCard(c, widths[i]))
		}
		rows = append(rows, CardRow(rendered))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// CardRow joins pre-rendered cards horizontally. Shorter cards are padded
// with the surface color so the row has no unstyled holes.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}

	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}

	bg := lipgloss.NewStyle().Background(theme.Active.Background)
	padded := make([]string, len(cards))
	for i, c := range cards {
		h := lipgloss.Height(c)
		if h == tallest {
			padded[i] = c
			continue
		}
		w := lipgloss.Width(c)
		filler := bg.Width(w).Height(tallest - h).Render("")
		padded[i] = lipgloss.JoinVertical(lipgloss.Left, c, filler)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width.
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4 // 2 border + 2 padding
	if w < 10 {
		w = 10
	}
	return w
}
