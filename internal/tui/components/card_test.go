package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}, {120, 1}} {
		ws := LayoutRow(tc.total, tc.n)
		sum := 0
		for _, w := range ws {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI styling: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	joined := CardRow([]string{
		ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20),
		ContentCard("Short", "A", 30),
	})
	lines := strings.Split(joined, "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestMetricCardShowsTargetOnlyWithProgress(t *testing.T) {
	theme.SetActive("flexoki-dark")

	withBar := MetricCard(panel.Card{
		Title: "Retention Rate", Value: "95.0%", Target: "95%",
		Progress: 100, HasProgress: true, Tone: panel.ToneGood,
	}, 40)
	if !strings.Contains(withBar, "Target: 95%") {
		t.Errorf("card with progress lost its target:\n%s", withBar)
	}
	if !strings.Contains(withBar, "100%") {
		t.Errorf("card with progress should show the percentage:\n%s", withBar)
	}

	plain := MetricCard(panel.Card{Title: "Daily Active Users", Value: "25", Target: "ignored"}, 40)
	if strings.Contains(plain, "Target:") {
		t.Errorf("card without progress should not render a target:\n%s", plain)
	}
}

func TestMetricCardGridRows(t *testing.T) {
	theme.SetActive("flexoki-dark")

	cards := make([]panel.Card, 5)
	for i := range cards {
		cards[i] = panel.Card{Title: "T", Value: "1"}
	}
	grid := MetricCardGrid(cards, 3, 90)
	// Two rows of 4-line cards (border, title, value, border).
	if got := lipgloss.Height(grid); got != 8 {
		t.Fatalf("grid height = %d, want 8", got)
	}
	if MetricCardGrid(nil, 3, 90) != "" {
		t.Error("empty grid should render nothing")
	}
}
