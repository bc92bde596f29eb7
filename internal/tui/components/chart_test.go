package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/saastrack/internal/tui/theme"
)

func TestSparklineScalesToPeak(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	got := Sparkline([]float64{0, 50, 100}, theme.Active.Accent)
	for _, r := range []string{"▁", "▄", "█"} {
		if !strings.Contains(got, r) {
			t.Errorf("sparkline %q is missing %q", got, r)
		}
	}
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty sparkline should render nothing")
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	got := BarChart(Series{Values: []float64{1, 2, 3}, ProjectedFrom: -1}, 10, 2)
	if strings.Contains(got, "│") {
		t.Errorf("tiny chart should not draw an axis: %q", got)
	}
}

func TestBarChartLabelsAndHeight(t *testing.T) {
	s := Series{
		Values:        []float64{100, 120, 150, 165},
		Labels:        []string{"Jan", "Feb", "Mar", "Proj 1"},
		ProjectedFrom: 3,
	}
	got := BarChart(s, 60, 8)
	if !strings.Contains(got, "Jan") || !strings.Contains(got, "Proj 1") {
		t.Errorf("chart is missing its first or last label:\n%s", got)
	}
	if !strings.Contains(got, "└") {
		t.Errorf("chart has no x-axis:\n%s", got)
	}
	if h := lipgloss.Height(got); h < 8 {
		t.Errorf("chart height = %d, want at least 8", h)
	}
}

func TestSeriesSampleKeepsProjection(t *testing.T) {
	s := Series{Values: []float64{1, 2, 3, 4, 5, 6}, Labels: []string{"a", "b", "c", "d", "e", "f"}, ProjectedFrom: 4}
	out := s.sample([]int{0, 2, 5})
	if out.ProjectedFrom != 2 {
		t.Fatalf("ProjectedFrom = %d, want 2", out.ProjectedFrom)
	}
	if strings.Join(out.Labels, "") != "acf" {
		t.Fatalf("labels = %v", out.Labels)
	}
}

func TestChartTickStep(t *testing.T) {
	for _, tc := range []struct{ max, want float64 }{
		{0, 1}, {10, 2}, {100, 20}, {1000, 200}, {40, 5},
	} {
		if got := chartTickStep(tc.max); got != tc.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tc.max, got, tc.want)
		}
	}
}
