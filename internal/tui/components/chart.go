package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// Series is one bar chart input. Bars from ProjectedFrom onward are drawn
// in ProjectedColor; a negative ProjectedFrom means no projected bars.
type Series struct {
	Values         []float64
	Labels         []string
	Color          lipgloss.Color
	ProjectedColor lipgloss.Color
	ProjectedFrom  int
	Currency       bool
}

func (s Series) colorAt(i int) lipgloss.Color {
	if s.ProjectedFrom >= 0 && i >= s.ProjectedFrom && s.ProjectedColor != "" {
		return s.ProjectedColor
	}
	return s.Color
}

func (s Series) tickLabel(v float64) string {
	if s.Currency {
		return cli.FormatCompactCurrency(v)
	}
	return cli.FormatCompact(v)
}

// BarChart renders a bar chart with a y-axis and sparse x-axis labels. It
// falls back to a sparkline when the area is too small.
func BarChart(s Series, width, height int) string {
	values := s.Values
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, s.Color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(s.tickLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = s.tickLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	n := len(values)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	if barW < 2 && n > 1 {
		// Too many bars: keep an evenly spaced sample.
		maxN := max((chartW+1)/3, 2)
		idx := make([]int, maxN)
		for i := range idx {
			idx[i] = i * (n - 1) / (maxN - 1)
		}
		s = s.sample(idx)
		values = s.Values
		n = maxN
		barW = 2
	}
	barW = min(barW, 6)
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			barStyle := lipgloss.NewStyle().Foreground(s.colorAt(i)).Background(t.Surface)
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := max(1, min(int(frac*8), 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(s.Labels) == n && n > 0 {
		b.WriteString("\n")
		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(axisLabels(s.Labels, barW, gap, axisLen)))
	}

	return b.String()
}

// sample keeps the bars at the given indexes, shifting ProjectedFrom to the
// first kept projected bar.
func (s Series) sample(idx []int) Series {
	out := s
	out.Values = make([]float64, len(idx))
	if len(s.Labels) == len(s.Values) {
		out.Labels = make([]string, len(idx))
	} else {
		out.Labels = nil
	}
	out.ProjectedFrom = -1
	for i, src := range idx {
		out.Values[i] = s.Values[src]
		if out.Labels != nil {
			out.Labels[i] = s.Labels[src]
		}
		if out.ProjectedFrom < 0 && s.ProjectedFrom >= 0 && src >= s.ProjectedFrom {
			out.ProjectedFrom = i
		}
	}
	return out
}

// axisLabels spreads labels under the bars without overlaps. The last label
// is always placed when it fits.
func axisLabels(labels []string, barW, gap, axisLen int) string {
	n := len(labels)
	buf := []rune(strings.Repeat(" ", axisLen))

	labelStep := max(1, (n*8)/(axisLen+1))
	lastEnd := -1
	place := func(pos int, lbl string) {
		r := []rune(lbl)
		if pos+len(r) > axisLen {
			r = r[:max(0, axisLen-pos)]
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r) + 1
	}
	for i := 0; i < n; i += labelStep {
		pos := i * (barW + gap)
		if pos <= lastEnd || (pos+len([]rune(labels[i])) > axisLen && axisLen-pos < 3) {
			continue
		}
		place(pos, labels[i])
	}
	if n > 1 {
		lbl := []rune(labels[n-1])
		pos := (n - 1) * (barW + gap)
		if pos+len(lbl) > axisLen {
			pos = axisLen - len(lbl)
		}
		if pos >= 0 && pos > lastEnd {
			place(pos, labels[n-1])
		}
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a round tick interval targeting about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}
