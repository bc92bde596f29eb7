package tui

import (
	"strings"

	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/tui/components"
)

func (a App) renderMetricsTab(cw int) string {
	perRow := 4
	switch {
	case cw < 100:
		perRow = 2
	case a.isCompactLayout():
		perRow = 3
	}

	var b strings.Builder
	b.WriteString(components.MetricCardGrid(a.cards, perRow, cw))
	if !a.missing.Complete() {
		b.WriteString("\n")
		b.WriteString(toneText(" Missing: "+strings.Join(a.missing.MissingLabels(), ", ")+"  (Settings → s to complete)", panel.ToneWarn))
	}
	return b.String()
}
