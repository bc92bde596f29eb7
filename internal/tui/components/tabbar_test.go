package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/saastrack/internal/tui/theme"
)

func TestTabBarWidthMatchesVisualWidths(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
			if i < len(Tabs)-1 {
				want++
			}
		}
		bar := RenderTabBar(active, want)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: bar width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('f'); got != 3 {
		t.Errorf("TabIdxByKey('f') = %d, want 3", got)
	}
	if got := TabIdxByKey('x'); got != len(Tabs)-1 {
		t.Errorf("TabIdxByKey('x') = %d, want settings", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
