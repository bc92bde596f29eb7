package components

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/saastrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar reports about the loaded workspace.
type Status struct {
	Workspace    string
	UserProgress float64 // 0-100
	Missing      int
	Refreshing   bool
	AutoRefresh  bool
	Age          string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Warn()).Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if st.Workspace != "" {
		left += base.Render("  │ ") + accent.Render(st.Workspace)
	}
	if st.Missing > 0 {
		left += base.Render("  ") + warn.Render(pluralMissing(st.Missing))
	}

	var right []string
	if width >= 100 {
		right = append(right, CompactGauge("Users", st.UserProgress/100, 24))
	}
	switch {
	case st.Refreshing:
		right = append(right, accent.Render("↻ refreshing"))
	case st.AutoRefresh:
		right = append(right, base.Render("auto"))
	}
	if st.Age != "" {
		right = append(right, base.Render(st.Age))
	}
	rightStr := strings.Join(right, base.Render("  ")) + base.Render(" ")

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}

func pluralMissing(n int) string {
	if n == 1 {
		return "1 field missing"
	}
	return strconv.Itoa(n) + " fields missing"
}
