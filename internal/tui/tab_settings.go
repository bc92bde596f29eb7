package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/tui/components"
	"github.com/theirongolddev/saastrack/internal/tui/theme"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldName = iota
	settingsFieldUsers
	settingsFieldGoalUsers
	settingsFieldRevenue
	settingsFieldRevenueGoal
	settingsFieldChurn
	settingsFieldGrowth
	settingsFieldTheme
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldForecastMonths
	settingsFieldCount // sentinel
)

// settingsFieldSnapshotEnd is the first field stored in the config file
// rather than the workspace.
const settingsFieldSnapshotEnd = settingsFieldTheme

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

// settingsValue is the editable text of a field.
func (a App) settingsValue(field int) string {
	s := a.snapshot
	switch field {
	case settingsFieldName:
		return s.Name
	case settingsFieldUsers:
		return strconv.Itoa(s.CurrentUsers)
	case settingsFieldGoalUsers:
		return strconv.Itoa(s.GoalUsers)
	case settingsFieldRevenue:
		return formatInput(s.MonthlyRevenue)
	case settingsFieldRevenueGoal:
		return formatInput(s.RevenueGoal)
	case settingsFieldChurn:
		return formatInput(s.ChurnRate)
	case settingsFieldGrowth:
		return formatInput(s.GrowthRate)
	case settingsFieldTheme:
		return theme.Active.Name
	case settingsFieldAutoRefresh:
		return strconv.FormatBool(a.autoRefresh)
	case settingsFieldRefreshInterval:
		return strconv.Itoa(int(a.refreshInterval.Seconds()))
	case settingsFieldForecastMonths:
		return strconv.Itoa(a.forecastLen)
	}
	return ""
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldName:
		ti.Placeholder = "Acme Analytics"
	case settingsFieldUsers, settingsFieldGoalUsers:
		ti.Placeholder = "whole number"
	case settingsFieldRevenue, settingsFieldRevenueGoal:
		ti.Placeholder = "dollars per month"
	case settingsFieldChurn, settingsFieldGrowth:
		ti.Placeholder = "percent per month"
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
	case settingsFieldRefreshInterval:
		ti.Placeholder = "seconds, minimum 5"
	case settingsFieldForecastMonths:
		ti.Placeholder = "1-36"
	}
	ti.SetValue(a.settingsValue(a.settings.cursor))
	ti.Focus()
	a.settings.input = ti
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		return a.settingsSave()
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value. Snapshot fields are written to the
// workspace asynchronously; dashboard preferences go to the config file.
func (a App) settingsSave() (tea.Model, tea.Cmd) {
	val := strings.TrimSpace(a.settings.input.Value())
	field := a.settings.cursor

	if field < settingsFieldSnapshotEnd {
		s := a.snapshot.Clone()
		var err error
		switch field {
		case settingsFieldName:
			s.Name = val
		case settingsFieldUsers:
			s.CurrentUsers, err = parseCount(val)
		case settingsFieldGoalUsers:
			s.GoalUsers, err = parseCount(val)
		case settingsFieldRevenue:
			s.MonthlyRevenue, err = parseAmount(val)
		case settingsFieldRevenueGoal:
			s.RevenueGoal, err = parseAmount(val)
		case settingsFieldChurn:
			s.ChurnRate, err = parseRate(val)
		case settingsFieldGrowth:
			s.GrowthRate, err = parseRate(val)
		}
		if err != nil {
			a.settings.saveErr = err
			return a, nil
		}
		return a, saveSnapshotCmd(a.dbPath, validate.Normalize(s))
	}

	cfg := loadConfigOrDefault()
	switch field {
	case settingsFieldTheme:
		if _, ok := theme.Lookup(val); !ok {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return a, nil
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldAutoRefresh:
		on, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("%q is not true or false", val)
			return a, nil
		}
		cfg.TUI.AutoRefresh = on
		a.autoRefresh = on
	case settingsFieldRefreshInterval:
		sec, err := strconv.Atoi(val)
		if err != nil || time.Duration(sec)*time.Second < minRefreshInterval {
			a.settings.saveErr = fmt.Errorf("refresh interval must be at least %d seconds", int(minRefreshInterval.Seconds()))
			return a, nil
		}
		cfg.TUI.RefreshIntervalSec = sec
		a.refreshInterval = time.Duration(sec) * time.Second
	case settingsFieldForecastMonths:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 36 {
			a.settings.saveErr = fmt.Errorf("forecast months must be between 1 and 36")
			return a, nil
		}
		cfg.General.ForecastMonths = n
		a.forecastLen = n
		a.recompute()
	}

	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
	return a, nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	missingStyle := lipgloss.NewStyle().Foreground(t.Warn()).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	missing := make(map[string]bool, len(a.missing.Fields))
	for _, f := range a.missing.Fields {
		missing[f.Field] = true
	}

	s := a.snapshot
	type field struct {
		label   string
		value   string
		missing bool
	}
	fields := []field{
		{validate.Label("name"), orNotSet(s.Name), missing["name"]},
		{validate.Label("current_users"), cli.FormatNumber(int64(s.CurrentUsers)), missing["current_users"]},
		{validate.Label("goal_users"), cli.FormatNumber(int64(s.GoalUsers)), missing["goal_users"]},
		{validate.Label("monthly_revenue"), cli.FormatCurrency(s.MonthlyRevenue), missing["monthly_revenue"]},
		{validate.Label("revenue_goal"), cli.FormatCurrency(s.RevenueGoal), missing["revenue_goal"]},
		{"Churn Rate", cli.FormatPercent(s.ChurnRate), false},
		{"Growth Rate", cli.FormatPercent(s.GrowthRate), false},
		{"Theme", theme.Active.Name, false},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh), false},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds())), false},
		{"Forecast Months", strconv.Itoa(a.forecastLen), false},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if i == settingsFieldSnapshotEnd {
			formBody.WriteString(labelStyle.Render("  Dashboard"))
			formBody.WriteString("\n")
		}

		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		value := f.value
		if f.missing {
			value += "  (required)"
		}
		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			rendered := selectedStyle.Render(value)
			formBody.WriteString(marker + label + rendered)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(rendered); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			if f.missing {
				formBody.WriteString(missingStyle.Render(value))
			} else {
				formBody.WriteString(valueStyle.Render(value))
			}
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel  [s] setup form"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Workspace:    ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Revision:     ") + valueStyle.Render(orNotSet(a.revision)) + "\n")
	infoBody.WriteString(labelStyle.Render("History:      ") + valueStyle.Render(fmt.Sprintf("%d months", len(s.History))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:    ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Workspace", infoBody.String(), cw))
	return b.String()
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
