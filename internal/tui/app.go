// Package tui provides the interactive Bubble Tea dashboard for saastrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/saastrack/internal/config"
	"github.com/theirongolddev/saastrack/internal/metrics"
	"github.com/theirongolddev/saastrack/internal/model"
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/store"
	"github.com/theirongolddev/saastrack/internal/tui/components"
	"github.com/theirongolddev/saastrack/internal/tui/theme"
	"github.com/theirongolddev/saastrack/internal/validate"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// DataLoadedMsg is sent when the workspace has been read.
type DataLoadedMsg struct {
	Snapshot  model.BusinessSnapshot
	Revision  string
	UpdatedAt time.Time
	LoadTime  time.Duration
	Err       error
}

// RefreshDataMsg is sent when a background refresh completes. Unchanged is
// set when the stored revision matched the one already displayed.
type RefreshDataMsg struct {
	DataLoadedMsg
	Unchanged bool
}

// SavedMsg is sent when a snapshot edit has been written to the workspace.
type SavedMsg struct {
	Snapshot model.BusinessSnapshot
	Revision string
	Err      error
}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabMetrics
	tabInsights
	tabForecast
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	dbPath    string
	snapshot  model.BusinessSnapshot
	revision  string
	updatedAt time.Time
	loaded    bool
	loadErr   error
	loadTime  time.Duration

	// Derived on every change
	engine      metrics.Engine
	heuristics  config.Heuristics
	report      model.MetricsReport
	cards       []panel.Card
	insights    []panel.Insight
	gauges      []panel.Gauge
	missing     validate.Result
	projection  []model.MonthPoint
	changes     []model.MonthChange
	forecastLen int

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int

	settings settingsState

	// Setup form, opened when required fields are missing
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
	log     zerolog.Logger
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minRefreshInterval = 5 * time.Second
	minContentHeight   = 5
)

// loadConfigOrDefault reads the config file for best-effort saves from the
// dashboard. Environment overrides are not applied.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the dashboard model for the workspace at cfg.DBPath().
func NewApp(cfg config.Config, log zerolog.Logger) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	interval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if interval < minRefreshInterval {
		interval = 15 * time.Second
	}

	h := cfg.Heuristics()
	return App{
		dbPath:          cfg.DBPath(),
		engine:          metrics.New(h),
		heuristics:      h,
		forecastLen:     h.ForecastMonths,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: interval,
		spinner:         sp,
		settings:        settingsState{input: newSettingsInput()},
		log:             log,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute rebuilds everything derived from the snapshot.
func (a *App) recompute() {
	a.report = a.engine.Compute(a.snapshot)
	a.cards = panel.Cards(a.snapshot, a.report, a.heuristics)
	a.insights = panel.Insights(a.snapshot, a.report)
	a.gauges = panel.Gauges(a.snapshot, a.report)
	a.missing = validate.Snapshot(a.snapshot)
	a.projection = a.engine.ProjectForward(a.snapshot.History, a.snapshot.GrowthRate, a.forecastLen)
	a.changes = metrics.MonthOverMonth(a.snapshot.History)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll = max(a.scroll-1, 0)
		case tea.MouseButtonWheelDown:
			a.scroll++
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
				return a, nil
			case "k", "up":
				a.settings.cursor = max(a.settings.cursor-1, 0)
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			case "s":
				return a.openSetup()
			}
		} else {
			switch key {
			case "j", "down":
				a.scroll++
				return a, nil
			case "k", "up":
				a.scroll = max(a.scroll-1, 0)
				return a, nil
			case "ctrl+d":
				a.scroll += a.halfPage()
				return a, nil
			case "ctrl+u":
				a.scroll = max(a.scroll-a.halfPage(), 0)
				return a, nil
			case "g":
				a.scroll = 0
				return a, nil
			}
		}

		if a.activeTab == tabForecast {
			switch key {
			case "+", "=":
				a.forecastLen = min(a.forecastLen+1, 36)
				a.recompute()
				return a, nil
			case "-", "_":
				a.forecastLen = max(a.forecastLen-1, 0)
				a.recompute()
				return a, nil
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.dbPath, a.revision)
		}

		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			cfg := loadConfigOrDefault()
			cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(cfg)
			return a, nil
		}

		switch key {
		case "left", "shift+tab":
			a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			a.switchTab((a.activeTab + 1) % len(components.Tabs))
		default:
			if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.switchTab(idx)
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.lastRefresh = time.Now()
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.log.Error().Err(msg.Err).Str("db", a.dbPath).Msg("loading workspace")
		}
		a.applyLoaded(msg)

		if !a.missing.Complete() {
			return a.openSetup()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err != nil {
			a.loadErr = msg.Err
			a.log.Warn().Err(msg.Err).Msg("refreshing workspace")
			return a, nil
		}
		a.loadErr = nil
		if !msg.Unchanged {
			a.log.Debug().Str("revision", msg.Revision).Msg("workspace changed")
			a.applyLoaded(msg.DataLoadedMsg)
		}
		return a, nil

	case SavedMsg:
		a.settings.saveErr = msg.Err
		a.settings.saved = msg.Err == nil
		if msg.Err != nil {
			a.log.Error().Err(msg.Err).Msg("saving snapshot")
			return a, nil
		}
		a.snapshot = msg.Snapshot
		a.revision = msg.Revision
		a.updatedAt = time.Now()
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && a.setupForm == nil {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.dbPath, a.revision))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a *App) applyLoaded(msg DataLoadedMsg) {
	a.snapshot = msg.Snapshot
	a.revision = msg.Revision
	a.updatedAt = msg.UpdatedAt
	a.loadTime = msg.LoadTime
	a.recompute()
}

func (a *App) switchTab(idx int) {
	if idx != a.activeTab {
		a.scroll = 0
	}
	a.activeTab = idx
}

func (a App) halfPage() int {
	return max((a.height-4)/2, 1)
}

// openSetup shows the setup form pre-filled from the current snapshot.
func (a App) openSetup() (tea.Model, tea.Cmd) {
	vals := SetupValuesFrom(a.snapshot)
	a.setupVals = &vals
	a.setupForm = NewSetupForm(a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	a.needSetup = true
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.needSetup = false
		a.setupForm = nil
		s, err := a.setupVals.Apply(a.snapshot)
		if err != nil {
			a.settings.saveErr = err
			return a, nil
		}
		return a, saveSnapshotCmd(a.dbPath, s)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  saastrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ saastrack"))
	b.WriteString(subtitleStyle.Render(" · SaaS Growth Tracker"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Opening workspace..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o m i f x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll / Move cursor"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter", "Edit setting"},
			{"s", "Open setup form (Settings)"},
			{"+ -", "Forecast length (Forecast)"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	age := ""
	if !a.updatedAt.IsZero() {
		age = "saved " + humanize.Time(a.updatedAt)
	}
	statusBar := components.RenderStatusBar(w, components.Status{
		Workspace:    a.snapshot.Name,
		UserProgress: a.report.UserProgress,
		Missing:      len(a.missing.Fields),
		Refreshing:   a.refreshing,
		AutoRefresh:  a.autoRefresh,
		Age:          age,
	})

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabMetrics:
		content = a.renderMetricsTab(cw)
	case tabInsights:
		content = a.renderInsightsTab(cw)
	case tabForecast:
		content = a.renderForecastTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}
	if a.loadErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Bad()).Background(t.Background)
		content = warn.Render(" Workspace error: "+a.loadErr.Error()) + "\n" + content
	}

	content = padHeight(truncateHeight(scrollLines(content, a.scroll, contentH), contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// readWorkspace loads the snapshot unless the stored revision equals known.
func readWorkspace(dbPath, known string) (DataLoadedMsg, bool) {
	start := time.Now()
	ws, err := store.Open(dbPath)
	if err != nil {
		return DataLoadedMsg{Snapshot: model.NewSnapshot(), Err: err}, false
	}
	defer ws.Close()

	meta, err := ws.Meta()
	if err != nil {
		return DataLoadedMsg{Snapshot: model.NewSnapshot(), Err: err}, false
	}
	if known != "" && meta.Revision == known {
		return DataLoadedMsg{}, true
	}

	s, err := ws.LoadSnapshot()
	return DataLoadedMsg{
		Snapshot:  s,
		Revision:  meta.Revision,
		UpdatedAt: meta.UpdatedAt,
		LoadTime:  time.Since(start),
		Err:       err,
	}, false
}

func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		msg, _ := readWorkspace(dbPath, "")
		return msg
	}
}

// refreshDataCmd re-reads the workspace in the background when its revision
// has moved past known.
func refreshDataCmd(dbPath, known string) tea.Cmd {
	return func() tea.Msg {
		msg, unchanged := readWorkspace(dbPath, known)
		return RefreshDataMsg{DataLoadedMsg: msg, Unchanged: unchanged}
	}
}

func saveSnapshotCmd(dbPath string, s model.BusinessSnapshot) tea.Cmd {
	return func() tea.Msg {
		ws, err := store.Open(dbPath)
		if err != nil {
			return SavedMsg{Err: err}
		}
		defer ws.Close()

		rev, err := ws.SaveSnapshot(s)
		if err != nil {
			return SavedMsg{Err: err}
		}
		return SavedMsg{Snapshot: s, Revision: rev}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// scrollLines drops the first offset lines, stopping once the remainder
// would no longer fill the view.
func scrollLines(s string, offset, viewH int) string {
	if offset <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxOffset := max(len(lines)-viewH, 0)
	return strings.Join(lines[min(offset, maxOffset):], "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}
