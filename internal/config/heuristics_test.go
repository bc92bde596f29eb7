package config

import (
	"os"
	"path/filepath"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestOverridesApply_PositiveOnly(t *testing.T) {
	o := HeuristicOverrides{
		DAURatio:        ptr(0.4),
		WAURatio:        ptr(0),
		RetentionTarget: ptr(-10),
		NRRTarget:       ptr(120),
	}
	h := o.Apply(DefaultHeuristics())

	if h.DAURatio != 0.4 {
		t.Fatalf("DAURatio = %v, want 0.4", h.DAURatio)
	}
	if h.WAURatio != 0.65 {
		t.Fatalf("WAURatio = %v, want default 0.65 (zero override ignored)", h.WAURatio)
	}
	if h.RetentionTarget != 95 {
		t.Fatalf("RetentionTarget = %v, want default 95 (negative override ignored)", h.RetentionTarget)
	}
	if h.NRRTarget != 120 {
		t.Fatalf("NRRTarget = %v, want 120", h.NRRTarget)
	}
}

func TestConfigHeuristics_ForecastMonths(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Heuristics().ForecastMonths; got != 6 {
		t.Fatalf("default ForecastMonths = %d, want 6", got)
	}
	cfg.General.ForecastMonths = 12
	if got := cfg.Heuristics().ForecastMonths; got != 12 {
		t.Fatalf("ForecastMonths = %d, want 12", got)
	}
}

func TestLoadFrom_ParsesHeuristicsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[general]
forecast_months = 9

[heuristics]
cac_user_multiple = 3.5
ltv_cac_target = 4
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	h := cfg.Heuristics()
	if h.CACUserMultiple != 3.5 || h.LTVCACTarget != 4 || h.ForecastMonths != 9 {
		t.Fatalf("heuristics = %+v", h)
	}
	if cfg.Daemon.Addr != "127.0.0.1:8788" {
		t.Fatalf("defaults lost: daemon addr = %q", cfg.Daemon.Addr)
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("theme = %q", cfg.Appearance.Theme)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Overrides.DAURatio = ptr(0.3)

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("theme = %q", got.Appearance.Theme)
	}
	if got.Overrides.DAURatio == nil || *got.Overrides.DAURatio != 0.3 {
		t.Fatalf("dau override = %v", got.Overrides.DAURatio)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SAASTRACK_LOG_LEVEL", "debug")
	t.Setenv("SAASTRACK_DB_PATH", "/tmp/ws.db")
	t.Setenv("SAASTRACK_THEME", "catppuccin-mocha")

	cfg, err := ApplyEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.DBPath() != "/tmp/ws.db" {
		t.Errorf("db path = %q", cfg.DBPath())
	}
	if cfg.Appearance.Theme != "catppuccin-mocha" {
		t.Errorf("theme = %q", cfg.Appearance.Theme)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("unset env changed log format to %q", cfg.Log.Format)
	}
}

func TestDataDir_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DataDir(); got != filepath.Join("/xdg/data", "saastrack") {
		t.Fatalf("DataDir = %q", got)
	}
	if got := DefaultConfig().DBPath(); got != filepath.Join("/xdg/data", "saastrack", "workspace.db") {
		t.Fatalf("DBPath = %q", got)
	}
}
