package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDFileRoundTrip(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "run", "saastrackd.pid"))

	_, err := pf.pid()
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, pf.claim(), "missing pid file is free to claim")

	started := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, pf.write(daemonState{PID: os.Getpid(), Addr: "127.0.0.1:9999", StartedAt: started, DBPath: "/tmp/ws.db"}))

	pid, err := pf.pid()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	st, err := pf.state()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", st.Addr)
	assert.True(t, st.StartedAt.Equal(started))

	err = pf.claim()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	pf.remove()
	_, err = os.Stat(string(pf))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(pf.statePath())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPIDFileClaimClearsStale(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "saastrackd.pid"))
	require.NoError(t, pf.write(daemonState{PID: 999_999_9}))

	require.NoError(t, pf.claim())
	_, err := os.Stat(pf.statePath())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPIDFileClaimClearsCorrupt(t *testing.T) {
	pf := pidFile(filepath.Join(t.TempDir(), "saastrackd.pid"))
	require.NoError(t, os.WriteFile(pf.statePath(), []byte("{not json"), 0o600))

	require.NoError(t, pf.claim())
	_, err := os.Stat(pf.statePath())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithoutDetach(t *testing.T) {
	got := withoutDetach([]string{"daemon", "--detach", "--addr", "x:1", "--detach=true"})
	assert.Equal(t, []string{"daemon", "--addr", "x:1"}, got)
}

func TestDaemonConfigFlagsOverrideFile(t *testing.T) {
	saved, savedFlags := appCfg, daemonFlags
	t.Cleanup(func() { appCfg, daemonFlags = saved, savedFlags })

	appCfg.General.DBPath = "/data/ws.db"
	appCfg.Daemon.Addr = "127.0.0.1:8788"
	appCfg.Daemon.IntervalSec = 5
	appCfg.Daemon.EventsBuffer = 200

	cfg := daemonConfig()
	assert.Equal(t, "/data/ws.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8788", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, 200, cfg.EventsBuffer)
	assert.Equal(t, 6, cfg.Heuristics.ForecastMonths)

	daemonFlags.addr = "0.0.0.0:9000"
	daemonFlags.interval = time.Minute
	daemonFlags.eventsBuffer = 10
	cfg = daemonConfig()
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, time.Minute, cfg.Interval)
	assert.Equal(t, 10, cfg.EventsBuffer)
}
