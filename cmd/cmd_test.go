package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saastrack/internal/cli"
	"github.com/theirongolddev/saastrack/internal/panel"
	"github.com/theirongolddev/saastrack/internal/source"
	"github.com/theirongolddev/saastrack/internal/validate"
)

// execute runs the root command with args.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	return filepath.Join(home, "ws.db")
}

func TestWorkspaceCommands(t *testing.T) {
	db := isolate(t)
	t.Cleanup(func() { flagDBPath = "" })

	require.NoError(t, execute(t, "--db", db, "-q", "set",
		"--name", "Acme", "--users", "250", "--goal-users", "1000",
		"--revenue", "2500", "--revenue-goal", "10000", "--growth", "10"))

	require.NoError(t, execute(t, "--db", db, "-q", "history", "add", "2026-08", "200", "$2,000"))
	require.NoError(t, execute(t, "--db", db, "-q", "history", "add", "2026-09", "250", "2500"))

	s, err := loadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.Name)
	assert.Equal(t, 250, s.CurrentUsers)
	assert.Equal(t, 10000.0, s.RevenueGoal)
	assert.Equal(t, 10.0, s.GrowthRate)
	require.Len(t, s.History, 2)
	assert.Equal(t, 2000.0, s.History[0].Revenue)

	out := filepath.Join(t.TempDir(), "acme.yaml")
	require.NoError(t, execute(t, "--db", db, "-q", "export", out))
	exported, err := source.ReadSnapshot(out)
	require.NoError(t, err)
	assert.Equal(t, s.Name, exported.Name)
	assert.Equal(t, s.History, exported.History)

	require.Error(t, execute(t, "--db", db, "-q", "history", "clear"), "clear needs --yes")
	require.NoError(t, execute(t, "--db", db, "-q", "history", "clear", "--yes"))
	s, err = loadSnapshot()
	require.NoError(t, err)
	assert.Empty(t, s.History)
	assert.Equal(t, "Acme", s.Name, "clearing history keeps the snapshot")
}

func TestHistoryImportCSV(t *testing.T) {
	db := isolate(t)
	t.Cleanup(func() { flagDBPath = ""; flagHistoryReplace = false })

	csvPath := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("month,users,revenue\n2026-07,100,900\n2026-08,140,1200\n"), 0o600))

	require.NoError(t, execute(t, "--db", db, "-q", "history", "import", csvPath))
	require.NoError(t, execute(t, "--db", db, "-q", "history", "import", csvPath))
	s, err := loadSnapshot()
	require.NoError(t, err)
	assert.Len(t, s.History, 4, "import appends by default")

	require.NoError(t, execute(t, "--db", db, "-q", "history", "import", "--replace", csvPath))
	s, err = loadSnapshot()
	require.NoError(t, err)
	assert.Len(t, s.History, 2)
}

func TestHistoryImportRejectsBadRows(t *testing.T) {
	db := isolate(t)
	t.Cleanup(func() { flagDBPath = "" })

	csvPath := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("2026-07,many,900\n"), 0o600))

	err := execute(t, "--db", db, "-q", "history", "import", csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestSetRejectsNegative(t *testing.T) {
	db := isolate(t)
	t.Cleanup(func() { flagDBPath = "" })

	err := execute(t, "--db", db, "-q", "set", "--users=-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--users")
}

func TestToned(t *testing.T) {
	assert.Equal(t, "plain", toned("plain", panel.ToneNeutral))
	assert.Contains(t, toned("ok", panel.ToneGood), "ok")
}

func TestDeltaCell(t *testing.T) {
	assert.Empty(t, deltaCell(0, 12.5))
	assert.Contains(t, deltaCell(1, 12.5), "+12.5%")
	assert.Contains(t, deltaCell(1, -4), "-4.0%")
}

func TestSetCapsHugeRevenue(t *testing.T) {
	db := isolate(t)
	t.Cleanup(func() { flagDBPath = "" })

	require.NoError(t, execute(t, "--db", db, "-q", "set", "--revenue=1e20"))
	s, err := loadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, validate.MaxAmount, s.MonthlyRevenue)
	assert.Equal(t, "$12,000,000,000,000.00", cli.FormatCurrency(engine().Compute(s).AnnualRecurringRevenue))
}
