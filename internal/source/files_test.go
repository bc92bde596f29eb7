package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saastrack/internal/model"
)

func sample() model.BusinessSnapshot {
	return model.BusinessSnapshot{
		Name:           "Acme",
		CurrentUsers:   100,
		GoalUsers:      1000,
		MonthlyRevenue: 500.5,
		RevenueGoal:    5000,
		ChurnRate:      5,
		GrowthRate:     10,
		History: []model.MonthPoint{
			{Month: "Jan", Users: 80, Revenue: 400},
			{Month: "Feb", Users: 100, Revenue: 500.5},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, name := range []string{"snap.json", "snap.yaml", "snap.yml", "snap.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", name)
			require.NoError(t, WriteSnapshot(path, sample()))

			got, err := ReadSnapshot(path)
			require.NoError(t, err)
			assert.Equal(t, sample(), got)
		})
	}
}

func TestFormatFromPath_Unsupported(t *testing.T) {
	_, err := FormatFromPath("snapshot.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot.xml")

	f, err := FormatFromPath("SNAP.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}

func TestReadSnapshot_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad.json": `{"name":"Acme","current_user":5}`,
		"bad.yaml": "name: Acme\ncurrent_user: 5\n",
		"bad.toml": "name = \"Acme\"\ncurrent_user = 5\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		_, err := ReadSnapshot(path)
		assert.Error(t, err, name)
	}
}

func TestReadSnapshot_PartialFileLeavesZeroes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Solo\ncurrent_users: 3\n"), 0o600))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, model.BusinessSnapshot{Name: "Solo", CurrentUsers: 3}, got)
}

func TestReadSnapshot_MissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
