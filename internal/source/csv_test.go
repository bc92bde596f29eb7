package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/saastrack/internal/model"
)

func TestReadHistoryCSV(t *testing.T) {
	in := "month,users,revenue\nJan,80,400\n# skipped\nFeb, 100, $500.25\n"

	var calls []int
	got, err := ReadHistoryCSV(strings.NewReader(in), func(n int) { calls = append(calls, n) })
	require.NoError(t, err)

	assert.Equal(t, []model.MonthPoint{
		{Month: "Jan", Users: 80, Revenue: 400},
		{Month: "Feb", Users: 100, Revenue: 500.25},
	}, got)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestReadHistoryCSV_NoHeader(t *testing.T) {
	got, err := ReadHistoryCSV(strings.NewReader("Jan,1,2\n"), nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadHistoryCSV_ReportsLineNumbers(t *testing.T) {
	in := "month,users,revenue\nJan,80,400\nFeb,lots,500\nMar,90\nApr,95,-1\n"

	got, err := ReadHistoryCSV(strings.NewReader(in), nil)
	require.Error(t, err)
	assert.Nil(t, got)

	msg := err.Error()
	assert.Contains(t, msg, `line 3: invalid users "lots"`)
	assert.Contains(t, msg, "line 4: want 3 fields")
	assert.Contains(t, msg, `line 5: invalid revenue "-1"`)
	assert.NotContains(t, msg, "line 2")
}

func TestWriteHistoryCSV_RoundTrip(t *testing.T) {
	history := []model.MonthPoint{
		{Month: "Jan", Users: 80, Revenue: 400},
		{Month: "Feb", Users: 100, Revenue: 500.25},
		{Month: "Proj 1", Users: 110, Revenue: 575, Projected: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, history))
	assert.True(t, strings.HasPrefix(buf.String(), "month,users,revenue\n"))

	got, err := ReadHistoryCSV(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, history[:2], got)
}
