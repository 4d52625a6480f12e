package scorecards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmops/scorecard/pkg/errors"
)

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	return dir
}

func TestMonthsNewestFirst(t *testing.T) {
	dir := writeFiles(t,
		"November_2025_Scorecards.csv",
		"January_2026_Scorecards.csv",
		"December_2025_Scorecards.csv",
		"Scorecard Review Executive Summary(Sheet1) (8).csv",
		"Scorecard Review Executive Summary(Sheet1) (10).csv",
		"notes.txt",
	)

	months, err := Months(dir)
	require.NoError(t, err)
	require.Len(t, months, 5)

	assert.Equal(t, "January_2026", months[0].Key())
	assert.Equal(t, "December_2025", months[1].Key())
	assert.Equal(t, "November_2025", months[2].Key())
	assert.True(t, months[3].Legacy)
	assert.True(t, months[4].Legacy)
	assert.Equal(t, "January 2026", months[0].String())
}

func TestLatest(t *testing.T) {
	dir := writeFiles(t, "December_2025_Scorecards.csv")
	latest, err := Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, "December_2025", latest.Key())

	_, err = Latest(t.TempDir())
	assert.True(t, errors.IsNotFound(err))
}

func TestFind(t *testing.T) {
	dir := writeFiles(t,
		"December_2025_Scorecards.csv",
		"November_2025_Scorecards.csv",
	)

	m, err := Find(dir, "december_2025")
	require.NoError(t, err)
	assert.Equal(t, "December", m.Name)
	assert.Equal(t, 2025, m.Year)

	_, err = Find(dir, "October_2025")
	assert.True(t, errors.IsNotFound(err))
}
