package scorecard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmops/scorecard/pkg/reconciler"
	"github.com/sbmops/scorecard/pkg/review"
)

const sampleCSV = `Id,Completion time,Please Enter Your Name,Date/Time of Scorecard Review?,Name of Account/Portfolio,What was the overall Scorecard Score?
1,12/20/2025 16:05,Dana Whitfield,12/15/2025 14:30,Merck Sodexo,4.68/5.00
2,12/21/2025 09:00,Chris Ortega,12/18/2025 10:00,GM Milford,91
3,12/21/2025 10:00,Alex Pruitt,12/19/2025 10:00,Omnicom,4.2
`

func TestClientDefaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, 55, c.Roster().Len())

	result, err := c.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, result.Accounts, 55)
}

func TestClientReconcileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "December_2025_Scorecards.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	c, err := New()
	require.NoError(t, err)

	result, err := c.ReconcileFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, result.Accounts, 55)
	assert.Len(t, result.WithData(), 2)
	assert.Equal(t, 1, result.Metadata.Stats.Omitted)
	assert.Empty(t, result.Unresolved)

	byName := make(map[string]*review.Record)
	for _, a := range result.WithData() {
		byName[a.Account.Name] = a.Data
	}
	require.Contains(t, byName, "Merck")
	assert.Equal(t, 4.68, *byName["Merck"].Score)
	require.Contains(t, byName, "General Motors")
	assert.Equal(t, 91.0, *byName["General Motors"].Score)
}

func TestClientReconcileMonth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "November_2025_Scorecards.csv"),
		[]byte("Name of Account/Portfolio,What was the overall Scorecard Score?\nFord,3.5\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "December_2025_Scorecards.csv"),
		[]byte(sampleCSV), 0o644))

	c, err := New()
	require.NoError(t, err)

	// Empty key picks the newest month.
	result, err := c.ReconcileMonth(context.Background(), dir, "")
	require.NoError(t, err)
	assert.Len(t, result.WithData(), 2)

	result, err = c.ReconcileMonth(context.Background(), dir, "November_2025")
	require.NoError(t, err)
	require.Len(t, result.WithData(), 1)
	assert.Equal(t, "Ford", result.WithData()[0].Account.Name)

	_, err = c.ReconcileMonth(context.Background(), dir, "October_2025")
	require.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	c, err := New(WithReconcilerOptions(reconciler.WithThreshold(0.9)))
	require.NoError(t, err)
	require.NotNil(t, c)

	_, err = New(WithReconcilerOptions(reconciler.WithThreshold(2)))
	require.Error(t, err)

	_, err = New(WithRosterDir(t.TempDir()))
	require.Error(t, err) // no accounts.yaml
}
