package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmops/scorecard/pkg/review"
	"github.com/sbmops/scorecard/pkg/roster"
)

func testRoster(t *testing.T) *roster.Roster {
	t.Helper()
	r, err := roster.New(
		[]roster.Account{
			{Name: "Ford", Vertical: roster.VerticalAutomotive},
			{Name: "General Motors", Vertical: roster.VerticalAutomotive},
			{Name: "Alpha Beta Gamma Delta Epsilon", Vertical: roster.VerticalTechnology},
			{Name: "Nike", Vertical: roster.VerticalDistribution},
		},
		[]roster.Synonym{
			{Variant: "GM Milford", Canonical: "General Motors"},
			{Variant: "Nike/GXO Relay", Canonical: "Nike"},
		},
		[]string{"Omnicom"},
	)
	require.NoError(t, err)
	return r
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &parsed
}

func scorePtr(v float64) *float64 { return &v }

func TestNewValidation(t *testing.T) {
	r := testRoster(t)

	_, err := New(nil)
	require.Error(t, err)

	_, err = New(r, WithThreshold(0))
	require.Error(t, err)

	_, err = New(r, WithThreshold(1.5))
	require.Error(t, err)

	_, err = New(r, WithStrategy(StrategyType("newest")))
	require.Error(t, err)

	_, err = New(r, WithMergeAccounts("Globex"))
	require.Error(t, err)

	_, err = New(r, WithMergeAccounts("Nike"))
	require.NoError(t, err)
}

func TestReconcileEmptyInputIsComplete(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, result.Accounts, r.Len())
	for _, a := range result.Accounts {
		assert.False(t, a.HasData)
		assert.Nil(t, a.Data)
		assert.Zero(t, a.Responses)
	}
	assert.Empty(t, result.Unresolved)
	assert.Len(t, result.Missing(), r.Len())
	assert.Empty(t, result.WithData())
}

func TestReconcileRosterOrder(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Nike"},
		{Index: 1, AccountName: "Ford"},
	})
	require.NoError(t, err)

	var names []string
	for _, a := range result.Accounts {
		names = append(names, a.Account.Name)
	}
	// Vertical display order, then name; input order is irrelevant.
	assert.Equal(t, []string{
		"Ford",
		"General Motors",
		"Alpha Beta Gamma Delta Epsilon",
		"Nike",
	}, names)
}

func TestReconcileOmittedNamesAreCountedNotReported(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Omnicom", Score: scorePtr(4.2)},
		{Index: 1, AccountName: "  omnicom  "},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Metadata.Stats.Omitted)
	assert.Empty(t, result.Unresolved)
	for _, a := range result.Accounts {
		assert.False(t, a.HasData)
	}
}

func TestReconcileSynonymAndExact(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "GM Milford", Score: scorePtr(3.5)},
		{Index: 1, AccountName: "ford", Score: scorePtr(5)},
	})
	require.NoError(t, err)

	byName := make(map[string]review.ResolvedAccount)
	for _, a := range result.Accounts {
		byName[a.Account.Name] = a
	}

	gm := byName["General Motors"]
	require.True(t, gm.HasData)
	assert.Equal(t, 3.5, *gm.Data.Score)

	ford := byName["Ford"]
	require.True(t, ford.HasData)
	assert.Equal(t, 5.0, *ford.Data.Score)
}

func TestReconcileSynonymIdempotence(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	first, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Nike/GXO Relay", Score: scorePtr(4)},
	})
	require.NoError(t, err)

	// Feeding resolved canonical names back through resolves exactly.
	var second []review.Record
	for _, a := range first.WithData() {
		second = append(second, review.Record{AccountName: a.Account.Name, Score: a.Data.Score})
	}
	again, err := rc.Reconcile(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, again.WithData(), len(first.WithData()))
	for i, a := range again.WithData() {
		assert.Equal(t, first.WithData()[i].Account, a.Account)
		assert.Equal(t, *first.WithData()[i].Data.Score, *a.Data.Score)
	}
	assert.Empty(t, again.Unresolved)
}

func TestReconcileFuzzyThresholdBoundary(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	// 4 of 5 tokens: score 0.8, exactly at the threshold.
	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Alpha Beta Gamma Delta"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Unresolved)
	assert.Equal(t, 1, result.Metadata.Stats.Resolved)

	// 3 of 5 tokens: score 0.6, below the threshold.
	result, err = rc.Reconcile(context.Background(), []review.Record{
		{Index: 7, AccountName: "Alpha Beta Gamma"},
	})
	require.NoError(t, err)
	require.Len(t, result.Unresolved, 1)
	diag := result.Unresolved[0]
	assert.Equal(t, "Alpha Beta Gamma", diag.RawName)
	assert.Equal(t, 7, diag.Row)
	assert.Equal(t, "Alpha Beta Gamma Delta Epsilon", diag.Nearest)
	assert.InDelta(t, 0.6, diag.Score, 1e-9)
}

func TestReconcileLatestStrategyTieBreak(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	records := []review.Record{
		{Index: 0, AccountName: "Ford", Score: scorePtr(3), CompletionDate: datePtr(t, "2026-03-01")},
		{Index: 1, AccountName: "Ford", Score: scorePtr(4), CompletionDate: datePtr(t, "2026-05-01")},
		{Index: 2, AccountName: "Ford", Score: scorePtr(5), CompletionDate: datePtr(t, "2026-04-01")},
	}
	result, err := rc.Reconcile(context.Background(), records)
	require.NoError(t, err)

	ford := result.WithData()[0]
	assert.Equal(t, 4.0, *ford.Data.Score)
	assert.Equal(t, 3, ford.Responses)
	assert.Equal(t, 1, result.Metadata.Stats.Conflicts)

	// Same completion date: latest review date wins.
	completion := datePtr(t, "2026-05-01")
	records = []review.Record{
		{Index: 0, AccountName: "Ford", Score: scorePtr(3), CompletionDate: completion, ReviewDate: datePtr(t, "2026-04-20")},
		{Index: 1, AccountName: "Ford", Score: scorePtr(4), CompletionDate: completion, ReviewDate: datePtr(t, "2026-04-25")},
	}
	result, err = rc.Reconcile(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *result.WithData()[0].Data.Score)

	// No dates at all: lowest input index wins.
	records = []review.Record{
		{Index: 4, AccountName: "Ford", Score: scorePtr(2)},
		{Index: 2, AccountName: "Ford", Score: scorePtr(1)},
	}
	result, err = rc.Reconcile(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *result.WithData()[0].Data.Score)
}

func TestReconcileDeterministicAcrossRuns(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	records := []review.Record{
		{Index: 0, AccountName: "Ford", Score: scorePtr(3)},
		{Index: 1, AccountName: "Ford", Score: scorePtr(4)},
		{Index: 2, AccountName: "GM Milford", Score: scorePtr(2)},
	}
	first, err := rc.Reconcile(context.Background(), records)
	require.NoError(t, err)
	for range 10 {
		again, err := rc.Reconcile(context.Background(), records)
		require.NoError(t, err)
		assert.Equal(t, first.Accounts, again.Accounts)
		assert.Equal(t, first.Unresolved, again.Unresolved)
	}
}

func TestReconcileMergeAccounts(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts("Nike"))
	require.NoError(t, err)

	records := []review.Record{
		{Index: 0, AccountName: "Nike", Score: scorePtr(4), Summary: "west campus",
			CompletionDate: datePtr(t, "2026-02-01")},
		{Index: 1, AccountName: "Nike/GXO Relay", Score: scorePtr(5), Summary: "relay site",
			CompletionDate: datePtr(t, "2026-03-01")},
	}
	result, err := rc.Reconcile(context.Background(), records)
	require.NoError(t, err)

	nike := result.WithData()[0]
	require.Equal(t, "Nike", nike.Account.Name)
	assert.Equal(t, 4.5, *nike.Data.Score)
	assert.Equal(t, 2, nike.Responses)
	assert.Equal(t, "Nike", nike.Data.AccountName)
	assert.Equal(t, "west campus\n\nrelay site", nike.Data.Summary)
	assert.True(t, nike.Data.CompletionDate.Equal(*datePtr(t, "2026-03-01")))

	// Ford is not a merge account: duplicates still collapse to latest.
	records = append(records,
		review.Record{Index: 2, AccountName: "Ford", Score: scorePtr(1)},
		review.Record{Index: 3, AccountName: "Ford", Score: scorePtr(2)},
	)
	result, err = rc.Reconcile(context.Background(), records)
	require.NoError(t, err)
	byName := make(map[string]review.ResolvedAccount)
	for _, a := range result.Accounts {
		byName[a.Account.Name] = a
	}
	assert.Equal(t, 1.0, *byName["Ford"].Data.Score)
	assert.Equal(t, 2, byName["Ford"].Responses)
}

func TestReconcileMergeStrategyAppliesEverywhere(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithStrategy(StrategyMerge), WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Ford", Score: scorePtr(1)},
		{Index: 1, AccountName: "Ford", Score: scorePtr(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, *result.WithData()[0].Data.Score)
}

func TestReconcileEmptyAccountNameWarns(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 3, AccountName: "   "},
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row 3")
	assert.Empty(t, result.Unresolved)
}

func TestReconcileStatsAndSummary(t *testing.T) {
	r := testRoster(t)
	rc, err := New(r, WithMergeAccounts())
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Ford", Score: scorePtr(4)},
		{Index: 1, AccountName: "Omnicom"},
		{Index: 2, AccountName: "Zebra Industries LLC"},
	})
	require.NoError(t, err)

	s := result.Metadata.Stats
	assert.Equal(t, 3, s.RowsProcessed)
	assert.Equal(t, 1, s.Resolved)
	assert.Equal(t, 1, s.Omitted)
	assert.Equal(t, 1, s.Unresolved)
	assert.Equal(t, 0, s.Conflicts)
	assert.Equal(t, 1, result.TotalResponses())
	assert.False(t, result.Metadata.EndTime.IsZero())
	assert.GreaterOrEqual(t, result.Metadata.Duration, time.Duration(0))

	avg, ok := result.AverageScore()
	require.True(t, ok)
	assert.Equal(t, 4.0, avg)

	assert.Contains(t, result.Summary(), "3 rows")
	assert.Contains(t, result.Summary(), "1 unresolved")
}

// Full-roster scenario: two raw names resolve through synonyms, an
// omitted account is skipped, and all remaining accounts still appear.
func TestReconcileDefaultRosterScenario(t *testing.T) {
	r, err := roster.Default()
	require.NoError(t, err)

	rc, err := New(r)
	require.NoError(t, err)

	result, err := rc.Reconcile(context.Background(), []review.Record{
		{Index: 0, AccountName: "Merck Sodexo", Score: scorePtr(4.68)},
		{Index: 1, AccountName: "GM Milford", Score: scorePtr(91), ScoreRaw: "91"},
		{Index: 2, AccountName: "Omnicom", Score: scorePtr(4.2)},
	})
	require.NoError(t, err)

	require.Len(t, result.Accounts, 55)

	byName := make(map[string]review.ResolvedAccount)
	for _, a := range result.Accounts {
		byName[a.Account.Name] = a
	}

	merck := byName["Merck"]
	require.True(t, merck.HasData)
	assert.Equal(t, 4.68, *merck.Data.Score)
	assert.Equal(t, roster.VerticalLifeScience, merck.Account.Vertical)

	gm := byName["General Motors"]
	require.True(t, gm.HasData)
	assert.Equal(t, 91.0, *gm.Data.Score)

	_, omnicomPresent := byName["Omnicom"]
	assert.False(t, omnicomPresent)
	assert.Equal(t, 1, result.Metadata.Stats.Omitted)
	assert.Empty(t, result.Unresolved)

	assert.Len(t, result.Missing(), 53)
	assert.Len(t, result.WithData(), 2)
}
