package reconciler

import (
	"context"
	"fmt"

	"github.com/sbmops/scorecard/internal/matcher"
	"github.com/sbmops/scorecard/pkg/errors"
	"github.com/sbmops/scorecard/pkg/logging"
	"github.com/sbmops/scorecard/pkg/review"
	"github.com/sbmops/scorecard/pkg/roster"
)

// Reconciler resolves raw scorecard records against a canonical roster.
type Reconciler interface {
	// Reconcile maps each record's account name onto the roster and
	// returns one ResolvedAccount per canonical account, in roster
	// order. Names that match nothing are reported in the result's
	// diagnostics; nothing is dropped silently except omitted names,
	// which are counted.
	Reconcile(ctx context.Context, records []review.Record) (*Result, error)
}

type reconciler struct {
	roster *roster.Roster
	index  *matcher.Index
	opts   *Options
	merged map[string]bool // canonical names whose duplicates aggregate
}

// New creates a Reconciler over the given roster. The matching index is
// built once; a Reconciler is safe for concurrent use.
func New(r *roster.Roster, opts ...Option) (Reconciler, error) {
	if r == nil {
		return nil, errors.NewValidationError("roster", nil, "roster is required")
	}
	options := Defaults().Apply(opts...)
	if err := options.Validate(r); err != nil {
		return nil, err
	}

	index := matcher.NewIndex(options.Threshold)
	for _, account := range r.Accounts() {
		index.AddCanonical(account.Name)
	}
	for _, syn := range r.Synonyms() {
		index.AddSynonym(syn.Variant, syn.Canonical)
	}

	merged := make(map[string]bool, len(options.MergeAccounts))
	for _, name := range options.MergeAccounts {
		account, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		merged[account.Name] = true
	}

	return &reconciler{
		roster: r,
		index:  index,
		opts:   options,
		merged: merged,
	}, nil
}

// Reconcile implements Reconciler.
func (rc *reconciler) Reconcile(ctx context.Context, records []review.Record) (*Result, error) {
	result := NewResult(rc.opts.Threshold, rc.opts.Strategy)
	bound := make(map[string][]*review.Record)

	for i := range records {
		rec := &records[i]
		result.Metadata.Stats.RowsProcessed++

		name := matcher.Normalize(rec.AccountName)
		if name == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: empty account name", rec.Index))
			continue
		}
		if rc.roster.IsOmitted(name) {
			result.Metadata.Stats.Omitted++
			continue
		}

		match := rc.index.Resolve(name)
		if match.Kind == matcher.None {
			diag := Diagnostic{RawName: name, Row: rec.Index}
			if near := rc.index.Nearest(name); near.Kind != matcher.None {
				diag.Nearest = near.Canonical
				diag.Score = near.Score
			}
			result.Unresolved = append(result.Unresolved, diag)
			continue
		}

		bound[match.Canonical] = append(bound[match.Canonical], rec)
		result.Metadata.Stats.Resolved++
	}

	// Completeness pass: every roster account appears exactly once,
	// whether or not any row bound to it.
	for _, account := range rc.roster.Accounts() {
		recs := bound[account.Name]
		if len(recs) == 0 {
			result.Accounts = append(result.Accounts, review.ResolvedAccount{Account: account})
			continue
		}
		if len(recs) > 1 {
			result.Metadata.Stats.Conflicts++
		}

		var data *review.Record
		if len(recs) > 1 && (rc.opts.Strategy == StrategyMerge || rc.merged[account.Name]) {
			data = mergeRecords(account.Name, recs)
		} else {
			data = selectLatest(recs)
		}

		result.Accounts = append(result.Accounts, review.ResolvedAccount{
			Account:   account,
			Data:      data,
			HasData:   true,
			Responses: len(recs),
		})
	}

	result.Finalize()
	logging.FromContext(ctx).Debug().
		Int("rows", result.Metadata.Stats.RowsProcessed).
		Int("resolved", result.Metadata.Stats.Resolved).
		Int("omitted", result.Metadata.Stats.Omitted).
		Int("unresolved", result.Metadata.Stats.Unresolved).
		Msg("reconciled scorecard records")
	return result, nil
}
