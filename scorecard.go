// Package scorecard reconciles free-form scorecard review exports
// against a fixed canonical account roster. The root package bundles
// the roster, the reconciler and the CSV loader behind one client so
// library consumers don't wire the pieces themselves.
package scorecard

import (
	"context"
	"fmt"

	"github.com/sbmops/scorecard/pkg/reconciler"
	"github.com/sbmops/scorecard/pkg/review"
	"github.com/sbmops/scorecard/pkg/roster"
	"github.com/sbmops/scorecard/pkg/scorecards"
)

// Client reconciles scorecard review data against the canonical roster.
type Client interface {
	// Roster returns the roster this client resolves against.
	Roster() *roster.Roster

	// Reconcile resolves already-parsed records.
	Reconcile(ctx context.Context, records []review.Record) (*reconciler.Result, error)

	// ReconcileFile reads one CSV export and resolves it.
	ReconcileFile(ctx context.Context, path string) (*reconciler.Result, error)

	// ReconcileMonth resolves one month from a scorecards directory.
	// An empty key selects the newest export.
	ReconcileMonth(ctx context.Context, dir, key string) (*reconciler.Result, error)
}

type client struct {
	roster     *roster.Roster
	reconciler reconciler.Reconciler
}

// New creates a Client. Without options it runs over the embedded
// roster with default reconciler settings.
func New(opts ...Option) (Client, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	r := cfg.roster
	if r == nil {
		var err error
		r, err = roster.Default()
		if err != nil {
			return nil, fmt.Errorf("loading embedded roster: %w", err)
		}
	}

	rec, err := reconciler.New(r, cfg.reconcilerOpts...)
	if err != nil {
		return nil, err
	}

	return &client{roster: r, reconciler: rec}, nil
}

func (c *client) Roster() *roster.Roster {
	return c.roster
}

func (c *client) Reconcile(ctx context.Context, records []review.Record) (*reconciler.Result, error) {
	return c.reconciler.Reconcile(ctx, records)
}

func (c *client) ReconcileFile(ctx context.Context, path string) (*reconciler.Result, error) {
	records, err := scorecards.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.reconciler.Reconcile(ctx, records)
}

func (c *client) ReconcileMonth(ctx context.Context, dir, key string) (*reconciler.Result, error) {
	var month scorecards.Month
	var err error
	if key == "" {
		month, err = scorecards.Latest(dir)
	} else {
		month, err = scorecards.Find(dir, key)
	}
	if err != nil {
		return nil, err
	}
	return c.ReconcileFile(ctx, month.Path)
}
