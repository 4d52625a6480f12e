// Package reconciler maps free-form scorecard account names onto the
// canonical roster. Every run produces exactly one resolved entry per
// roster account, so downstream consumers never have to ask whether an
// account is absent or merely unmatched.
package reconciler

import (
	"fmt"

	"github.com/sbmops/scorecard/pkg/errors"
	"github.com/sbmops/scorecard/pkg/roster"
)

// DefaultThreshold is the minimum token-set score accepted as a fuzzy
// match. Pinned so reruns over the same input resolve identically.
const DefaultThreshold = 0.8

// Options controls how raw records are resolved and collapsed.
type Options struct {
	// Threshold is the minimum fuzzy score in (0, 1] accepted as a match.
	Threshold float64

	// Strategy collapses duplicate resolutions to the same account.
	Strategy StrategyType

	// MergeAccounts lists canonical accounts whose duplicates aggregate
	// (mean score, combined text) even when Strategy is StrategyLatest.
	// Multi-site accounts report several rows per cycle; merging keeps
	// all of them visible.
	MergeAccounts []string
}

// Defaults returns the default reconciler options.
func Defaults() *Options {
	return &Options{
		Threshold: DefaultThreshold,
		Strategy:  StrategyLatest,
		MergeAccounts: []string{
			"Gilead Sciences",
			"Nike",
			"General Motors",
		},
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option is a function that configures reconciler Options.
type Option func(*Options)

// Validate checks the options against the roster they will run over.
func (o *Options) Validate(r *roster.Roster) error {
	if o.Threshold <= 0 || o.Threshold > 1 {
		return errors.NewValidationError("Threshold", o.Threshold,
			"threshold must be in the interval (0, 1]")
	}
	if !o.Strategy.Valid() {
		return errors.NewValidationError("Strategy", o.Strategy,
			fmt.Sprintf("unknown strategy %q", o.Strategy))
	}
	for _, name := range o.MergeAccounts {
		if _, err := r.Lookup(name); err != nil {
			return errors.NewValidationError("MergeAccounts", name,
				fmt.Sprintf("merge account %q is not a canonical account", name))
		}
	}
	return nil
}

// WithThreshold sets the minimum fuzzy score accepted as a match.
func WithThreshold(threshold float64) Option {
	return func(opts *Options) {
		opts.Threshold = threshold
	}
}

// WithStrategy sets how duplicate resolutions collapse.
func WithStrategy(strategy StrategyType) Option {
	return func(opts *Options) {
		opts.Strategy = strategy
	}
}

// WithMergeAccounts replaces the set of accounts whose duplicates
// aggregate instead of collapsing to the latest record.
func WithMergeAccounts(names ...string) Option {
	return func(opts *Options) {
		opts.MergeAccounts = names
	}
}
