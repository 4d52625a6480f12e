package reconciler

import (
	"fmt"
	"time"

	"github.com/sbmops/scorecard/pkg/review"
)

// Result is the complete output of one reconciliation run. Accounts
// always holds one entry per roster account in roster order, with or
// without data, so consumers can render a full board without joining
// back against the roster.
type Result struct {
	Accounts   []review.ResolvedAccount `json:"accounts"`
	Unresolved []Diagnostic             `json:"unresolved,omitempty"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Metadata   Metadata                 `json:"metadata"`
}

// Diagnostic describes one raw name that matched nothing. Nearest and
// Score carry the closest candidate below the threshold, which is the
// hint an operator needs to decide whether to add a synonym.
type Diagnostic struct {
	RawName string  `json:"raw_name"`
	Row     int     `json:"row"`
	Nearest string  `json:"nearest,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Metadata records when the run happened and how it was configured.
type Metadata struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Threshold float64       `json:"threshold"`
	Strategy  StrategyType  `json:"strategy"`
	Stats     Stats         `json:"stats"`
}

// Stats are per-run counters. Resolved counts raw rows that bound to an
// account, not distinct accounts; Conflicts counts accounts that
// received more than one row.
type Stats struct {
	RowsProcessed int `json:"rows_processed"`
	Resolved      int `json:"resolved"`
	Omitted       int `json:"omitted"`
	Unresolved    int `json:"unresolved"`
	Conflicts     int `json:"conflicts"`
}

// NewResult creates a Result with the start time set.
func NewResult(threshold float64, strategy StrategyType) *Result {
	return &Result{
		Metadata: Metadata{
			StartTime: time.Now(),
			Threshold: threshold,
			Strategy:  strategy,
		},
	}
}

// Finalize stamps the end time and derived counters.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.Unresolved = len(r.Unresolved)
}

// Missing returns the accounts that received no data this run, in
// roster order.
func (r *Result) Missing() []review.ResolvedAccount {
	var missing []review.ResolvedAccount
	for _, a := range r.Accounts {
		if !a.HasData {
			missing = append(missing, a)
		}
	}
	return missing
}

// WithData returns the accounts that received data this run, in roster
// order.
func (r *Result) WithData() []review.ResolvedAccount {
	var present []review.ResolvedAccount
	for _, a := range r.Accounts {
		if a.HasData {
			present = append(present, a)
		}
	}
	return present
}

// AverageScore returns the mean parsed score across accounts with data.
// The second return is false when no account carries a parsed score.
func (r *Result) AverageScore() (float64, bool) {
	var sum float64
	var n int
	for _, a := range r.Accounts {
		if a.HasData && a.Data != nil && a.Data.Score != nil {
			sum += *a.Data.Score
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// TotalResponses returns the number of raw rows bound to any account.
func (r *Result) TotalResponses() int {
	var total int
	for _, a := range r.Accounts {
		total += a.Responses
	}
	return total
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("%d rows: %d resolved to %d accounts, %d omitted, %d unresolved (%d missing data)",
		s.RowsProcessed, s.Resolved, len(r.WithData()), s.Omitted, s.Unresolved, len(r.Missing()))
}
