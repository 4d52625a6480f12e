// Package review defines the scorecard review data model: the raw record
// parsed from one CSV row and the resolved per-account record the
// reconciler produces. Field parsing is best-effort; unparseable score or
// date strings degrade to absent values rather than failing the row.
package review

import (
	"time"

	"github.com/sbmops/scorecard/pkg/roster"
)

// Record is one parsed CSV row. All fields other than AccountName are
// optional; pointer fields are nil when the source cell was empty or
// unparseable.
type Record struct {
	// Index is the zero-based position of the row in the source file.
	// Used as the final tie-break so reconciliation is deterministic.
	Index int `json:"index"`

	AccountName string `json:"account_name"`

	Score    *float64 `json:"score,omitempty"`
	ScoreRaw string   `json:"score_raw,omitempty"` // original cell text, kept for display

	ReviewDate     *time.Time `json:"review_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	NextReviewDate string     `json:"next_review_date,omitempty"`

	Director    string `json:"director,omitempty"`
	Attendees   string `json:"attendees,omitempty"`
	IFM         string `json:"ifm,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
	ActionItems string `json:"action_items,omitempty"`
}

// ResolvedAccount is the terminal output for one canonical account:
// either the record bound to it, or a marker that no data arrived this
// cycle. The reconciler emits exactly one ResolvedAccount per roster
// account per run.
type ResolvedAccount struct {
	Account roster.Account `json:"account"`
	Data    *Record        `json:"data,omitempty"`
	HasData bool           `json:"has_data"`

	// Responses is the number of raw rows that resolved to this account.
	Responses int `json:"responses"`
}
