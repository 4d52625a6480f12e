package reconciler

import (
	"strings"
	"time"

	"github.com/sbmops/scorecard/pkg/review"
)

// StrategyType identifies how duplicate resolutions to one account
// collapse into a single record.
type StrategyType string

const (
	// StrategyLatest keeps the most recent record: latest completion
	// date, then latest review date, then lowest input index.
	StrategyLatest StrategyType = "latest"

	// StrategyMerge aggregates duplicates for every account: mean score,
	// latest dates, combined text sections.
	StrategyMerge StrategyType = "merge"
)

// Valid reports whether the strategy type is known.
func (s StrategyType) Valid() bool {
	switch s {
	case StrategyLatest, StrategyMerge:
		return true
	}
	return false
}

// newer reports whether a wins over b: latest completion date first,
// then latest review date, then lowest input index. A present date
// always beats an absent one.
func newer(a, b *review.Record) bool {
	if c := compareDates(a.CompletionDate, b.CompletionDate); c != 0 {
		return c > 0
	}
	if c := compareDates(a.ReviewDate, b.ReviewDate); c != 0 {
		return c > 0
	}
	return a.Index < b.Index
}

func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.After(*b):
		return 1
	case b.After(*a):
		return -1
	}
	return 0
}

// selectLatest picks the winning record under the latest rule.
func selectLatest(records []*review.Record) *review.Record {
	best := records[0]
	for _, rec := range records[1:] {
		if newer(rec, best) {
			best = rec
		}
	}
	return best
}

// mergeRecords aggregates duplicate records for one account: the mean
// of the parsed scores, the latest of each date, and the text sections
// of every record combined in input order. Response-level fields
// (director, attendees, facilities team) come from the latest record.
func mergeRecords(canonical string, records []*review.Record) *review.Record {
	latest := selectLatest(records)

	merged := &review.Record{
		Index:          latest.Index,
		AccountName:    canonical,
		NextReviewDate: latest.NextReviewDate,
		Director:       latest.Director,
		Attendees:      latest.Attendees,
		IFM:            latest.IFM,
	}

	var sum float64
	var scored int
	var raws []string
	for _, rec := range records {
		if rec.Score != nil {
			sum += *rec.Score
			scored++
		}
		if rec.ScoreRaw != "" {
			raws = append(raws, rec.ScoreRaw)
		}
		merged.ReviewDate = laterOf(merged.ReviewDate, rec.ReviewDate)
		merged.CompletionDate = laterOf(merged.CompletionDate, rec.CompletionDate)
	}
	if scored > 0 {
		mean := sum / float64(scored)
		merged.Score = &mean
	}
	merged.ScoreRaw = strings.Join(raws, "; ")

	merged.Summary = joinSections(records, func(r *review.Record) string { return r.Summary })
	merged.Feedback = joinSections(records, func(r *review.Record) string { return r.Feedback })
	merged.ActionItems = joinSections(records, func(r *review.Record) string { return r.ActionItems })

	return merged
}

func laterOf(a, b *time.Time) *time.Time {
	if compareDates(b, a) > 0 {
		return b
	}
	return a
}

// joinSections combines one text field across records in input order,
// skipping empty cells.
func joinSections(records []*review.Record, field func(*review.Record) string) string {
	var parts []string
	for _, rec := range records {
		if s := strings.TrimSpace(field(rec)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
