package scorecards

import "strings"

// Form exports carry two generations of columns: the original survey
// questions and a re-exported set whose headers repeat the question text
// with a "1" suffix. Headers are long multi-line question prompts, so
// columns are located by normalized prefix rather than exact text. When
// a prefix matches more than one header the first occurrence is the
// original set and the second is the re-exported set.
const (
	colAccount        = "Name of Account/Portfolio"
	colReviewDate     = "Date/Time of Scorecard Review"
	colAttendees      = "Who attended your Scorecard Review"
	colScore          = "What was the overall Scorecard Score"
	colSummary        = "Summary of Review"
	colFeedback       = "Customer Feedback"
	colActionItems    = "Action Items/Follow Ups"
	colNextReview     = "Date of Next Scorecard Review"
	colCompletionTime = "Completion time"
	colDirector       = "Please Enter Your Name"
	colIFM            = "Who is Your FM"
)

// column holds the indexes of one logical field across both column
// sets. A missing set is -1.
type column struct {
	original int
	reexport int
}

// columns indexes a header row by field.
type columns map[string]column

// normalizeHeader flattens a multi-line header cell to one line for
// prefix matching.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(h), " ")
}

func indexColumns(header []string) columns {
	cols := make(columns)
	prefixes := []string{
		colAccount, colReviewDate, colAttendees, colScore, colSummary,
		colFeedback, colActionItems, colNextReview, colCompletionTime,
		colDirector, colIFM,
	}
	for _, prefix := range prefixes {
		cols[prefix] = column{original: -1, reexport: -1}
	}
	for i, cell := range header {
		normalized := normalizeHeader(cell)
		for _, prefix := range prefixes {
			if !strings.HasPrefix(normalized, prefix) {
				continue
			}
			col := cols[prefix]
			switch {
			case col.original < 0:
				col.original = i
			case col.reexport < 0:
				col.reexport = i
			}
			cols[prefix] = col
			break
		}
	}
	return cols
}

// row is one data record with its header index.
type row struct {
	cols   columns
	record []string
}

func (r row) at(i int) string {
	if i < 0 || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// useReexport reports whether this row was filled through the
// re-exported column set, detected by which account cell has data.
func (r row) useReexport() bool {
	return r.at(r.cols[colAccount].reexport) != ""
}

// get returns the cell for a logical field, preferring the column set
// the row was filled through and falling back to the other.
func (r row) get(field string) string {
	col := r.cols[field]
	if r.useReexport() {
		if v := r.at(col.reexport); v != "" {
			return v
		}
		return r.at(col.original)
	}
	if v := r.at(col.original); v != "" {
		return v
	}
	return r.at(col.reexport)
}

func (r row) empty() bool {
	for _, cell := range r.record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
