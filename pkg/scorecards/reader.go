// Package scorecards reads scorecard review CSV exports into records.
// It handles the quirks of the real exports: Windows-1252 encoding,
// mojibake in free text, variable-length rows, and the duplicated
// column sets produced by form re-exports. It performs no account
// resolution; rows come out as raw records.
package scorecards

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/sbmops/scorecard/pkg/errors"
	"github.com/sbmops/scorecard/pkg/review"
)

// Read parses a scorecard CSV export into records. Rows that are
// entirely empty are skipped; everything else is kept, including rows
// with unparseable scores or dates (those fields degrade to absent).
func Read(r io.Reader) ([]review.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "scorecard csv", err)
	}
	text := decode(data)

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "scorecard csv", err)
	}
	cols := indexColumns(header)
	if cols[colAccount].original < 0 {
		return nil, errors.NewParseError("csv", "scorecard csv",
			"no account column in header", nil)
	}

	var records []review.Record
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", "scorecard csv", err)
		}
		rw := row{cols: cols, record: record}
		if rw.empty() {
			continue
		}
		records = append(records, parseRow(rw, len(records)))
	}
	return records, nil
}

// ReadFile reads one scorecard CSV export from disk.
func ReadFile(path string) ([]review.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return records, nil
}

func parseRow(rw row, index int) review.Record {
	scoreRaw := cleanText(rw.get(colScore))
	return review.Record{
		Index:          index,
		AccountName:    cleanText(rw.get(colAccount)),
		Score:          review.ParseScore(scoreRaw),
		ScoreRaw:       scoreRaw,
		ReviewDate:     review.ParseDate(rw.get(colReviewDate)),
		CompletionDate: review.ParseDate(rw.at(rw.cols[colCompletionTime].original)),
		NextReviewDate: cleanText(rw.get(colNextReview)),
		Director:       cleanText(rw.get(colDirector)),
		Attendees:      cleanText(rw.get(colAttendees)),
		IFM:            cleanText(rw.at(rw.cols[colIFM].original)),
		Summary:        cleanText(rw.get(colSummary)),
		Feedback:       cleanText(rw.get(colFeedback)),
		ActionItems:    cleanText(rw.get(colActionItems)),
	}
}

// decode returns the file content as UTF-8. Exports from Excel arrive
// as Windows-1252 more often than not; anything that is not already
// valid UTF-8 goes through the charmap decoder, which cannot fail.
func decode(data []byte) string {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

var mojibake = strings.NewReplacer(
	"�", "'", // replacement char, almost always a lost apostrophe
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"\x91", "'",
	"\x92", "'",
	"\x93", `"`,
	"\x94", `"`,
	"\x96", "–",
	"\x97", "—",
)

// cleanText repairs the smart-quote damage double-encoded exports leave
// in free text.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	return mojibake.Replace(s)
}
