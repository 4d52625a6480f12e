package review

import (
	"regexp"
	"strconv"
	"strings"
)

// Textual score patterns seen in the exports, tried in order. Each
// pattern's first capture group is the score.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`sbm\s*-?\s*(\d+\.?\d*)`),                         // "SBM 4.25", "SBM - 5."
	regexp.MustCompile(`scored?\s+(?:a\s+)?(\d+\.?\d*)`),                 // "scored a 5"
	regexp.MustCompile(`(\d+\.?\d*)\s+out\s+of`),                         // "5 out of 5"
	regexp.MustCompile(`score[d]?\s+(?:of\s+)?(\d+\.?\d*)`),              // "score of 5"
	regexp.MustCompile(`(\d+\.?\d*)/5`),                                  // "5/5"
	regexp.MustCompile(`all\s+(?:sites?\s+)?(?:scored?\s+)?(?:a\s+)?(\d+\.?\d*)`), // "all sites scored a 5"
}

var numberPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// ParseScore extracts a numeric score from a raw score cell. Accepted
// forms, in order:
//   - "N/A" or empty: no score
//   - a plain number ("4.68", "5", "91")
//   - a fraction ("4.93/5.00"), yielding the numerator
//   - free text containing a score phrase ("every site scored a 5"),
//     accepted only in the 0-5 range
//   - free text listing several site scores, averaged over the values in
//     the 0-5 range
//
// Returns nil when nothing parseable is found; an unparseable score never
// fails the row.
func ParseScore(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "n/a") {
		return nil
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return &v
	}

	if idx := strings.IndexByte(s, '/'); idx > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s[:idx]), 64); err == nil {
			return &v
		}
	}

	lower := strings.ToLower(s)
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 && v <= 5 {
			return &v
		}
	}

	// Multi-site cells like "Bloomfield - 4.0 St. Louis - 5.0" average the
	// plausible scores.
	var sum float64
	var n int
	for _, m := range numberPattern.FindAllString(lower, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil || v < 0 || v > 5 {
			continue
		}
		sum += v
		n++
	}
	if n > 0 {
		avg := sum / float64(n)
		return &avg
	}

	return nil
}
