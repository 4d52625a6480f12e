// Package matcher provides deterministic account-name matching: exact
// lookup, synonym lookup, and a token-set similarity fallback for raw
// names that vary by abbreviation, suffix, or office qualifier.
package matcher

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Kind represents how a raw name was matched.
type Kind int

const (
	// None means no match cleared the similarity threshold.
	None Kind = iota
	// Exact means the normalized name equaled a canonical name.
	Exact
	// Synonym means the normalized name equaled a registered variant.
	Synonym
	// Fuzzy means the name cleared the token-set similarity threshold.
	Fuzzy
)

// String returns a string representation of the match kind.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Synonym:
		return "synonym"
	case Fuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is the outcome of resolving one raw name.
type Match struct {
	Canonical string  // Canonical account name, empty when Kind is None
	Kind      Kind    // How the match was made
	Score     float64 // Similarity score for Fuzzy matches, 1.0 otherwise
}

// candidate is one fuzzy-match target: the token set of a canonical name
// or synonym variant, and the canonical name it resolves to.
type candidate struct {
	tokens    []string
	canonical string
}

// Index resolves raw account names against a fixed set of canonical names
// and synonym variants. It is immutable once populated and safe for
// concurrent readers.
type Index struct {
	exact      map[string]string // folded canonical name -> display name
	synonyms   map[string]string // folded variant -> canonical display name
	candidates []candidate
	threshold  float64
}

// NewIndex creates an empty index that accepts fuzzy matches scoring at or
// above threshold.
func NewIndex(threshold float64) *Index {
	return &Index{
		exact:     make(map[string]string),
		synonyms:  make(map[string]string),
		threshold: threshold,
	}
}

// AddCanonical registers a canonical account name.
func (ix *Index) AddCanonical(name string) {
	key := Fold(name)
	ix.exact[key] = name
	ix.candidates = append(ix.candidates, candidate{tokens: Tokens(name), canonical: name})
}

// AddSynonym registers a raw variant that resolves to canonical.
func (ix *Index) AddSynonym(variant, canonical string) {
	ix.synonyms[Fold(variant)] = canonical
	ix.candidates = append(ix.candidates, candidate{tokens: Tokens(variant), canonical: canonical})
}

// Threshold returns the pinned similarity threshold.
func (ix *Index) Threshold() float64 {
	return ix.threshold
}

// Resolve matches a raw name in deterministic order: exact canonical match,
// then synonym match, then the token-set fallback. The fallback accepts the
// highest-scoring candidate at or above the threshold; equal scores break
// to the lexicographically smaller canonical name so reruns are stable.
func (ix *Index) Resolve(raw string) Match {
	key := Fold(raw)
	if key == "" {
		return Match{Kind: None}
	}

	if name, ok := ix.exact[key]; ok {
		return Match{Canonical: name, Kind: Exact, Score: 1}
	}

	if name, ok := ix.synonyms[key]; ok {
		return Match{Canonical: name, Kind: Synonym, Score: 1}
	}

	tokens := Tokens(raw)
	best := Match{Kind: None}
	for _, cand := range ix.candidates {
		score := TokenSetRatio(tokens, cand.tokens)
		if score < ix.threshold {
			continue
		}
		if score > best.Score || (score == best.Score && cand.canonical < best.Canonical) {
			best = Match{Canonical: cand.canonical, Kind: Fuzzy, Score: score}
		}
	}
	return best
}

// Nearest returns the best-scoring candidate for a raw name regardless of
// the threshold. Useful for diagnostics on unresolved names: the nearest
// candidate hints whether a new synonym entry is needed.
func (ix *Index) Nearest(raw string) Match {
	tokens := Tokens(raw)
	best := Match{Kind: None}
	for _, cand := range ix.candidates {
		score := TokenSetRatio(tokens, cand.tokens)
		if score == 0 {
			continue
		}
		if score > best.Score || (score == best.Score && cand.canonical < best.Canonical) {
			best = Match{Canonical: cand.canonical, Kind: Fuzzy, Score: score}
		}
	}
	return best
}

// Normalize trims leading/trailing whitespace and collapses internal runs
// of whitespace to a single space. Display casing is preserved.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the case-insensitive comparison key for a name: normalized
// whitespace plus Unicode case folding.
func Fold(s string) string {
	return cases.Fold().String(Normalize(s))
}

// Tokens splits a name into folded alphanumeric tokens. Separators such as
// "/", "&", "(" and ")" delimit tokens, so "Nike/GXO Connect" and
// "Micron (C&W)" tokenize cleanly.
func Tokens(s string) []string {
	folded := Fold(s)
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r >= 0x80: // keep non-ASCII letters together
			return false
		}
		return true
	})
	sort.Strings(tokens)
	return tokens
}

// TokenSetRatio scores the overlap of two token sets as
// |intersection| / max(|a|, |b|). Duplicate tokens count once. The result
// is 1 for identical sets and 0 when either set is empty or disjoint.
func TokenSetRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(a))
	for _, t := range a {
		seen[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	shared := 0
	for t := range setB {
		if _, ok := seen[t]; ok {
			shared++
		}
	}

	size := len(seen)
	if len(setB) > size {
		size = len(setB)
	}
	return float64(shared) / float64(size)
}
