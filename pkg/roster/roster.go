// Package roster holds the canonical account roster: the fixed set of
// account names, their vertical assignments, the synonym table mapping raw
// CSV spellings onto canonical names, and the omission set of entities
// excluded from the dashboard entirely.
//
// A Roster is frozen at construction and safe for concurrent readers.
// All consistency checks happen in New; an inconsistent roster never
// reaches query time.
package roster

import (
	"sort"

	"github.com/sbmops/scorecard/internal/matcher"
	"github.com/sbmops/scorecard/pkg/errors"
)

// Roster is the frozen configuration table of canonical accounts.
type Roster struct {
	accounts  []Account          // stable order: vertical, then name
	byKey     map[string]Account // folded name -> account
	synonyms  []Synonym
	synByKey  map[string]string // folded variant -> canonical display name
	omissions map[string]struct{}
	omitted   []string
}

// New constructs a Roster from accounts, synonym entries, and omitted raw
// names. It fails with a ConfigError when:
//   - an account name is empty or its vertical is unknown,
//   - one name appears with two different verticals,
//   - a synonym references a canonical name absent from the roster,
//   - a synonym variant shadows a different canonical name, or
//   - an omission collides with a canonical name or synonym variant.
func New(accounts []Account, synonyms []Synonym, omissions []string) (*Roster, error) {
	r := &Roster{
		byKey:     make(map[string]Account, len(accounts)),
		synByKey:  make(map[string]string, len(synonyms)),
		omissions: make(map[string]struct{}, len(omissions)),
	}

	for _, a := range accounts {
		a.Name = matcher.Normalize(a.Name)
		if a.Name == "" {
			return nil, errors.NewConfigError("roster", "account with empty name", nil)
		}
		if !a.Vertical.Valid() {
			return nil, errors.NewConfigError("roster",
				"account "+a.Name+" has unknown vertical "+a.Vertical.String(), nil)
		}
		key := matcher.Fold(a.Name)
		if existing, ok := r.byKey[key]; ok {
			if existing.Vertical != a.Vertical {
				return nil, errors.NewConfigError("roster",
					"account "+a.Name+" appears with verticals "+
						existing.Vertical.String()+" and "+a.Vertical.String(), nil)
			}
			continue // identical duplicate row, keep first
		}
		r.byKey[key] = a
		r.accounts = append(r.accounts, a)
	}

	sort.SliceStable(r.accounts, func(i, j int) bool {
		a, b := r.accounts[i], r.accounts[j]
		if a.Vertical != b.Vertical {
			return a.Vertical.rank() < b.Vertical.rank()
		}
		return a.Name < b.Name
	})

	for _, s := range synonyms {
		variant := matcher.Normalize(s.Variant)
		canonical := matcher.Normalize(s.Canonical)
		if variant == "" || canonical == "" {
			return nil, errors.NewConfigError("roster", "synonym with empty variant or canonical name", nil)
		}
		target, ok := r.byKey[matcher.Fold(canonical)]
		if !ok {
			return nil, errors.NewConfigError("roster",
				"synonym "+variant+" references unknown account "+canonical, nil)
		}
		key := matcher.Fold(variant)
		if acct, ok := r.byKey[key]; ok && acct.Name != target.Name {
			return nil, errors.NewConfigError("roster",
				"synonym "+variant+" shadows canonical account "+acct.Name, nil)
		}
		if prev, ok := r.synByKey[key]; ok && prev != target.Name {
			return nil, errors.NewConfigError("roster",
				"synonym "+variant+" maps to both "+prev+" and "+target.Name, nil)
		}
		r.synByKey[key] = target.Name
		r.synonyms = append(r.synonyms, Synonym{Variant: variant, Canonical: target.Name})
	}

	for _, o := range omissions {
		name := matcher.Normalize(o)
		if name == "" {
			continue
		}
		key := matcher.Fold(name)
		if _, ok := r.byKey[key]; ok {
			return nil, errors.NewConfigError("roster",
				"omission "+name+" collides with a canonical account", nil)
		}
		if _, ok := r.synByKey[key]; ok {
			return nil, errors.NewConfigError("roster",
				"omission "+name+" collides with a synonym variant", nil)
		}
		if _, ok := r.omissions[key]; ok {
			continue
		}
		r.omissions[key] = struct{}{}
		r.omitted = append(r.omitted, name)
	}
	sort.Strings(r.omitted)

	return r, nil
}

// Lookup returns the canonical account whose name matches exactly
// (whitespace-normalized, case-insensitive). It does not consult synonyms.
func (r *Roster) Lookup(name string) (Account, error) {
	if a, ok := r.byKey[matcher.Fold(name)]; ok {
		return a, nil
	}
	return Account{}, errors.NewNotFoundError("account", matcher.Normalize(name))
}

// Synonym returns the canonical account for a registered raw variant.
func (r *Roster) Synonym(variant string) (Account, bool) {
	canonical, ok := r.synByKey[matcher.Fold(variant)]
	if !ok {
		return Account{}, false
	}
	a, err := r.Lookup(canonical)
	if err != nil {
		return Account{}, false
	}
	return a, true
}

// IsOmitted reports whether a raw name is explicitly excluded from ever
// resolving to an account.
func (r *Roster) IsOmitted(name string) bool {
	_, ok := r.omissions[matcher.Fold(name)]
	return ok
}

// Accounts returns all canonical accounts in stable order, grouped by
// vertical then sorted by name. The slice is a copy.
func (r *Roster) Accounts() []Account {
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// AccountsByVertical returns the accounts assigned to one vertical, in
// name order.
func (r *Roster) AccountsByVertical(v Vertical) []Account {
	var out []Account
	for _, a := range r.accounts {
		if a.Vertical == v {
			out = append(out, a)
		}
	}
	return out
}

// Synonyms returns all registered synonym entries. The slice is a copy.
func (r *Roster) Synonyms() []Synonym {
	out := make([]Synonym, len(r.synonyms))
	copy(out, r.synonyms)
	return out
}

// Omissions returns the omitted raw names in sorted order.
func (r *Roster) Omissions() []string {
	out := make([]string, len(r.omitted))
	copy(out, r.omitted)
	return out
}

// Len returns the number of canonical accounts.
func (r *Roster) Len() int {
	return len(r.accounts)
}
