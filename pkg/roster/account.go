package roster

// Account represents one canonical account in the roster. Accounts are
// immutable after roster construction; the Name keeps its original display
// casing even though lookups are case-insensitive.
type Account struct {
	Name     string   `json:"name" yaml:"name"`         // Unique canonical display name
	Vertical Vertical `json:"vertical" yaml:"vertical"` // Industry category assignment
}

// Synonym maps a known raw spelling from a CSV export onto a canonical
// account name. Many variants may map to one canonical account.
type Synonym struct {
	Variant   string `json:"variant" yaml:"variant"`     // Raw spelling as it appears in exports
	Canonical string `json:"canonical" yaml:"canonical"` // Canonical account name it resolves to
}
