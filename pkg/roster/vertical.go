package roster

// Vertical represents one of the industry categories a canonical account
// belongs to.
type Vertical string

// String returns the string representation of a Vertical.
func (v Vertical) String() string {
	return string(v)
}

// The eight verticals covered by the account roster.
const (
	VerticalAviation      Vertical = "Aviation"
	VerticalAutomotive    Vertical = "Automotive"
	VerticalManufacturing Vertical = "Manufacturing"
	VerticalTechnology    Vertical = "Technology"
	VerticalLifeScience   Vertical = "Life Science"
	VerticalFinance       Vertical = "Finance"
	VerticalDistribution  Vertical = "Distribution"
	VerticalOther         Vertical = "R&D / Education / Other"
)

// Verticals returns all verticals in roster display order.
func Verticals() []Vertical {
	return []Vertical{
		VerticalAviation,
		VerticalAutomotive,
		VerticalManufacturing,
		VerticalTechnology,
		VerticalLifeScience,
		VerticalFinance,
		VerticalDistribution,
		VerticalOther,
	}
}

// verticalRank maps each vertical to its position in display order.
var verticalRank = func() map[Vertical]int {
	ranks := make(map[Vertical]int)
	for i, v := range Verticals() {
		ranks[v] = i
	}
	return ranks
}()

// Valid reports whether v is one of the known verticals.
func (v Vertical) Valid() bool {
	_, ok := verticalRank[v]
	return ok
}

// rank returns the display-order position of v. Unknown verticals sort last.
func (v Vertical) rank() int {
	if r, ok := verticalRank[v]; ok {
		return r
	}
	return len(verticalRank)
}
