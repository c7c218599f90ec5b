package domain

import "slices"

// ConflictPair is an unordered pair of identities sharing a name but differing in version.
// It is stored normalized so that Low orders before High.
type ConflictPair struct {
	Low  Identity
	High Identity
}

// NewConflictPair creates a normalized ConflictPair from two identities.
func NewConflictPair(a, b Identity) ConflictPair {
	if Compare(b, a) < 0 {
		a, b = b, a
	}
	return ConflictPair{Low: a, High: b}
}

// String renders the pair as two "name@version" tokens.
func (p ConflictPair) String() string {
	return p.Low.String() + " <-> " + p.High.String()
}

// SortConflicts sorts pairs by their low identity, then by their high identity.
func SortConflicts(pairs []ConflictPair) {
	slices.SortFunc(pairs, func(a, b ConflictPair) int {
		if c := Compare(a.Low, b.Low); c != 0 {
			return c
		}
		return Compare(a.High, b.High)
	})
}

// ConflictStrings renders a list of pairs in their textual form.
func ConflictStrings(pairs []ConflictPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}
