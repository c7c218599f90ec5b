// Package semver orders package versions.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
package semver

import (
	"cmp"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is a semantic version.
type Version struct {
	v *mm.Version
}

// ParseVersion parses a semantic version. A leading "v" and short forms such as "1.2" are accepted.
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, zerr.With(zerr.Wrap(err, "invalid semantic version"), "version", raw)
	}
	return Version{v: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original version text.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// CompareStrings compares two version strings semantically when both parse,
// and lexicographically otherwise.
func CompareStrings(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		return cmp.Compare(a, b)
	}
	if c := Compare(va, vb); c != 0 {
		return c
	}
	// "1.0" and "1.0.0" are equal versions but distinct identities.
	return cmp.Compare(a, b)
}

// Highest returns the highest of the given version strings according to CompareStrings.
// It returns false for an empty list.
func Highest(versions []string) (string, bool) {
	if len(versions) == 0 {
		return "", false
	}
	best := versions[0]
	for _, v := range versions[1:] {
		if CompareStrings(v, best) > 0 {
			best = v
		}
	}
	return best, true
}
