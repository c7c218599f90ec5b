package domain

import (
	"cmp"
	"strings"

	"go.trai.ch/zerr"
)

// IdentitySeparator separates the name from the version in the textual form of an Identity.
const IdentitySeparator = "@"

// Identity uniquely identifies one package release.
// Two identities are equal iff both fields match exactly.
type Identity struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// NewIdentity creates an Identity from a name and a version.
func NewIdentity(name, version string) Identity {
	return Identity{Name: name, Version: version}
}

// ParseIdentity parses a "name@version" token.
// The token must contain exactly one separator with a non-empty name and version.
func ParseIdentity(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, IdentitySeparator) != 1 {
		return Identity{}, zerr.With(Mark(ErrInvalidIdentity), "token", token)
	}

	name, version, _ := strings.Cut(token, IdentitySeparator)
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)
	if name == "" || version == "" {
		return Identity{}, zerr.With(Mark(ErrInvalidIdentity), "token", token)
	}

	return Identity{Name: name, Version: version}, nil
}

// MustParseIdentity is like ParseIdentity but panics on error.
func MustParseIdentity(token string) Identity {
	id, err := ParseIdentity(token)
	if err != nil {
		panic(err)
	}
	return id
}

// String renders the identity as "name@version".
func (i Identity) String() string {
	return i.Name + IdentitySeparator + i.Version
}

// IsZero reports whether the identity is the zero value.
func (i Identity) IsZero() bool {
	return i.Name == "" && i.Version == ""
}

// Compare orders identities by name, then by version, both lexicographically.
func Compare(a, b Identity) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Version, b.Version)
}

// Less reports whether i orders before other.
func (i Identity) Less(other Identity) bool {
	return Compare(i, other) < 0
}

// Strings renders a list of identities in their textual form.
func Strings(ids []Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
