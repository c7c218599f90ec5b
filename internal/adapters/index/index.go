// Package index provides a YAML repository index as a package metadata source.
package index

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/semver"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.MetadataSource = (*Index)(nil)

// File is the on-disk structure of an index file.
type File struct {
	Packages []PackageDTO `yaml:"packages"`
}

// PackageDTO is one published package version.
type PackageDTO struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
	Description  string   `yaml:"description"`
}

// Entry is a validated index record.
type Entry struct {
	Identity     domain.Identity
	Dependencies []domain.Identity
	Description  string
}

// Index is an in-memory repository index.
type Index struct {
	entries []Entry
	byID    map[domain.Identity]int
}

// Load reads the index at path. A missing file is an empty index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Index{byID: map[domain.Identity]int{}}, nil
		}
		return nil, zerr.With(domain.MarkCause(domain.ErrSourceReadFailed, err), "path", path)
	}

	idx, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return idx, nil
}

// Parse builds an index from YAML.
func Parse(data []byte) (*Index, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.MarkCause(domain.ErrParsing, err)
	}

	idx := &Index{
		entries: make([]Entry, 0, len(file.Packages)),
		byID:    make(map[domain.Identity]int, len(file.Packages)),
	}

	for i, dto := range file.Packages {
		if dto.Name == "" || dto.Version == "" || strings.Contains(dto.Name+dto.Version, "@") {
			err := zerr.With(domain.Mark(domain.ErrParsing), "token", dto.Name+"@"+dto.Version)
			return nil, zerr.With(err, "package", i)
		}
		id := domain.NewIdentity(dto.Name, dto.Version)
		if _, dup := idx.byID[id]; dup {
			return nil, zerr.With(domain.Mark(domain.ErrParsing), "identity", id.String())
		}

		deps := make([]domain.Identity, 0, len(dto.Dependencies))
		for _, token := range dto.Dependencies {
			dep, err := domain.ParseIdentity(token)
			if err != nil {
				err = zerr.With(domain.Mark(domain.ErrParsing), "token", token)
				return nil, zerr.With(err, "identity", id.String())
			}
			deps = append(deps, dep)
		}

		idx.byID[id] = len(idx.entries)
		idx.entries = append(idx.entries, Entry{
			Identity:     id,
			Dependencies: deps,
			Description:  dto.Description,
		})
	}

	return idx, nil
}

// DependenciesOf returns the dependencies the index lists for id.
func (x *Index) DependenciesOf(ctx context.Context, id domain.Identity) ([]domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := x.byID[id]
	if !ok {
		return nil, zerr.With(domain.Mark(domain.ErrPackageNotFound), "identity", id.String())
	}
	return slices.Clone(x.entries[i].Dependencies), nil
}

// Versions returns the published versions of name, lowest first.
func (x *Index) Versions(name string) []string {
	var versions []string
	for _, e := range x.entries {
		if e.Identity.Name == name {
			versions = append(versions, e.Identity.Version)
		}
	}
	slices.SortFunc(versions, semver.CompareStrings)
	return versions
}

// Search returns entries whose name or description contains query, case-insensitively.
// Results are ordered by identity.
func (x *Index) Search(query string) []Entry {
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range x.entries {
		if strings.Contains(strings.ToLower(e.Identity.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if a.Identity.Name != b.Identity.Name {
			return strings.Compare(a.Identity.Name, b.Identity.Name)
		}
		return semver.CompareStrings(a.Identity.Version, b.Identity.Version)
	})
	return out
}

// Len returns the number of indexed package versions.
func (x *Index) Len() int {
	return len(x.entries)
}
