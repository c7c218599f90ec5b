package descriptor

import (
	"context"
	"slices"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataSource = (*Source)(nil)

// Source serves dependency lists from a parsed descriptor.
type Source struct {
	graph *domain.Graph
}

// NewSource returns a metadata source backed by g.
func NewSource(g *domain.Graph) *Source {
	return &Source{graph: g}
}

// OpenSource parses the descriptor at path into a Source.
func OpenSource(path string) (*Source, error) {
	g, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewSource(g), nil
}

// DependenciesOf returns a copy of the declared dependencies of id.
func (s *Source) DependenciesOf(ctx context.Context, id domain.Identity) ([]domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deps, ok := s.graph.DependenciesOf(id)
	if !ok {
		return nil, zerr.With(domain.Mark(domain.ErrPackageNotFound), "identity", id.String())
	}
	return slices.Clone(deps), nil
}

// Graph returns the parsed graph.
func (s *Source) Graph() *domain.Graph {
	return s.graph
}
