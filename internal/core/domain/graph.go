// Package domain contains the core domain models of the package manager: identities,
// the dependency graph, conflict pairs, transaction journal entries and errors.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Graph maps a package identity to the ordered list of identities it directly requires.
// Keys keep their insertion order so that listing a graph is deterministic.
type Graph struct {
	edges map[Identity][]Identity
	keys  []Identity
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[Identity][]Identity),
	}
}

// Add adds a package and its dependencies to the graph.
// It returns an error if the package is already present.
func (g *Graph) Add(id Identity, deps ...Identity) error {
	if _, exists := g.edges[id]; exists {
		return zerr.With(Mark(ErrDuplicatePackage), "identity", id.String())
	}
	g.Set(id, deps...)
	return nil
}

// Set adds a package or replaces the dependency list of an existing one.
func (g *Graph) Set(id Identity, deps ...Identity) {
	if _, exists := g.edges[id]; !exists {
		g.keys = append(g.keys, id)
	}
	g.edges[id] = slices.Clone(deps)
}

// DependenciesOf returns the declared dependencies of id and whether id is a key of the graph.
// The returned slice must not be modified.
func (g *Graph) DependenciesOf(id Identity) ([]Identity, bool) {
	deps, ok := g.edges[id]
	return deps, ok
}

// Has reports whether id is a key of the graph.
func (g *Graph) Has(id Identity) bool {
	_, ok := g.edges[id]
	return ok
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int {
	return len(g.keys)
}

// Packages returns the graph keys in insertion order.
func (g *Graph) Packages() []Identity {
	return slices.Clone(g.keys)
}

// All returns an iterator over every package and its dependencies in insertion order.
func (g *Graph) All() iter.Seq2[Identity, []Identity] {
	return func(yield func(Identity, []Identity) bool) {
		for _, id := range g.keys {
			if !yield(id, g.edges[id]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for id, deps := range g.All() {
		c.Set(id, deps...)
	}
	return c
}
