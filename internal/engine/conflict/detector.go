// Package conflict detects and settles version conflicts in a dependency graph.
package conflict

import (
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/engine/resolver"
)

// Detect reports every pair of distinct versions sharing a name within the transitive
// closure of root. The result is sorted and holds each logical pair once.
// It fails when the closure itself cannot be traversed.
func Detect(g *domain.Graph, root domain.Identity) ([]domain.ConflictPair, error) {
	closure, err := resolver.Resolve(g, root)
	if err != nil {
		return nil, err
	}
	return pairs(closure), nil
}

// pairs groups identities by name and forms every pairwise combination of distinct versions.
func pairs(closure []domain.Identity) []domain.ConflictPair {
	byName := make(map[string][]domain.Identity)
	var names []string
	for _, id := range closure {
		if _, ok := byName[id.Name]; !ok {
			names = append(names, id.Name)
		}
		byName[id.Name] = append(byName[id.Name], id)
	}

	seen := make(map[domain.ConflictPair]bool)
	var out []domain.ConflictPair
	for _, name := range names {
		versions := byName[name]
		for i := range versions {
			for j := i + 1; j < len(versions); j++ {
				if versions[i] == versions[j] {
					continue
				}
				p := domain.NewConflictPair(versions[i], versions[j])
				if seen[p] {
					continue
				}
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	domain.SortConflicts(out)
	return out
}
