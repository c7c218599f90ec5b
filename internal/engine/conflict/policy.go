package conflict

import (
	"slices"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/semver"
	"go.trai.ch/zerr"
)

// NewPolicy returns the conflict policy registered under name.
// An empty name selects the fail policy.
func NewPolicy(name string) (ports.ConflictPolicy, error) {
	switch name {
	case "", domain.PolicyFail:
		return FailOnConflict{}, nil
	case domain.PolicyPreferHighest:
		return PreferHighest{}, nil
	default:
		return nil, zerr.With(domain.Mark(domain.ErrUnknownPolicy), "policy", name)
	}
}

// FailOnConflict rejects any conflict and passes conflict-free graphs through unchanged.
type FailOnConflict struct{}

// Resolve implements ports.ConflictPolicy.
func (FailOnConflict) Resolve(g *domain.Graph, conflicts []domain.ConflictPair) (*domain.Graph, error) {
	if len(conflicts) == 0 {
		return g, nil
	}
	err := zerr.With(domain.Mark(domain.ErrConflictDetected), "conflicts", domain.ConflictStrings(conflicts))
	return nil, zerr.With(err, "count", len(conflicts))
}

// PreferHighest settles each conflicting name on its highest version.
// Versions compare semantically when they parse and lexicographically otherwise.
// Every edge naming a losing version is redirected to the winner in a copy of the graph.
// The root has no incoming edge, so a root that loses keeps its version and the copy still
// conflicts; callers detect that by running Detect on the result.
type PreferHighest struct{}

// Resolve implements ports.ConflictPolicy.
func (PreferHighest) Resolve(g *domain.Graph, conflicts []domain.ConflictPair) (*domain.Graph, error) {
	if len(conflicts) == 0 {
		return g, nil
	}

	versions := make(map[string][]string)
	for _, p := range conflicts {
		versions[p.Low.Name] = appendUnique(versions[p.Low.Name], p.Low.Version, p.High.Version)
	}

	winners := make(map[string]string, len(versions))
	for name, vs := range versions {
		best, _ := semver.Highest(vs)
		winners[name] = best
	}

	out := domain.NewGraph()
	for id, deps := range g.All() {
		rewritten := make([]domain.Identity, 0, len(deps))
		seen := make(map[domain.Identity]bool, len(deps))
		for _, dep := range deps {
			if v, ok := winners[dep.Name]; ok {
				dep.Version = v
			}
			// Two losers of the same name collapse into one edge.
			if seen[dep] {
				continue
			}
			seen[dep] = true
			rewritten = append(rewritten, dep)
		}
		out.Set(id, rewritten...)
	}

	return out, nil
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}
