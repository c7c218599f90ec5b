// Package resolver computes dependency-first installation orders.
package resolver

import (
	"strings"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/zerr"
)

// frame is one entry of the explicit traversal stack.
type frame struct {
	id   domain.Identity
	deps []domain.Identity
	next int
}

// Resolve returns the installation order for root: every dependency appears strictly
// before its dependents and root appears last. Siblings follow declaration order.
//
// A root that is not a key of g is a dependency-free package and resolves to itself.
// Any other identity reached during the traversal must be a key of g.
func Resolve(g *domain.Graph, root domain.Identity) ([]domain.Identity, error) {
	order := make([]domain.Identity, 0, g.Len()+1)
	resolving := make(map[domain.Identity]bool)
	resolved := make(map[domain.Identity]bool)

	rootDeps, _ := g.DependenciesOf(root)
	stack := []*frame{{id: root, deps: rootDeps}}
	resolving[root] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next == len(top.deps) {
			stack = stack[:len(stack)-1]
			delete(resolving, top.id)
			resolved[top.id] = true
			order = append(order, top.id)
			continue
		}

		dep := top.deps[top.next]
		top.next++

		if resolved[dep] {
			continue
		}
		if resolving[dep] {
			return nil, cycleError(stack, dep)
		}

		deps, ok := g.DependenciesOf(dep)
		if !ok {
			err := zerr.With(domain.Mark(domain.ErrPackageNotFound), "identity", dep.String())
			return nil, zerr.With(err, "required_by", top.id.String())
		}

		resolving[dep] = true
		stack = append(stack, &frame{id: dep, deps: deps})
	}

	return order, nil
}

// cycleError reconstructs the cycle path from the open stack.
func cycleError(stack []*frame, closing domain.Identity) error {
	start := 0
	for i, f := range stack {
		if f.id == closing {
			start = i
			break
		}
	}

	parts := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		parts = append(parts, f.id.String())
	}
	parts = append(parts, closing.String())

	err := zerr.With(domain.Mark(domain.ErrCycleDetected), "identity", closing.String())
	return zerr.With(err, "cycle", strings.Join(parts, " -> "))
}
