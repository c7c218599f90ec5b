// Package collector assembles a dependency graph by walking a metadata source.
package collector

import (
	"context"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Collector walks a metadata source breadth-first from a root identity.
type Collector struct {
	source      ports.MetadataSource
	concurrency int
}

// New creates a Collector that issues at most concurrency lookups at once.
// A non-positive concurrency uses domain.DefaultSourceConcurrency.
func New(source ports.MetadataSource, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = domain.DefaultSourceConcurrency
	}
	return &Collector{source: source, concurrency: concurrency}
}

// Collect returns the graph of everything reachable from root.
//
// Lookups within one frontier run concurrently, but the graph is assembled in
// frontier order so the result does not depend on lookup timing.
func (c *Collector) Collect(ctx context.Context, root domain.Identity) (*domain.Graph, error) {
	g := domain.NewGraph()
	seen := map[domain.Identity]bool{root: true}
	requiredBy := map[domain.Identity]domain.Identity{}
	frontier := []domain.Identity{root}

	for len(frontier) > 0 {
		results, err := c.fetch(ctx, frontier, requiredBy)
		if err != nil {
			return nil, err
		}

		var next []domain.Identity
		for i, id := range frontier {
			g.Set(id, results[i]...)
			for _, dep := range results[i] {
				if seen[dep] {
					continue
				}
				seen[dep] = true
				requiredBy[dep] = id
				next = append(next, dep)
			}
		}
		frontier = next
	}

	return g, nil
}

func (c *Collector) fetch(
	ctx context.Context,
	frontier []domain.Identity,
	requiredBy map[domain.Identity]domain.Identity,
) ([][]domain.Identity, error) {
	results := make([][]domain.Identity, len(frontier))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)

	for i, id := range frontier {
		parent, hasParent := requiredBy[id]
		eg.Go(func() error {
			deps, err := c.source.DependenciesOf(egCtx, id)
			if err != nil {
				err = zerr.With(zerr.Wrap(err, "failed to fetch dependencies"), "identity", id.String())
				if hasParent {
					err = zerr.With(err, "required_by", parent.String())
				}
				return err
			}
			results[i] = deps
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
