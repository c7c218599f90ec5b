package ports

import "go.trai.ch/paket/internal/core/domain"

// ConflictPolicy decides what to do with the version conflicts found in a graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=conflict_policy.go -destination=mocks/mock_conflict_policy.go -package=mocks
type ConflictPolicy interface {
	// Resolve returns the graph to install from, or an error when the conflicts cannot be settled.
	Resolve(g *domain.Graph, conflicts []domain.ConflictPair) (*domain.Graph, error)
}
