package ports

import (
	"context"

	"go.trai.ch/paket/internal/core/domain"
)

// MetadataSource provides the declared dependencies of package releases.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataSource interface {
	// DependenciesOf returns the ordered list of identities that id directly requires.
	// It returns domain.ErrPackageNotFound when the source does not know id.
	DependenciesOf(ctx context.Context, id domain.Identity) ([]domain.Identity, error)
}
