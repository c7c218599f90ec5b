package ports

import (
	"context"

	"go.trai.ch/paket/internal/core/domain"
)

// Installer performs the side effects of installing one package release.
// Download, verification and extraction live behind this interface.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install installs the given identity. It is invoked once per resolved identity.
	Install(ctx context.Context, id domain.Identity) error
}

// Remover undoes the side effects of installing one package release.
type Remover interface {
	// Remove uninstalls the given identity.
	Remove(ctx context.Context, id domain.Identity) error
}
