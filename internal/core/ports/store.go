package ports

import "go.trai.ch/paket/internal/core/domain"

// ReceiptStore defines the interface for storing and retrieving installation receipts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReceiptStore interface {
	// Get retrieves the receipt for a given identity.
	// Returns nil, nil if not found.
	Get(id domain.Identity) (*domain.Receipt, error)

	// Put stores the receipt.
	Put(receipt domain.Receipt) error

	// Delete removes the receipt for a given identity. Missing receipts are ignored.
	Delete(id domain.Identity) error

	// List returns every stored receipt ordered by identity.
	List() ([]domain.Receipt, error)
}
