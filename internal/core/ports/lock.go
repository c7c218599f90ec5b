package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks

// LockManager hands out exclusive named locks shared across processes.
type LockManager interface {
	// AcquireExclusive acquires the named lock.
	// It returns domain.ErrLockBusy when another holder owns it.
	AcquireExclusive(ctx context.Context, name string) (LockGuard, error)
}

// LockGuard represents a held lock.
type LockGuard interface {
	// Release gives the lock back. Releasing twice is a no-op.
	Release() error
}
