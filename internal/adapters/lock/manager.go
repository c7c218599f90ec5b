// Package lock implements exclusive named locks on top of advisory file locks.
package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

// retryDelay is the polling interval while waiting for a busy lock.
const retryDelay = 50 * time.Millisecond

// Manager implements ports.LockManager with one lock file per name.
type Manager struct {
	dir    string
	wait   time.Duration
	logger ports.Logger
}

// NewManager creates a Manager storing lock files in dir.
// A zero wait fails immediately when the lock is busy.
func NewManager(dir string, wait time.Duration, logger ports.Logger) *Manager {
	return &Manager{
		dir:    dir,
		wait:   wait,
		logger: logger,
	}
}

// AcquireExclusive acquires the named lock.
func (m *Manager) AcquireExclusive(ctx context.Context, name string) (ports.LockGuard, error) {
	if err := os.MkdirAll(m.dir, domain.DirPerm); err != nil {
		return nil, zerr.With(domain.MarkCause(domain.ErrLockFailed, err), "lock", name)
	}

	path := filepath.Join(m.dir, name+".lock")
	fl := flock.New(path)

	locked, err := m.tryLock(ctx, fl)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && m.wait > 0 && ctx.Err() == nil {
			return nil, busy(name, path)
		}
		return nil, zerr.With(zerr.With(domain.MarkCause(domain.ErrLockFailed, err), "lock", name), "path", path)
	}
	if !locked {
		return nil, busy(name, path)
	}

	return &Guard{name: name, fl: fl, logger: m.logger}, nil
}

func (m *Manager) tryLock(ctx context.Context, fl *flock.Flock) (bool, error) {
	if m.wait <= 0 {
		return fl.TryLock()
	}
	waitCtx, cancel := context.WithTimeout(ctx, m.wait)
	defer cancel()
	return fl.TryLockContext(waitCtx, retryDelay)
}

func busy(name, path string) error {
	return zerr.With(zerr.With(domain.Mark(domain.ErrLockBusy), "lock", name), "path", path)
}

// Guard is a held lock.
type Guard struct {
	name   string
	fl     *flock.Flock
	logger ports.Logger

	mu   sync.Mutex
	done bool
}

// Release unlocks the lock file. Releasing an already released guard only logs a warning.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		g.logger.Warn("lock " + g.name + " released twice")
		return nil
	}
	g.done = true

	if err := g.fl.Unlock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to release lock"), "lock", g.name)
	}
	return nil
}
