// Package installer provides the Installer implementations used by install runs.
package installer

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Installer = (*Recorder)(nil)
	_ ports.Remover   = (*Recorder)(nil)
	_ ports.Installer = (*DryRun)(nil)
	_ ports.Remover   = (*DryRun)(nil)
)

// Recorder installs an identity by writing its receipt and removes it by deleting the receipt.
// Identities that already have a receipt are skipped on install, so repeating a run is harmless.
type Recorder struct {
	store        ports.ReceiptStore
	logger       ports.Logger
	before       ports.Installer
	beforeRemove ports.Remover
	source       string
	now          func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithBefore runs inst for every identity that still needs installing, before its receipt is written.
func WithBefore(inst ports.Installer) Option {
	return func(r *Recorder) { r.before = inst }
}

// WithBeforeRemove runs rm for every installed identity, before its receipt is deleted.
func WithBeforeRemove(rm ports.Remover) Option {
	return func(r *Recorder) { r.beforeRemove = rm }
}

// WithSource records where install metadata came from.
func WithSource(source string) Option {
	return func(r *Recorder) { r.source = source }
}

// WithClock overrides the receipt timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store ports.ReceiptStore, logger ports.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Install implements ports.Installer.
func (r *Recorder) Install(ctx context.Context, id domain.Identity) error {
	existing, err := r.store.Get(id)
	if err != nil {
		return err
	}
	if existing != nil {
		r.logger.Info(fmt.Sprintf("%s already installed", id))
		if v, ok := ports.VertexFromContext(ctx); ok {
			v.Cached()
		}
		return nil
	}

	if r.before != nil {
		if err := r.before.Install(ctx, id); err != nil {
			return err
		}
	}

	receipt := domain.Receipt{
		Identity:    id,
		RunID:       ports.RunIDFromContext(ctx),
		Source:      r.source,
		InstalledAt: r.now().UTC(),
	}
	if err := r.store.Put(receipt); err != nil {
		return zerr.Wrap(err, "failed to record receipt")
	}
	r.logger.Info(fmt.Sprintf("installed %s", id))
	return nil
}

// Remove implements ports.Remover. Removing an identity without a receipt fails with
// domain.ErrNotInstalled.
func (r *Recorder) Remove(ctx context.Context, id domain.Identity) error {
	existing, err := r.store.Get(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return zerr.With(domain.Mark(domain.ErrNotInstalled), "identity", id.String())
	}

	if r.beforeRemove != nil {
		if err := r.beforeRemove.Remove(ctx, id); err != nil {
			return err
		}
	}

	if err := r.store.Delete(id); err != nil {
		return zerr.Wrap(err, "failed to delete receipt")
	}
	r.logger.Info(fmt.Sprintf("removed %s", id))
	return nil
}

// DryRun reports what would be installed or removed without side effects.
type DryRun struct {
	logger ports.Logger
}

// NewDryRun creates a DryRun installer.
func NewDryRun(logger ports.Logger) *DryRun {
	return &DryRun{logger: logger}
}

// Install implements ports.Installer.
func (d *DryRun) Install(_ context.Context, id domain.Identity) error {
	d.logger.Info(fmt.Sprintf("would install %s", id))
	return nil
}

// Remove implements ports.Remover.
func (d *DryRun) Remove(_ context.Context, id domain.Identity) error {
	d.logger.Info(fmt.Sprintf("would remove %s", id))
	return nil
}
