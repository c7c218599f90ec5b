// Package app implements the application layer for paket.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/paket/internal/adapters/descriptor"
	"go.trai.ch/paket/internal/adapters/index"
	"go.trai.ch/paket/internal/adapters/installer"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/engine/collector"
	"go.trai.ch/paket/internal/engine/conflict"
	"go.trai.ch/paket/internal/engine/journal"
	"go.trai.ch/paket/internal/engine/orchestrator"
	"go.trai.ch/paket/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// PackageInstaller installs and removes single identities.
type PackageInstaller interface {
	ports.Installer
	ports.Remover
}

// SourceOpener opens the configured metadata source.
type SourceOpener func(cfg *domain.Config) (ports.MetadataSource, error)

// App represents the main application logic.
type App struct {
	cfg          *domain.Config
	logger       ports.Logger
	orchestrator *orchestrator.Orchestrator
	journal      *journal.Journal
	locks        ports.LockManager
	store        ports.ReceiptStore
	installer    PackageInstaller
	telemetry    ports.Telemetry
	metrics      ports.Metrics
	openSource   SourceOpener
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	log ports.Logger,
	orch *orchestrator.Orchestrator,
	j *journal.Journal,
	locks ports.LockManager,
	store ports.ReceiptStore,
	inst PackageInstaller,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
) *App {
	return &App{
		cfg:          cfg,
		logger:       log,
		orchestrator: orch,
		journal:      j,
		locks:        locks,
		store:        store,
		installer:    inst,
		telemetry:    telemetry,
		metrics:      metrics,
		openSource:   OpenSource,
	}
}

// WithSourceOpener replaces how the metadata source is opened.
// This is primarily used for testing.
func (a *App) WithSourceOpener(open SourceOpener) *App {
	a.openSource = open
	return a
}

// SetJSONLogs switches the logger output format when the logger supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	DryRun    bool
	Policy    string
	NoRecover bool
}

// Install collects the graph of token and installs it through the orchestrator.
func (a *App) Install(ctx context.Context, token string, opts InstallOptions) (orchestrator.Outcome, error) {
	root, g, err := a.collect(ctx, token)
	if err != nil {
		return orchestrator.Outcome{}, err
	}

	runOpts := orchestrator.Options{Recover: a.cfg.Recover && !opts.NoRecover}
	if opts.Policy != "" {
		if runOpts.Policy, err = conflict.NewPolicy(opts.Policy); err != nil {
			return orchestrator.Outcome{}, err
		}
	}

	var inst ports.Installer = a.installer
	if opts.DryRun || a.cfg.DryRun {
		inst = installer.NewDryRun(a.logger)
	}

	out, err := a.orchestrator.Run(ctx, g, root, inst, runOpts)
	a.flushMetrics()
	if err != nil {
		return orchestrator.Outcome{}, err
	}
	return out, nil
}

// RemoveOptions configuration for the Remove method.
type RemoveOptions struct {
	DryRun    bool
	NoRecover bool
}

// Remove uninstalls the package named by token. Its dependencies stay installed.
func (a *App) Remove(ctx context.Context, token string, opts RemoveOptions) (orchestrator.Outcome, error) {
	id, err := domain.ParseIdentity(token)
	if err != nil {
		return orchestrator.Outcome{}, err
	}

	existing, err := a.store.Get(id)
	if err != nil {
		return orchestrator.Outcome{}, err
	}
	if existing == nil {
		return orchestrator.Outcome{}, zerr.With(domain.Mark(domain.ErrNotInstalled), "identity", id.String())
	}

	var rm ports.Remover = a.installer
	if opts.DryRun || a.cfg.DryRun {
		rm = installer.NewDryRun(a.logger)
	}

	out, err := a.orchestrator.Remove(ctx, id, rm, orchestrator.Options{Recover: a.cfg.Recover && !opts.NoRecover})
	a.flushMetrics()
	if err != nil {
		return orchestrator.Outcome{}, err
	}
	return out, nil
}

func (a *App) flushMetrics() {
	if err := a.metrics.Flush(); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to export metrics: %v", err))
	}
}

// Resolve returns the installation order of token without installing anything.
func (a *App) Resolve(ctx context.Context, token string) ([]domain.Identity, error) {
	root, g, err := a.collect(ctx, token)
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(g, root)
}

// Conflicts returns the version conflicts reachable from token.
func (a *App) Conflicts(ctx context.Context, token string) ([]domain.ConflictPair, error) {
	root, g, err := a.collect(ctx, token)
	if err != nil {
		return nil, err
	}
	return conflict.Detect(g, root)
}

// Graph renders the collected graph of token in descriptor format.
func (a *App) Graph(ctx context.Context, token string) (string, error) {
	_, g, err := a.collect(ctx, token)
	if err != nil {
		return "", err
	}
	return descriptor.Format(g), nil
}

// Close releases the telemetry session. It is called once when the process exits.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// JournalReport is the current journal content.
type JournalReport struct {
	State   domain.TransactionState
	Entries []domain.Entry
}

// Journal reads the transaction journal.
func (a *App) Journal() (JournalReport, error) {
	entries, err := a.journal.Entries()
	if err != nil {
		return JournalReport{}, err
	}
	return JournalReport{State: domain.StateOf(entries), Entries: entries}, nil
}

// Rollback clears an unfinished transaction while holding the install lock.
func (a *App) Rollback(ctx context.Context) error {
	guard, err := a.locks.AcquireExclusive(ctx, domain.InstallLockName)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil {
			a.logger.Warn(fmt.Sprintf("failed to release %s lock: %v", domain.InstallLockName, rerr))
		}
	}()

	if err := a.journal.Rollback(); err != nil {
		return err
	}
	a.logger.Info("journal rolled back")
	return nil
}

// List returns the installed receipts.
func (a *App) List() ([]domain.Receipt, error) {
	return a.store.List()
}

// Search looks up packages in the repository index.
func (a *App) Search(query string) ([]index.Entry, error) {
	if a.cfg.IndexPath == "" {
		return nil, domain.ErrIndexRequired
	}
	x, err := index.Load(a.cfg.IndexPath)
	if err != nil {
		return nil, err
	}
	return x.Search(query), nil
}

func (a *App) collect(ctx context.Context, token string) (domain.Identity, *domain.Graph, error) {
	root, err := domain.ParseIdentity(token)
	if err != nil {
		return domain.Identity{}, nil, err
	}

	source, err := a.openSource(a.cfg)
	if err != nil {
		return domain.Identity{}, nil, err
	}

	g, err := collector.New(source, a.cfg.SourceConcurrency).Collect(ctx, root)
	if err != nil {
		return domain.Identity{}, nil, zerr.Wrap(err, "failed to collect dependency graph")
	}
	return root, g, nil
}

// OpenSource opens the index when configured, the descriptor otherwise.
func OpenSource(cfg *domain.Config) (ports.MetadataSource, error) {
	switch {
	case cfg.IndexPath != "":
		x, err := index.Load(cfg.IndexPath)
		if err != nil {
			return nil, err
		}
		return x, nil
	case cfg.DescriptorPath != "":
		s, err := descriptor.OpenSource(cfg.DescriptorPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, domain.ErrNoSourceConfigured
	}
}
