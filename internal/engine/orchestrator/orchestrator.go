// Package orchestrator runs installation plans and removals under an exclusive lock with journaled steps.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/engine/conflict"
	"go.trai.ch/paket/internal/engine/journal"
	"go.trai.ch/paket/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Run outcome labels reported to ports.Metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeResolveError = "resolve_error"
	OutcomeConflict     = "conflict"
	OutcomeInstallError = "install_error"
	OutcomeRemoveError  = "remove_error"
	OutcomeJournalError = "journal_error"
	OutcomeLockError    = "lock_error"
)

// Journal step prefixes.
const (
	StepPrefix       = "installing "
	RemoveStepPrefix = "removing "
)

// Options tune a single run.
type Options struct {
	// Policy overrides the orchestrator's conflict policy when non-nil.
	Policy ports.ConflictPolicy
	// Recover clears a transaction left in progress by an earlier run instead of refusing to start.
	Recover bool
}

// Outcome describes a successful run.
type Outcome struct {
	RunID string
	// Order is the installation order that was applied, root last.
	Order []domain.Identity
	// Conflicts lists the conflicts the policy settled before installing.
	Conflicts []domain.ConflictPair
}

// Orchestrator executes installation runs.
type Orchestrator struct {
	journal   *journal.Journal
	locks     ports.LockManager
	policy    ports.ConflictPolicy
	logger    ports.Logger
	telemetry ports.Telemetry
	metrics   ports.Metrics
}

// New creates an Orchestrator.
func New(
	j *journal.Journal,
	locks ports.LockManager,
	policy ports.ConflictPolicy,
	logger ports.Logger,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
) *Orchestrator {
	return &Orchestrator{
		journal:   j,
		locks:     locks,
		policy:    policy,
		logger:    logger,
		telemetry: telemetry,
		metrics:   metrics,
	}
}

// Run installs root and its dependencies from g using installer.
//
// Either every identity of the order is installed and the journal is committed, or the
// run stops at the first failure. The install lock is released on every path.
func (o *Orchestrator) Run(
	ctx context.Context,
	g *domain.Graph,
	root domain.Identity,
	installer ports.Installer,
	opts Options,
) (out Outcome, err error) {
	start := time.Now()
	out.RunID = uuid.NewString()
	label := OutcomeSuccess
	defer func() {
		o.metrics.ObserveRun(label, time.Since(start))
	}()

	ctx = ports.ContextWithRunID(ctx, out.RunID)

	guard, err := o.locks.AcquireExclusive(ctx, domain.InstallLockName)
	if err != nil {
		label = OutcomeLockError
		return Outcome{}, err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil {
			o.logger.Warn(fmt.Sprintf("failed to release %s lock: %v", domain.InstallLockName, rerr))
		}
	}()

	if err := o.prepare(opts.Recover); err != nil {
		label = OutcomeJournalError
		return Outcome{}, err
	}

	order, err := resolver.Resolve(g, root)
	if err != nil {
		label = OutcomeResolveError
		return Outcome{}, err
	}

	conflicts, err := conflict.Detect(g, root)
	if err != nil {
		label = OutcomeResolveError
		return Outcome{}, err
	}
	o.metrics.ObserveConflicts(len(conflicts))

	policy := o.policy
	if opts.Policy != nil {
		policy = opts.Policy
	}
	settled, err := policy.Resolve(g, conflicts)
	if err != nil {
		label = OutcomeConflict
		return Outcome{}, err
	}
	if settled != g {
		if order, err = resolver.Resolve(settled, root); err != nil {
			label = OutcomeResolveError
			return Outcome{}, err
		}
		// A policy cannot redirect the root itself, so a root that loses its own conflict
		// would still pull in the winning version.
		remaining, err := conflict.Detect(settled, root)
		if err != nil {
			label = OutcomeResolveError
			return Outcome{}, err
		}
		if len(remaining) > 0 {
			label = OutcomeConflict
			err := zerr.With(domain.Mark(domain.ErrConflictDetected), "conflicts", domain.ConflictStrings(remaining))
			return Outcome{}, zerr.With(err, "root", root.String())
		}
	}

	if label, err = o.install(ctx, order, installer); err != nil {
		return Outcome{}, err
	}

	if err := o.journal.Commit(); err != nil {
		label = OutcomeJournalError
		return Outcome{}, err
	}

	out.Order = order
	out.Conflicts = conflicts
	return out, nil
}

// Remove uninstalls id with remover as one journaled transaction under the install lock.
// Dependencies of id are left in place.
func (o *Orchestrator) Remove(
	ctx context.Context,
	id domain.Identity,
	remover ports.Remover,
	opts Options,
) (out Outcome, err error) {
	start := time.Now()
	out.RunID = uuid.NewString()
	label := OutcomeSuccess
	defer func() {
		o.metrics.ObserveRun(label, time.Since(start))
	}()

	ctx = ports.ContextWithRunID(ctx, out.RunID)

	guard, err := o.locks.AcquireExclusive(ctx, domain.InstallLockName)
	if err != nil {
		label = OutcomeLockError
		return Outcome{}, err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil {
			o.logger.Warn(fmt.Sprintf("failed to release %s lock: %v", domain.InstallLockName, rerr))
		}
	}()

	if err := o.prepare(opts.Recover); err != nil {
		label = OutcomeJournalError
		return Outcome{}, err
	}

	if err := ctx.Err(); err != nil {
		label = OutcomeRemoveError
		return Outcome{}, o.abort(id, err, domain.ErrRemoveStepFailed)
	}

	if err := o.journal.Step(RemoveStepPrefix + id.String()); err != nil {
		label = OutcomeJournalError
		return Outcome{}, err
	}

	stepCtx, vertex := o.telemetry.Record(ctx, RemoveStepPrefix+id.String())
	err = remover.Remove(stepCtx, id)
	vertex.Complete(err)
	if err != nil {
		label = OutcomeRemoveError
		return Outcome{}, o.abort(id, err, domain.ErrRemoveStepFailed)
	}

	if err := o.journal.Commit(); err != nil {
		label = OutcomeJournalError
		return Outcome{}, err
	}

	out.Order = []domain.Identity{id}
	return out, nil
}

// prepare settles any transaction left by an earlier run and begins a new one.
func (o *Orchestrator) prepare(recoverStale bool) error {
	entries, err := o.journal.Entries()
	if err != nil {
		return err
	}

	if domain.StateOf(entries) == domain.StateInProgress {
		steps := countSteps(entries)
		switch {
		case steps == 0:
			// Nothing was applied; the run stopped during resolution.
		case !recoverStale:
			return zerr.With(domain.Mark(domain.ErrIncompleteTransaction), "steps", steps)
		default:
			if err := o.journal.Rollback(); err != nil {
				return err
			}
			o.logger.Warn(fmt.Sprintf("rolled back incomplete transaction with %d step(s) from a previous run", steps))
		}
	}

	if err := o.journal.Reset(); err != nil {
		return err
	}
	return o.journal.Begin()
}

// install performs the journaled install steps and returns the outcome label.
func (o *Orchestrator) install(
	ctx context.Context,
	order []domain.Identity,
	installer ports.Installer,
) (string, error) {
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return OutcomeInstallError, o.abort(id, err, domain.ErrInstallStepFailed)
		}

		if err := o.journal.Step(StepPrefix + id.String()); err != nil {
			return OutcomeJournalError, err
		}

		stepCtx, vertex := o.telemetry.Record(ctx, StepPrefix+id.String())
		err := installer.Install(stepCtx, id)
		vertex.Complete(err)
		if err != nil {
			return OutcomeInstallError, o.abort(id, err, domain.ErrInstallStepFailed)
		}
		o.metrics.AddInstalled(1)
	}
	return OutcomeSuccess, nil
}

// abort rolls the journal back after a failed step and builds the compound error.
// kind is domain.ErrInstallStepFailed or domain.ErrRemoveStepFailed.
func (o *Orchestrator) abort(id domain.Identity, cause, kind error) error {
	stepErr := zerr.With(zerr.Wrap(cause, kind.Error()), "identity", id.String())

	if rerr := o.journal.Rollback(); rerr != nil {
		return errors.Join(kind, stepErr, errors.Join(domain.ErrRollbackFailed, rerr))
	}
	action := "install"
	if errors.Is(kind, domain.ErrRemoveStepFailed) {
		action = "removal"
	}
	o.logger.Warn(fmt.Sprintf("%s of %s failed, journal rolled back", action, id))
	return errors.Join(kind, stepErr)
}

func countSteps(entries []domain.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Kind == domain.EntryStep {
			n++
		}
	}
	return n
}
