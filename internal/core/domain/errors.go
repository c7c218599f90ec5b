package domain

import "go.trai.ch/zerr"

var (
	// ErrParsing is returned when a dependency descriptor line or token is malformed.
	ErrParsing = zerr.New("failed to parse dependency descriptor")

	// ErrInvalidIdentity is returned when a token is not of the form name@version.
	ErrInvalidIdentity = zerr.New("invalid package identity, expected name@version")

	// ErrDuplicatePackage is returned when a package is declared twice in the same graph.
	ErrDuplicatePackage = zerr.New("package declared more than once")

	// ErrPackageNotFound is returned when a referenced package is absent from the graph or source.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrCycleDetected is returned when a dependency cycle is reachable from the root.
	ErrCycleDetected = zerr.New("dependency cycle detected")

	// ErrConflictDetected is returned when distinct versions of the same package are required.
	ErrConflictDetected = zerr.New("version conflict detected")

	// ErrUnknownPolicy is returned when the configured conflict policy does not exist.
	ErrUnknownPolicy = zerr.New("unknown conflict policy, expected 'fail' or 'prefer-highest'")

	// ErrTransactionAlreadyCompleted is returned when rolling back a committed transaction.
	ErrTransactionAlreadyCompleted = zerr.New("transaction already completed")

	// ErrIncompleteTransaction is returned when a previous run left the journal in progress.
	ErrIncompleteTransaction = zerr.New("a previous transaction did not complete, run rollback first")

	// ErrJournalIO is returned when the journal's durable resource fails.
	ErrJournalIO = zerr.New("journal i/o failed")

	// ErrInstallStepFailed is returned when the installer fails for one identity.
	ErrInstallStepFailed = zerr.New("install step failed")

	// ErrRemoveStepFailed is returned when removing an installed identity fails.
	ErrRemoveStepFailed = zerr.New("remove step failed")

	// ErrNotInstalled is returned when removing an identity that has no receipt.
	ErrNotInstalled = zerr.New("package is not installed")

	// ErrRollbackFailed is returned when the rollback after a failed install step fails too.
	ErrRollbackFailed = zerr.New("rollback failed, journal state cannot be trusted")

	// ErrLockBusy is returned when the exclusive lock is held by another process.
	ErrLockBusy = zerr.New("another installation is in progress")

	// ErrLockFailed is returned when the lock file cannot be acquired or released.
	ErrLockFailed = zerr.New("failed to acquire lock")

	// ErrStoreCreateFailed is returned when the receipt store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create receipt store directory")

	// ErrStoreReadFailed is returned when a receipt cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read receipt")

	// ErrStoreUnmarshalFailed is returned when a receipt cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal receipt")

	// ErrStoreMarshalFailed is returned when a receipt cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal receipt")

	// ErrStoreWriteFailed is returned when a receipt cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write receipt")

	// ErrStoreDeleteFailed is returned when a receipt cannot be removed.
	ErrStoreDeleteFailed = zerr.New("failed to delete receipt")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrSourceReadFailed is returned when a metadata source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read package source")

	// ErrNoSourceConfigured is returned when neither a descriptor nor an index source is configured.
	ErrNoSourceConfigured = zerr.New("no package source configured, set source.descriptor or source.index")

	// ErrConflictsFound is returned by the conflicts report when any conflict exists.
	ErrConflictsFound = zerr.New("conflicts found")

	// ErrIndexRequired is returned when an operation needs a repository index source.
	ErrIndexRequired = zerr.New("a repository index is required, set source.index")

	// ErrMetricsExportFailed is returned when the metrics textfile cannot be written.
	ErrMetricsExportFailed = zerr.New("failed to write metrics textfile")

	// ErrInvalidArgument is returned when a command receives an argument it cannot use.
	ErrInvalidArgument = zerr.New("invalid argument")
)

// Mark returns kind as a zerr layer that zerr.With can decorate while errors.Is still matches kind.
func Mark(kind error) error {
	return zerr.Wrap(kind, "")
}

// MarkCause reports cause as an instance of kind. errors.Is matches both.
func MarkCause(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: kind, cause: cause}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}
