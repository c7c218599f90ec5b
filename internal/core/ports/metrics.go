package ports

import "time"

// Metrics collects counters about installation runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveRun records the outcome and duration of one orchestrator run.
	ObserveRun(outcome string, d time.Duration)

	// AddInstalled counts installed packages.
	AddInstalled(n int)

	// ObserveConflicts records the number of conflicts found by the last run.
	ObserveConflicts(n int)

	// Flush exports the collected metrics, if an export target is configured.
	Flush() error
}
