package domain

import "time"

// Conflict policy names accepted in the configuration.
const (
	PolicyFail          = "fail"
	PolicyPreferHighest = "prefer-highest"
)

// DefaultSourceConcurrency is the number of concurrent metadata lookups while collecting a graph.
const DefaultSourceConcurrency = 4

// Config is the resolved application configuration.
type Config struct {
	// StateDir holds the journal, the lock files and the receipts.
	StateDir string

	// DescriptorPath points to a dependency descriptor text file.
	DescriptorPath string

	// IndexPath points to a YAML repository index.
	IndexPath string

	// SourceConcurrency bounds concurrent metadata lookups.
	SourceConcurrency int

	// ConflictPolicy selects how version conflicts are handled.
	ConflictPolicy string

	// LockWait is how long to wait for a busy lock. Zero fails immediately.
	LockWait time.Duration

	// Recover rolls back a journal left in progress by an earlier run.
	Recover bool

	// InstallHook is an optional command run for every installed identity.
	InstallHook []string

	// RemoveHook is an optional command run for every removed identity.
	RemoveHook []string

	// HookEnv adds environment variables to the install and remove hooks.
	HookEnv map[string]string

	// DryRun logs install steps without recording receipts.
	DryRun bool

	// JSONLogs switches the logger to JSON output.
	JSONLogs bool

	// MetricsTextfile is the path of a prometheus textfile written after each run.
	MetricsTextfile string
}

// JournalPath returns the journal location.
func (c *Config) JournalPath() string { return JournalPath(c.StateDir) }

// LocksPath returns the lock directory.
func (c *Config) LocksPath() string { return LocksPath(c.StateDir) }

// ReceiptsPath returns the receipt directory.
func (c *Config) ReceiptsPath() string { return ReceiptsPath(c.StateDir) }
