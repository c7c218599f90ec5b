package config

// File represents the structure of the paket.yaml (or paket.toml) configuration file.
type File struct {
	StateDir  string       `yaml:"state_dir" toml:"state_dir"`
	Source    SourceDTO    `yaml:"source" toml:"source"`
	Conflicts ConflictsDTO `yaml:"conflicts" toml:"conflicts"`
	Lock      LockDTO      `yaml:"lock" toml:"lock"`
	Install   InstallDTO   `yaml:"install" toml:"install"`
	Recover   *bool        `yaml:"recover" toml:"recover"`
	DryRun    bool         `yaml:"dry_run" toml:"dry_run"`
	Log       LogDTO       `yaml:"log" toml:"log"`
	Metrics   MetricsDTO   `yaml:"metrics" toml:"metrics"`
}

// SourceDTO selects where package metadata comes from.
type SourceDTO struct {
	Descriptor  string `yaml:"descriptor" toml:"descriptor"`
	Index       string `yaml:"index" toml:"index"`
	Concurrency int    `yaml:"concurrency" toml:"concurrency"`
}

// ConflictsDTO configures conflict handling.
type ConflictsDTO struct {
	Policy string `yaml:"policy" toml:"policy"`
}

// LockDTO configures the install lock.
type LockDTO struct {
	Wait string `yaml:"wait" toml:"wait"`
}

// InstallDTO configures the per-package install and remove hooks.
type InstallDTO struct {
	Hook       []string          `yaml:"hook" toml:"hook"`
	RemoveHook []string          `yaml:"remove_hook" toml:"remove_hook"`
	Env        map[string]string `yaml:"env" toml:"env"`
}

// LogDTO configures logging.
type LogDTO struct {
	JSON bool `yaml:"json" toml:"json"`
}

// MetricsDTO configures metrics export.
type MetricsDTO struct {
	Textfile string `yaml:"textfile" toml:"textfile"`
}
