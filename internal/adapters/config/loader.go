// Package config provides the configuration loader for paket.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when building the configuration.
const (
	EnvConfigPath = "PAKET_CONFIG"
	EnvStateDir   = "PAKET_STATE_DIR"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Defaults returns the configuration used when no file is present.
func Defaults() *domain.Config {
	return &domain.Config{
		StateDir:          filepath.Join(xdg.StateHome, domain.AppDirName),
		SourceConcurrency: domain.DefaultSourceConcurrency,
		ConflictPolicy:    domain.PolicyFail,
		Recover:           true,
	}
}

// Load reads the configuration at path. A missing file yields Defaults.
// Files ending in .toml are parsed as TOML, anything else as YAML.
// Relative paths inside the file are resolved against the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, zerr.With(domain.MarkCause(domain.ErrConfigReadFailed, err), "path", path)
	}

	var file File
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, zerr.With(domain.MarkCause(domain.ErrConfigParseFailed, err), "path", path)
	}

	cfg, err := l.apply(&file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) apply(file *File, base string) (*domain.Config, error) {
	cfg := Defaults()

	if file.StateDir != "" {
		cfg.StateDir = resolvePath(base, file.StateDir)
	}

	cfg.DescriptorPath = resolvePath(base, file.Source.Descriptor)
	cfg.IndexPath = resolvePath(base, file.Source.Index)
	if cfg.DescriptorPath != "" && cfg.IndexPath != "" {
		l.logger.Warn("both source.descriptor and source.index are set; using the index")
	}

	switch {
	case file.Source.Concurrency < 0:
		return nil, zerr.With(domain.Mark(domain.ErrConfigParseFailed), "source.concurrency", file.Source.Concurrency)
	case file.Source.Concurrency > 0:
		cfg.SourceConcurrency = file.Source.Concurrency
	}

	switch file.Conflicts.Policy {
	case "":
	case domain.PolicyFail, domain.PolicyPreferHighest:
		cfg.ConflictPolicy = file.Conflicts.Policy
	default:
		return nil, zerr.With(domain.Mark(domain.ErrUnknownPolicy), "policy", file.Conflicts.Policy)
	}

	if file.Lock.Wait != "" {
		wait, err := time.ParseDuration(file.Lock.Wait)
		if err != nil || wait < 0 {
			return nil, zerr.With(domain.Mark(domain.ErrConfigParseFailed), "lock.wait", file.Lock.Wait)
		}
		cfg.LockWait = wait
	}

	if file.Recover != nil {
		cfg.Recover = *file.Recover
	}

	cfg.InstallHook = file.Install.Hook
	cfg.RemoveHook = file.Install.RemoveHook
	cfg.HookEnv = file.Install.Env
	cfg.DryRun = file.DryRun
	cfg.JSONLogs = file.Log.JSON
	cfg.MetricsTextfile = resolvePath(base, file.Metrics.Textfile)

	return cfg, nil
}

// ApplyEnv overrides cfg with values from the environment.
func ApplyEnv(cfg *domain.Config, getenv func(string) string) {
	if dir := getenv(EnvStateDir); dir != "" {
		cfg.StateDir = expandHome(dir)
	}
}

// ConfigPath returns the configuration file named by the environment, or the default name.
func ConfigPath(getenv func(string) string) string {
	if p := getenv(EnvConfigPath); p != "" {
		return expandHome(p)
	}
	return domain.ConfigFileName
}

func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
