package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/internal/adapters/config"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	return config.NewLoader(log), log
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	loader, _ := newLoader(t)

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "paket.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg.StateHome, "paket"), cfg.StateDir)
	assert.Equal(t, domain.DefaultSourceConcurrency, cfg.SourceConcurrency)
	assert.Equal(t, domain.PolicyFail, cfg.ConflictPolicy)
	assert.True(t, cfg.Recover)
	assert.Zero(t, cfg.LockWait)
	assert.Empty(t, cfg.DescriptorPath)
	assert.Empty(t, cfg.IndexPath)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "paket.yaml", `
state_dir: state
source:
  descriptor: deps.txt
  concurrency: 8
conflicts:
  policy: prefer-highest
lock:
  wait: 2s
install:
  hook: ["sh", "-c", "echo $PAKET_IDENTITY"]
  remove_hook: ["sh", "-c", "echo bye $PAKET_IDENTITY"]
  env:
    PREFIX: /opt
recover: false
dry_run: true
log:
  json: true
metrics:
  textfile: /var/lib/node_exporter/paket.prom
`)
	loader, _ := newLoader(t)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.StateDir)
	assert.Equal(t, filepath.Join(dir, "state", "journal"), cfg.JournalPath())
	assert.Equal(t, filepath.Join(dir, "deps.txt"), cfg.DescriptorPath)
	assert.Equal(t, 8, cfg.SourceConcurrency)
	assert.Equal(t, domain.PolicyPreferHighest, cfg.ConflictPolicy)
	assert.Equal(t, 2*time.Second, cfg.LockWait)
	assert.Equal(t, []string{"sh", "-c", "echo $PAKET_IDENTITY"}, cfg.InstallHook)
	assert.Equal(t, []string{"sh", "-c", "echo bye $PAKET_IDENTITY"}, cfg.RemoveHook)
	assert.Equal(t, map[string]string{"PREFIX": "/opt"}, cfg.HookEnv)
	assert.False(t, cfg.Recover)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.JSONLogs)
	assert.Equal(t, "/var/lib/node_exporter/paket.prom", cfg.MetricsTextfile)
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "paket.toml", `
state_dir = "/tmp/paket-state"

[source]
index = "index.yaml"

[conflicts]
policy = "fail"

[lock]
wait = "150ms"

[install]
remove_hook = ["rm", "-rf", "/opt/pkg"]
`)
	loader, _ := newLoader(t)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/paket-state", cfg.StateDir)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "index.yaml"), cfg.IndexPath)
	assert.Equal(t, 150*time.Millisecond, cfg.LockWait)
	assert.Equal(t, []string{"rm", "-rf", "/opt/pkg"}, cfg.RemoveHook)
	assert.True(t, cfg.Recover)
}

func TestLoad_BothSourcesWarn(t *testing.T) {
	path := write(t, "paket.yaml", "source:\n  descriptor: a.txt\n  index: b.yaml\n")
	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.IndexPath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		wantKey string
	}{
		{
			name:    "malformed yaml",
			file:    "paket.yaml",
			content: "source: [",
			wantErr: domain.ErrConfigParseFailed,
			wantKey: "path",
		},
		{
			name:    "malformed toml",
			file:    "paket.toml",
			content: "state_dir = ",
			wantErr: domain.ErrConfigParseFailed,
			wantKey: "path",
		},
		{
			name:    "unknown policy",
			file:    "paket.yaml",
			content: "conflicts:\n  policy: newest\n",
			wantErr: domain.ErrUnknownPolicy,
			wantKey: "policy",
		},
		{
			name:    "bad lock wait",
			file:    "paket.yaml",
			content: "lock:\n  wait: soon\n",
			wantErr: domain.ErrConfigParseFailed,
			wantKey: "lock.wait",
		},
		{
			name:    "negative concurrency",
			file:    "paket.yaml",
			content: "source:\n  concurrency: -1\n",
			wantErr: domain.ErrConfigParseFailed,
			wantKey: "source.concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)

			_, err := loader.Load(write(t, tt.file, tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Contains(t, zErr.Metadata(), tt.wantKey)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{config.EnvStateDir: "/srv/paket"}
	getenv := func(k string) string { return env[k] }

	cfg := config.Defaults()
	config.ApplyEnv(cfg, getenv)
	assert.Equal(t, "/srv/paket", cfg.StateDir)

	assert.Equal(t, domain.ConfigFileName, config.ConfigPath(getenv))
	env[config.EnvConfigPath] = "/etc/paket.toml"
	assert.Equal(t, "/etc/paket.toml", config.ConfigPath(getenv))
}
