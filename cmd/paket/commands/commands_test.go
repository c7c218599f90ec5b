package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/cmd/paket/commands"
	"go.trai.ch/paket/internal/adapters/index"
	"go.trai.ch/paket/internal/app"
	"go.trai.ch/paket/internal/build"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/engine/orchestrator"
)

type mockApp struct {
	installFunc  func(ctx context.Context, token string, opts app.InstallOptions) (orchestrator.Outcome, error)
	removeFunc   func(ctx context.Context, token string, opts app.RemoveOptions) (orchestrator.Outcome, error)
	resolveFunc  func(ctx context.Context, token string) ([]domain.Identity, error)
	conflictFunc func(ctx context.Context, token string) ([]domain.ConflictPair, error)
	graph        string
	report       app.JournalReport
	rollbackErr  error
	receipts     []domain.Receipt
	entries      []index.Entry
	jsonLogs     bool
}

func (m *mockApp) Install(ctx context.Context, token string, opts app.InstallOptions) (orchestrator.Outcome, error) {
	if m.installFunc != nil {
		return m.installFunc(ctx, token, opts)
	}
	return orchestrator.Outcome{}, nil
}

func (m *mockApp) Remove(ctx context.Context, token string, opts app.RemoveOptions) (orchestrator.Outcome, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, token, opts)
	}
	return orchestrator.Outcome{}, nil
}

func (m *mockApp) Resolve(ctx context.Context, token string) ([]domain.Identity, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockApp) Conflicts(ctx context.Context, token string) ([]domain.ConflictPair, error) {
	if m.conflictFunc != nil {
		return m.conflictFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockApp) Graph(context.Context, string) (string, error) { return m.graph, nil }

func (m *mockApp) Journal() (app.JournalReport, error) { return m.report, nil }

func (m *mockApp) Rollback(context.Context) error { return m.rollbackErr }

func (m *mockApp) List() ([]domain.Receipt, error) { return m.receipts, nil }

func (m *mockApp) Search(string) ([]index.Entry, error) { return m.entries, nil }

func (m *mockApp) SetJSONLogs(enable bool) { m.jsonLogs = enable }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.InstallOptions
		var capturedToken string

		mock := &mockApp{
			installFunc: func(_ context.Context, token string, opts app.InstallOptions) (orchestrator.Outcome, error) {
				capturedToken = token
				capturedOpts = opts
				return orchestrator.Outcome{
					RunID: "run-1",
					Order: []domain.Identity{domain.NewIdentity("lib", "1"), domain.NewIdentity("app", "1")},
				}, nil
			},
		}

		out, err := execute(t, mock, "install", "app@1", "--dry-run", "--policy", "prefer-highest", "--no-recover")
		require.NoError(t, err)
		assert.Equal(t, "app@1", capturedToken)
		assert.Equal(t, app.InstallOptions{DryRun: true, Policy: "prefer-highest", NoRecover: true}, capturedOpts)
		assert.Contains(t, out, "planned 2 packages")
		assert.Contains(t, out, "run-1")
	})

	t.Run("prints settled conflicts", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, string, app.InstallOptions) (orchestrator.Outcome, error) {
				return orchestrator.Outcome{
					Order: []domain.Identity{domain.NewIdentity("root", "1")},
					Conflicts: []domain.ConflictPair{
						domain.NewConflictPair(domain.NewIdentity("C", "1.0"), domain.NewIdentity("C", "2.0")),
					},
				}, nil
			},
		}

		out, err := execute(t, mock, "install", "root@1")
		require.NoError(t, err)
		assert.Contains(t, out, "settled C@1.0 <-> C@2.0")
		assert.Contains(t, out, "installed 1 packages")
	})

	t.Run("returns error on install failure", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, string, app.InstallOptions) (orchestrator.Outcome, error) {
				return orchestrator.Outcome{}, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "install", "app@1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "install")
		require.Error(t, err)
	})
}

func TestCommands_Resolve(t *testing.T) {
	mock := &mockApp{
		resolveFunc: func(_ context.Context, token string) ([]domain.Identity, error) {
			assert.Equal(t, "root@1", token)
			return []domain.Identity{domain.NewIdentity("C", "1.0"), domain.NewIdentity("root", "1")}, nil
		},
	}

	out, err := execute(t, mock, "resolve", "root@1")
	require.NoError(t, err)
	assert.Equal(t, "C@1.0\nroot@1\n", out)
}

func TestCommands_Conflicts(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "conflicts", "root@1")
		require.NoError(t, err)
		assert.Contains(t, out, "no conflicts")
	})

	t.Run("found", func(t *testing.T) {
		mock := &mockApp{
			conflictFunc: func(context.Context, string) ([]domain.ConflictPair, error) {
				return []domain.ConflictPair{
					domain.NewConflictPair(domain.NewIdentity("C", "1.0"), domain.NewIdentity("C", "2.0")),
				}, nil
			},
		}

		out, err := execute(t, mock, "conflicts", "root@1")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflictsFound)
		assert.Contains(t, out, "C@1.0 <-> C@2.0")
	})
}

func TestCommands_Graph(t *testing.T) {
	out, err := execute(t, &mockApp{graph: "a@1 ->\n"}, "graph", "a@1")
	require.NoError(t, err)
	assert.Equal(t, "a@1 ->\n", out)
}

func TestCommands_Journal(t *testing.T) {
	mock := &mockApp{report: app.JournalReport{
		State:   domain.StateInProgress,
		Entries: []domain.Entry{domain.StartedEntry(), domain.StepEntry("installing a@1")},
	}}

	out, err := execute(t, mock, "journal")
	require.NoError(t, err)
	assert.Contains(t, out, domain.StateInProgress.String())
	assert.Contains(t, out, "installing a@1")
	assert.Contains(t, out, domain.MarkerStarted)
}

func TestCommands_Rollback(t *testing.T) {
	out, err := execute(t, &mockApp{}, "rollback")
	require.NoError(t, err)
	assert.Contains(t, out, "journal cleared")

	_, err = execute(t, &mockApp{rollbackErr: domain.ErrTransactionAlreadyCompleted}, "rollback")
	require.ErrorIs(t, err, domain.ErrTransactionAlreadyCompleted)
}

func TestCommands_ListAndSearch(t *testing.T) {
	mock := &mockApp{
		receipts: []domain.Receipt{{
			Identity:    domain.NewIdentity("lib", "1.0"),
			Source:      "index.yaml",
			InstalledAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}},
		entries: []index.Entry{{Identity: domain.NewIdentity("http", "1.2.0"), Description: "HTTP client"}},
	}

	out, err := execute(t, mock, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "lib@1.0")
	assert.Contains(t, out, "2026-03-01T12:00:00Z from index.yaml")

	out, err = execute(t, mock, "search", "http")
	require.NoError(t, err)
	assert.Contains(t, out, "http@1.2.0")
	assert.Contains(t, out, "HTTP client")
}

func TestCommands_JSONFlag(t *testing.T) {
	mock := &mockApp{}
	_, err := execute(t, mock, "--json", "journal")
	require.NoError(t, err)
	assert.True(t, mock.jsonLogs)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}

func TestCommands_Remove(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedToken string
		var capturedOpts app.RemoveOptions

		mock := &mockApp{
			removeFunc: func(_ context.Context, token string, opts app.RemoveOptions) (orchestrator.Outcome, error) {
				capturedToken = token
				capturedOpts = opts
				return orchestrator.Outcome{RunID: "run-9"}, nil
			},
		}

		out, err := execute(t, mock, "remove", "app@1", "-n", "--no-recover")
		require.NoError(t, err)
		assert.Equal(t, "app@1", capturedToken)
		assert.Equal(t, app.RemoveOptions{DryRun: true, NoRecover: true}, capturedOpts)
		assert.Contains(t, out, "would remove app@1")
		assert.Contains(t, out, "run-9")
	})

	t.Run("uninstall alias", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "uninstall", "app@1")
		require.NoError(t, err)
		assert.Contains(t, out, "removed app@1")
	})

	t.Run("propagates errors", func(t *testing.T) {
		mock := &mockApp{
			removeFunc: func(context.Context, string, app.RemoveOptions) (orchestrator.Outcome, error) {
				return orchestrator.Outcome{}, domain.ErrNotInstalled
			},
		}

		_, err := execute(t, mock, "remove", "ghost@1")
		require.ErrorIs(t, err, domain.ErrNotInstalled)
	})
}
