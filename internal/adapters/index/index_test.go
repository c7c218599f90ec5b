package index_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/internal/adapters/index"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/zerr"
)

const sample = `
packages:
  - name: app
    version: 1.0.0
    description: The demo application
    dependencies: [lib@1.10.0, util@0.1.0]
  - name: lib
    version: 1.10.0
    description: Shared library
  - name: lib
    version: 1.9.0
    description: Shared library
  - name: lib
    version: 2.0.0-rc.1
  - name: util
    version: 0.1.0
    description: Helpers for app authors
`

func id(token string) domain.Identity {
	return domain.MustParseIdentity(token)
}

func TestIndex_DependenciesOf(t *testing.T) {
	idx, err := index.Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 5, idx.Len())

	deps, err := idx.DependenciesOf(context.Background(), id("app@1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Identity{id("lib@1.10.0"), id("util@0.1.0")}, deps)

	deps, err = idx.DependenciesOf(context.Background(), id("lib@1.9.0"))
	require.NoError(t, err)
	assert.Empty(t, deps)

	_, err = idx.DependenciesOf(context.Background(), id("lib@3.0.0"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestIndex_Versions(t *testing.T) {
	idx, err := index.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"1.9.0", "1.10.0", "2.0.0-rc.1"}, idx.Versions("lib"))
	assert.Empty(t, idx.Versions("nothing"))
}

func TestIndex_Search(t *testing.T) {
	idx, err := index.Parse([]byte(sample))
	require.NoError(t, err)

	var got []string
	for _, e := range idx.Search("APP") {
		got = append(got, e.Identity.String())
	}
	assert.Equal(t, []string{"app@1.0.0", "util@0.1.0"}, got)

	got = got[:0]
	for _, e := range idx.Search("lib") {
		got = append(got, e.Identity.String())
	}
	assert.Equal(t, []string{"lib@1.9.0", "lib@1.10.0", "lib@2.0.0-rc.1"}, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantVal any
	}{
		{
			name:    "bad dependency token",
			input:   "packages:\n  - {name: a, version: '1', dependencies: [b1]}\n",
			wantKey: "token",
			wantVal: "b1",
		},
		{
			name:    "missing version",
			input:   "packages:\n  - {name: a}\n",
			wantKey: "package",
			wantVal: 0,
		},
		{
			name:    "duplicate entry",
			input:   "packages:\n  - {name: a, version: '1'}\n  - {name: a, version: '1'}\n",
			wantKey: "identity",
			wantVal: "a@1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := index.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParsing)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tt.wantVal, zErr.Metadata()[tt.wantKey])
		})
	}

	_, err := index.Parse([]byte("packages: [oops"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParsing)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	idx, err := index.Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	path := filepath.Join(dir, "index.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	idx, err = index.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, idx.Len())
}
