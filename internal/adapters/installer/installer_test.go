package installer_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/internal/adapters/cas"
	"go.trai.ch/paket/internal/adapters/installer"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var (
	pkg   = domain.NewIdentity("lib", "1.0")
	fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestRecorder_WritesReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("installed lib@1.0")

	store := cas.NewStore(filepath.Join(t.TempDir(), "receipts"))
	rec := installer.NewRecorder(store, log,
		installer.WithSource("index.yaml"),
		installer.WithClock(func() time.Time { return fixed }),
	)

	ctx := ports.ContextWithRunID(context.Background(), "run-7")
	require.NoError(t, rec.Install(ctx, pkg))

	got, err := store.Get(pkg)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-7", got.RunID)
	assert.Equal(t, "index.yaml", got.Source)
	assert.True(t, fixed.Equal(got.InstalledAt))
}

func TestRecorder_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	before := mocks.NewMockInstaller(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	gomock.InOrder(
		before.EXPECT().Install(gomock.Any(), pkg).Return(nil).Times(1),
		log.EXPECT().Info("installed lib@1.0"),
		log.EXPECT().Info("lib@1.0 already installed"),
	)
	vertex.EXPECT().Cached().Times(1)

	store := cas.NewStore(t.TempDir())
	rec := installer.NewRecorder(store, log, installer.WithBefore(before))

	require.NoError(t, rec.Install(context.Background(), pkg))
	require.NoError(t, rec.Install(ports.ContextWithVertex(context.Background(), vertex), pkg))

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecorder_BeforeFailureSkipsReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	before := mocks.NewMockInstaller(ctrl)
	hookErr := errors.New("hook exited 1")
	before.EXPECT().Install(gomock.Any(), pkg).Return(hookErr)

	store := cas.NewStore(t.TempDir())
	rec := installer.NewRecorder(store, mocks.NewMockLogger(ctrl), installer.WithBefore(before))

	err := rec.Install(context.Background(), pkg)
	require.ErrorIs(t, err, hookErr)

	got, err := store.Get(pkg)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecorder_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockReceiptStore(ctrl)
	boom := errors.New("read-only filesystem")

	store.EXPECT().Get(pkg).Return(nil, nil)
	store.EXPECT().Put(gomock.Any()).Return(boom)

	err := installer.NewRecorder(store, mocks.NewMockLogger(ctrl)).Install(context.Background(), pkg)
	require.ErrorIs(t, err, boom)
}

func TestDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("would install lib@1.0")
	log.EXPECT().Info("would remove lib@1.0")

	dry := installer.NewDryRun(log)
	require.NoError(t, dry.Install(context.Background(), pkg))
	require.NoError(t, dry.Remove(context.Background(), pkg))
}

func TestRecorder_RemoveDeletesReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	hook := mocks.NewMockRemover(ctrl)

	gomock.InOrder(
		log.EXPECT().Info("installed lib@1.0"),
		hook.EXPECT().Remove(gomock.Any(), pkg).Return(nil),
		log.EXPECT().Info("removed lib@1.0"),
	)

	store := cas.NewStore(t.TempDir())
	rec := installer.NewRecorder(store, log, installer.WithBeforeRemove(hook))

	require.NoError(t, rec.Install(context.Background(), pkg))
	require.NoError(t, rec.Remove(context.Background(), pkg))

	got, err := store.Get(pkg)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecorder_RemoveNotInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)
	hook := mocks.NewMockRemover(ctrl)

	rec := installer.NewRecorder(cas.NewStore(t.TempDir()), mocks.NewMockLogger(ctrl), installer.WithBeforeRemove(hook))

	err := rec.Remove(context.Background(), pkg)
	require.ErrorIs(t, err, domain.ErrNotInstalled)
}

func TestRecorder_RemoveHookFailureKeepsReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("installed lib@1.0")
	hook := mocks.NewMockRemover(ctrl)
	hookErr := errors.New("hook exited 1")
	hook.EXPECT().Remove(gomock.Any(), pkg).Return(hookErr)

	store := cas.NewStore(t.TempDir())
	rec := installer.NewRecorder(store, log, installer.WithBeforeRemove(hook))
	require.NoError(t, rec.Install(context.Background(), pkg))

	err := rec.Remove(context.Background(), pkg)
	require.ErrorIs(t, err, hookErr)

	got, err := store.Get(pkg)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
