package shell_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/paket/internal/adapters/shell"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/paket/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var pkg = domain.NewIdentity("lib", "1.2.0")

func TestHook_Install_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("line1").Times(1),
		mockLogger.EXPECT().Info("line2").Times(1),
	)

	hook := shell.NewHook([]string{"sh", "-c", "echo line1; echo line2"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	require.NoError(t, err)
}

func TestHook_Install_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	hook := shell.NewHook([]string{"sh", "-c", "printf part1; sleep 0.1; echo part2"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	require.NoError(t, err)
}

func TestHook_Install_TrailingPartialLineIsFlushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	hook := shell.NewHook([]string{"sh", "-c", "printf 'no newline'"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	require.NoError(t, err)
}

func TestHook_Install_ExportsIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("lib 1.2.0 lib@1.2.0 run-42 extra").Times(1)

	hook := shell.NewHook(
		[]string{"sh", "-c", "echo $PAKET_NAME $PAKET_VERSION $PAKET_IDENTITY $PAKET_RUN_ID $MY_VAR"},
		map[string]string{"MY_VAR": "extra"},
		t.TempDir(),
		mockLogger,
	)

	ctx := ports.ContextWithRunID(context.Background(), "run-42")
	err := hook.Install(ctx, pkg)
	require.NoError(t, err)
}

func TestHook_Install_CopiesStdoutToVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("hello").Times(1)

	var buf bytes.Buffer
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Stdout().Return(&buf)

	hook := shell.NewHook([]string{"sh", "-c", "echo hello"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(ports.ContextWithVertex(context.Background(), vertex), pkg)
	require.NoError(t, err)
	require.Equal(t, "hello\n", buf.String())
}

func TestHook_Install_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	hook := shell.NewHook([]string{"nonexistent-command-xyz123"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	if err == nil {
		t.Error("Install() expected error for invalid command")
	}
}

func TestHook_Install_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	hook := shell.NewHook([]string{"sh", "-c", "echo oops >&2; exit 42"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	if err == nil {
		t.Fatal("Install() expected error for failed command")
	}
	if !strings.Contains(err.Error(), "install hook failed") {
		t.Errorf("Install() error should mention hook failure: %v", err)
	}
}

func TestHook_Install_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := shell.NewHook(nil, nil, "", mocks.NewMockLogger(ctrl))

	if err := hook.Install(context.Background(), pkg); err != nil {
		t.Errorf("Install() unexpected error for empty command: %v", err)
	}
}

func TestHook_Install_AbsolutePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test").Times(1)

	hook := shell.NewHook([]string{"/bin/sh", "-c", "echo test"}, nil, t.TempDir(), mockLogger)

	err := hook.Install(context.Background(), pkg)
	require.NoError(t, err)
}

func TestHook_Remove_ExportsIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("removing lib@1.2.0").Times(1)

	hook := shell.NewHook([]string{"sh", "-c", "echo removing $PAKET_IDENTITY"}, nil, t.TempDir(), mockLogger)

	require.NoError(t, hook.Remove(context.Background(), pkg))
}

func TestHook_Remove_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := shell.NewHook([]string{"sh", "-c", "exit 3"}, nil, t.TempDir(), mocks.NewMockLogger(ctrl))

	err := hook.Remove(context.Background(), pkg)
	require.Error(t, err)
	require.ErrorContains(t, err, "remove hook failed")
}
