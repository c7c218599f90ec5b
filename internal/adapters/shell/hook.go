// Package shell runs the configured install and remove hooks for each identity.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables exported to hook commands.
const (
	EnvName    = "PAKET_NAME"
	EnvVersion = "PAKET_VERSION"
	EnvID      = "PAKET_IDENTITY"
	EnvRunID   = "PAKET_RUN_ID"
)

var (
	_ ports.Installer = (*Hook)(nil)
	_ ports.Remover   = (*Hook)(nil)
)

// Hook runs a command once per identity. It serves as a ports.Installer for the install
// hook and as a ports.Remover for the remove hook.
type Hook struct {
	command []string
	env     map[string]string
	dir     string
	logger  ports.Logger
}

// NewHook creates a Hook running command with the extra environment env.
// Relative working directories are resolved by the caller; an empty dir uses the process cwd.
func NewHook(command []string, env map[string]string, dir string, logger ports.Logger) *Hook {
	return &Hook{
		command: command,
		env:     env,
		dir:     dir,
		logger:  logger,
	}
}

// Install runs the hook for id. Stdout lines are logged as info and stderr lines as errors.
// When the context carries a telemetry vertex, stdout is copied to it as well.
func (h *Hook) Install(ctx context.Context, id domain.Identity) error {
	return h.run(ctx, id, "install hook failed")
}

// Remove runs the hook for id the same way Install does.
func (h *Hook) Remove(ctx context.Context, id domain.Identity) error {
	return h.run(ctx, id, "remove hook failed")
}

func (h *Hook) run(ctx context.Context, id domain.Identity, failure string) error {
	if len(h.command) == 0 {
		return nil
	}

	name := h.command[0]
	args := h.command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), hookEnvironment(ctx, id), h.env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = h.dir
	cmd.Env = cmdEnv

	stdout := &logWriter{logger: h.logger, level: "info"}
	stderr := &logWriter{logger: h.logger, level: "error"}
	cmd.Stdout = stdout
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(stdout, v.Stdout())
	}
	cmd.Stderr = stderr

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, failure), "exit_code", exitCode)
		return zerr.With(err, "identity", id.String())
	}
	return nil
}

func hookEnvironment(ctx context.Context, id domain.Identity) []string {
	env := []string{
		EnvName + "=" + id.Name,
		EnvVersion + "=" + id.Version,
		EnvID + "=" + id.String(),
	}
	if runID := ports.RunIDFromContext(ctx); runID != "" {
		env = append(env, EnvRunID+"="+runID)
	}
	return env
}

// logWriter forwards complete lines to the logger and buffers partial ones.
type logWriter struct {
	logger ports.Logger
	level  string

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line; keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	if w.level == "info" {
		w.logger.Info(line)
		return
	}
	w.logger.Error(zerr.New(line))
}

// resolveEnvironment merges environment variables; later sources win.
func resolveEnvironment(sysEnv, hookEnv []string, userEnv map[string]string) []string {
	envMap := make(map[string]string)
	order := make([]string, 0, len(sysEnv)+len(hookEnv)+len(userEnv))
	set := func(k, v string) {
		if _, ok := envMap[k]; !ok {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, list := range [][]string{sysEnv, hookEnv} {
		for _, entry := range list {
			if k, v, ok := strings.Cut(entry, "="); ok {
				set(k, v)
			}
		}
	}
	for k, v := range userEnv {
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
