// Package fsresource implements durable resources backed by local files.
package fsresource

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/zerr"
)

// File implements ports.DurableResource for a single file path.
// Handles are synced to disk when closed.
type File struct {
	path string
}

// NewFile creates a File resource for path. The file is created lazily on first open.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// OpenAppend opens the file for appending.
func (f *File) OpenAppend() (io.WriteCloser, error) {
	return f.open(os.O_APPEND | os.O_CREATE | os.O_WRONLY)
}

// OpenTruncate opens the file and discards its contents.
func (f *File) OpenTruncate() (io.WriteCloser, error) {
	return f.open(os.O_TRUNC | os.O_CREATE | os.O_WRONLY)
}

// ReadAll returns the file contents, or nil if the file does not exist.
func (f *File) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", f.path)
	}
	return data, nil
}

func (f *File) open(flag int) (*Handle, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create parent directory"), "path", f.path)
	}
	//nolint:gosec // Path comes from the configured state directory
	file, err := os.OpenFile(f.path, flag, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open file"), "path", f.path)
	}
	return &Handle{file: file}, nil
}

// Handle is an open write handle on a File.
type Handle struct {
	file *os.File
}

// Write writes p to the file.
func (h *Handle) Write(p []byte) (int, error) {
	return h.file.Write(p)
}

// Close syncs the file to stable storage and releases the handle.
func (h *Handle) Close() error {
	syncErr := h.file.Sync()
	closeErr := h.file.Close()
	if syncErr != nil {
		return zerr.Wrap(syncErr, "failed to sync file")
	}
	if closeErr != nil {
		return zerr.Wrap(closeErr, "failed to close file")
	}
	return nil
}
