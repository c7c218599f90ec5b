// Package cas implements a content-addressed store of installation receipts.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

const receiptExt = ".json"

var _ ports.ReceiptStore = (*Store)(nil)

// Store implements ports.ReceiptStore with one JSON file per installed identity.
// Files are named by the xxhash64 of the identity string.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a receipt store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the receipt file path of id.
func (s *Store) PathFor(id domain.Identity) string {
	key := strconv.FormatUint(xxhash.Sum64String(id.String()), 16)
	return filepath.Join(s.dir, key+receiptExt)
}

// Get retrieves the receipt for id. It returns nil, nil when none is stored.
func (s *Store) Get(id domain.Identity) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := s.read(s.PathFor(id))
	if err != nil || r == nil {
		return nil, err
	}
	if r.Identity != id {
		// A different identity with a colliding key owns the file.
		return nil, nil
	}
	return r, nil
}

// Put stores the receipt, replacing any earlier one for the same identity.
func (s *Store) Put(receipt domain.Receipt) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return domain.MarkCause(domain.ErrStoreMarshalFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(domain.MarkCause(domain.ErrStoreCreateFailed, err), "dir", s.dir)
	}

	path := s.PathFor(receipt.Identity)
	//nolint:gosec // Path is derived from a hash under the configured state dir
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(domain.MarkCause(domain.ErrStoreWriteFailed, err), "path", path)
	}
	return nil
}

// Delete removes the receipt for id. Missing receipts are ignored.
func (s *Store) Delete(id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.PathFor(id)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(domain.MarkCause(domain.ErrStoreDeleteFailed, err), "path", path)
	}
	return nil
}

// List returns every stored receipt ordered by identity.
func (s *Store) List() ([]domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.MarkCause(domain.ErrStoreReadFailed, err), "dir", s.dir)
	}

	receipts := make([]domain.Receipt, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), receiptExt) {
			continue
		}
		r, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if r != nil {
			receipts = append(receipts, *r)
		}
	}

	slices.SortFunc(receipts, func(a, b domain.Receipt) int {
		return domain.Compare(a.Identity, b.Identity)
	})
	return receipts, nil
}

func (s *Store) read(path string) (*domain.Receipt, error) {
	//nolint:gosec // Path is derived from a hash under the configured state dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.MarkCause(domain.ErrStoreReadFailed, err), "path", path)
	}

	var r domain.Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, zerr.With(domain.MarkCause(domain.ErrStoreUnmarshalFailed, err), "path", path)
	}
	return &r, nil
}
