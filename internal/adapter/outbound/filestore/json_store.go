// Package filestore persists the animal collection as a JSON flat file.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/incognito1025/fauna-go/internal/adapter/outbound/animaljson"
	"github.com/incognito1025/fauna-go/internal/application/common/slogger"
	"github.com/incognito1025/fauna-go/internal/domain/entity"
	domainerrors "github.com/incognito1025/fauna-go/internal/domain/errors/domain"
	"github.com/incognito1025/fauna-go/internal/port/outbound"

	"github.com/spf13/afero"
)

const (
	filePerm = 0o644
	dirPerm  = 0o750
)

var (
	_ outbound.AnimalStore      = (*Store)(nil)
	_ outbound.StoreInitializer = (*Store)(nil)
)

// Store reads and writes the whole collection at a single path.
// There is no locking: concurrent invocations on the same path race and the last writer wins.
type Store struct {
	fs     afero.Fs
	path   string
	atomic bool
}

// Option configures a Store.
type Option func(*Store)

// WithFs overrides the filesystem (tests use afero.NewMemMapFs).
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithAtomicWrites makes Save write a temp file in the same directory and rename it over the target.
func WithAtomicWrites(atomic bool) Option {
	return func(s *Store) { s.atomic = atomic }
}

// NewStore creates a file-backed store for path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{fs: afero.NewOsFs(), path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the collection. An empty file yields an empty collection.
func (s *Store) Load(ctx context.Context) (entity.Collection, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return entity.Collection{}, fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}

	collection, err := animaljson.Decode(data)
	if err != nil {
		return entity.Collection{}, fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}

	slogger.Debug(ctx, "Loaded collection", slogger.Fields2("path", s.path, "count", collection.Len()))
	return collection, nil
}

// Save replaces the file contents with the serialized collection.
func (s *Store) Save(ctx context.Context, collection entity.Collection) error {
	data, err := animaljson.Encode(collection)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageWrite, s.path, err)
	}

	if s.atomic {
		err = s.writeAtomic(data)
	} else {
		err = afero.WriteFile(s.fs, s.path, data, filePerm)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageWrite, s.path, err)
	}

	slogger.Debug(ctx, "Saved collection", slogger.Fields2("path", s.path, "count", collection.Len()))
	return nil
}

// Init creates an empty collection file when none exists.
func (s *Store) Init(ctx context.Context) (bool, error) {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageRead, s.path, err)
	}
	if exists {
		return false, nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return false, fmt.Errorf("%w: %s: %w", domainerrors.ErrStorageWrite, dir, err)
		}
	}
	if err := s.Save(ctx, entity.NewCollection()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) writeAtomic(data []byte) (retErr error) {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := s.fs.Chmod(tmpName, os.FileMode(filePerm)); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
