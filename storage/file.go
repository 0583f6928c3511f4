package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

// FileStore keeps one JSON file per key in a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, pkgerrors.Wrapf(err, "create storage directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, objectName(key))
}

func (f *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read snapshot %s", key)
	}
	return data, nil
}

// Save writes to a temporary file and renames it, so a crash never leaves a partial snapshot
func (f *FileStore) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, objectName(key)+".*.tmp")
	if err != nil {
		return pkgerrors.Wrapf(err, "create temporary file for %s", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return pkgerrors.Wrapf(err, "write snapshot %s", key)
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrapf(err, "close snapshot %s", key)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return pkgerrors.Wrapf(err, "replace snapshot %s", key)
	}
	return nil
}
