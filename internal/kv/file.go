package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each key as <dir>/<key>.json
type File struct {
	dir    string
	closed bool
}

// OpenFile creates dir if needed and returns a file-per-key store
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.closed {
		return nil, false, ErrClosed
	}
	if err := validKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes atomically: temp file in the same dir, then rename
func (f *File) Set(_ context.Context, key string, value []byte) error {
	if f.closed {
		return ErrClosed
	}
	if err := validKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+"-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path(key))
}

// Delete implements Store
func (f *File) Delete(_ context.Context, key string) error {
	if f.closed {
		return ErrClosed
	}
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close implements Store
func (f *File) Close() error {
	f.closed = true
	return nil
}
