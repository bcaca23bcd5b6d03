// Package kv provides the durable string-keyed byte stores the persistence
// layer writes to: sqlite (default), one-file-per-key, and in-memory.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names a Store implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("kv: store closed")

// Store is a string-keyed durable byte store
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// IsValidBackend checks if a backend name is known
func IsValidBackend(b Backend) bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	}
	return false
}

// Open opens the named backend rooted at dataDir
func Open(backend Backend, dataDir string) (Store, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendSQLite, "":
		s, err := OpenSQLite(dataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFile:
		f, err := OpenFile(dataDir)
		if err != nil {
			return nil, err
		}
		return f, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: sqlite, file, memory)", backend)
	}
}

func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
