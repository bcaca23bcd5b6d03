package kv

import (
	"context"
	"errors"
)

// ErrWriteFailed is returned by a Memory store told to fail writes
var ErrWriteFailed = errors.New("kv: write failed")

// Memory is a map-backed Store used by tests and the "memory" backend
type Memory struct {
	data       map[string][]byte
	closed     bool
	failWrites bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// FailWrites makes subsequent Set and Delete calls return ErrWriteFailed
func (m *Memory) FailWrites(fail bool) {
	m.failWrites = fail
}

// Get implements Store
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Store
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.closed {
		return ErrClosed
	}
	if err := validKey(key); err != nil {
		return err
	}
	if m.failWrites {
		return ErrWriteFailed
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements Store
func (m *Memory) Delete(_ context.Context, key string) error {
	if m.closed {
		return ErrClosed
	}
	if m.failWrites {
		return ErrWriteFailed
	}
	delete(m.data, key)
	return nil
}

// Close implements Store
func (m *Memory) Close() error {
	m.closed = true
	return nil
}
