// Package storage is the persistence bridge for the changelog document: an
// existence probe, a whole-document read and a whole-document overwrite.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage reads and writes whole documents by name.
type Storage interface {
	// Exists reports whether the named document is present.
	Exists(name string) (bool, error)
	// Read returns the complete content of the named document.
	Read(name string) ([]byte, error)
	// Write replaces the named document with data.
	Write(name string, data []byte) error
}

// WriteError reports a failed durable write. It is never retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError returns true if the error is a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// File stores documents on the local filesystem, relative to Dir when the
// name is not absolute.
type File struct {
	Dir  string
	Perm fs.FileMode
}

// NewFile creates file storage rooted at dir ("" for the working directory).
func NewFile(dir string) *File {
	return &File{Dir: dir, Perm: 0o644}
}

func (f *File) path(name string) string {
	if f.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(f.Dir, name)
}

// Exists implements Storage. A directory at the path counts as absent.
func (f *File) Exists(name string) (bool, error) {
	info, err := os.Stat(f.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", f.path(name), err)
	}
	return !info.IsDir(), nil
}

// Read implements Storage.
func (f *File) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path(name), err)
	}
	return data, nil
}

// Write implements Storage as a whole-file overwrite.
func (f *File) Write(name string, data []byte) error {
	perm := f.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(f.path(name), data, perm); err != nil {
		return &WriteError{Path: f.path(name), Err: err}
	}
	return nil
}

// Memory is an in-process Storage, used by tests and embedding hosts.
// It records every read and write.
type Memory struct {
	mu     sync.Mutex
	docs   map[string][]byte
	reads  int
	writes int
	// FailWrites makes every Write return a WriteError wrapping this error.
	FailWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Put seeds a document without counting it as a write.
func (m *Memory) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = append([]byte(nil), data...)
}

// Get returns a document's content and whether it exists.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[name]
	return data, ok
}

// Reads returns the number of Read calls.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Writes returns the number of successful Write calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Exists implements Storage.
func (m *Memory) Exists(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[name]
	return ok, nil
}

// Read implements Storage.
func (m *Memory) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("reading %s: %w", name, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// Write implements Storage.
func (m *Memory) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return &WriteError{Path: name, Err: m.FailWrites}
	}
	m.writes++
	m.docs[name] = append([]byte(nil), data...)
	return nil
}
