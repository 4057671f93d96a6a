package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/goodwillcoding/configme/pkg/filesystem"
)

// Op names a filesystem operation for error injection
type Op string

const (
	OpStat      Op = "stat"
	OpReadFile  Op = "read"
	OpWriteFile Op = "write"
	OpMkdirAll  Op = "mkdir"
	OpRemoveAll Op = "remove"
)

// FaultyFS wraps a filesystem.FS and fails chosen operations on chosen
// paths. Injected errors are returned as *fs.PathError so callers see the
// same shape as real OS failures.
type FaultyFS struct {
	filesystem.FS

	mu     sync.RWMutex
	errors map[Op]map[string]error
}

// NewFaultyFS wraps base
func NewFaultyFS(base filesystem.FS) *FaultyFS {
	return &FaultyFS{FS: base, errors: make(map[Op]map[string]error)}
}

// FailOn makes op fail on path with err
func (f *FaultyFS) FailOn(op Op, path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errors[op] == nil {
		f.errors[op] = make(map[string]error)
	}
	f.errors[op][filepath.Clean(path)] = err
	return f
}

func (f *FaultyFS) injected(op Op, path string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err, ok := f.errors[op][filepath.Clean(path)]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.injected(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.injected(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.injected(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.injected(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.injected(OpRemoveAll, path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
