package filesystem

import "io/fs"

// FS is the subset of filesystem operations the pipeline needs.
// Implementations must return *fs.PathError values so callers can report
// the OS error code and the offending path.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	RemoveAll(path string) error
}
