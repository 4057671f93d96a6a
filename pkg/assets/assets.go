// Package assets wraps the filesystem primitives used by the generation
// pipeline and translates OS failures into domain errors.
package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/goodwillcoding/configme/pkg/filesystem"
	"github.com/goodwillcoding/configme/pkg/logging"
	"github.com/rs/zerolog"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// Manager performs folder and file operations on behalf of the pipeline.
type Manager struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewManager creates a Manager on top of fsys
func NewManager(fsys filesystem.FS, logger zerolog.Logger) *Manager {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Manager{
		fs:     fsys,
		logger: logging.Component(logger, "assets"),
	}
}

// FS returns the underlying filesystem
func (m *Manager) FS() filesystem.FS {
	return m.fs
}

// ValidateDirectory returns path if it is an existing, accessible directory.
// subject describes the location in the error message ("template", ...).
func (m *Manager) ValidateDirectory(path, subject string) (string, error) {
	info, err := m.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrLocationNotFound,
			"%s does not exist, is not a folder, or is not accessible: %s", capitalize(subject), path).
			WithDetail("subject", subject).
			WithDetail("path", path)
	}
	return path, nil
}

// JoinPath joins path segments without touching the filesystem
func (m *Manager) JoinPath(parts ...string) string {
	return filepath.Join(parts...)
}

// FileName returns the last element of path
func (m *Manager) FileName(path string) string {
	return filepath.Base(path)
}

// ParentDir returns all but the last element of path
func (m *Manager) ParentDir(path string) string {
	return filepath.Dir(path)
}

// AssertFree fails with ErrAssetLocationTaken when a regular file already
// occupies path. A missing path or a directory is considered free.
func (m *Manager) AssertFree(path string) (string, error) {
	info, err := m.fs.Stat(path)
	if err == nil && info.Mode().IsRegular() {
		return "", assetLocationTaken(path)
	}
	return path, nil
}

// AssertNotDirectory fails with ErrAssetLocationTaken when a directory
// already occupies path, i.e. a file cannot be written there.
func (m *Manager) AssertNotDirectory(path string) (string, error) {
	info, err := m.fs.Stat(path)
	if err == nil && info.IsDir() {
		return "", assetLocationTaken(path)
	}
	return path, nil
}

// RemoveDirectory recursively removes path. A missing path is a no-op.
func (m *Manager) RemoveDirectory(path string) (string, error) {
	if _, err := m.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			m.logger.Trace().Str("path", path).Msg("nothing to remove")
			return path, nil
		}
		return "", errors.WrapOS(err, errors.ErrLocationRemoval, path)
	}

	if err := m.fs.RemoveAll(path); err != nil {
		return "", errors.WrapOS(err, errors.ErrLocationRemoval, path)
	}

	m.logger.Debug().Str("path", path).Msg("removed folder")
	return path, nil
}

// CreateDirectory creates path and any missing parents
func (m *Manager) CreateDirectory(path string) (string, error) {
	if err := m.fs.MkdirAll(path, dirPerm); err != nil {
		return "", errors.WrapOS(err, errors.ErrLocationCreation, path)
	}

	m.logger.Trace().Str("path", path).Msg("created folder")
	return path, nil
}

// WriteFile creates or truncates path and writes content to it
func (m *Manager) WriteFile(path, content string) (string, error) {
	if err := m.fs.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", errors.WrapOS(err, errors.ErrAssetCreation, path)
	}

	m.logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return path, nil
}

func assetLocationTaken(path string) error {
	return errors.Newf(errors.ErrAssetLocationTaken, "Asset or Location already exist: %s", path).
		WithDetail("path", path)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
