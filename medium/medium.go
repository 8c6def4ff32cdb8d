package medium

import (
	"io/fs"
	"time"
)

// Medium is the filesystem-like backend a cache store operates on.
//
// Implementations must be safe for concurrent use. Rename must replace an
// existing target atomically where the underlying storage allows it; the
// cache relies on this to publish entries without torn reads.
//
//go:generate go run github.com/matryer/moq@latest -out mocks/medium.go -pkg mocks . Medium
type Medium interface {
	// Exists reports whether path exists. A false result with a nil error
	// means the path is absent.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// IsSymlink reports whether path is a symbolic link, without following
	// it. Providers without link support report false.
	IsSymlink(path string) (bool, error)

	// List returns the names of the direct children of the directory at
	// path, sorted, excluding self and parent pseudo-entries.
	List(path string) ([]string, error)

	// Chmod changes the permission bits of path. Providers without
	// permission support return core.ErrUnsupported.
	Chmod(path string, mode fs.FileMode) error

	// MkdirAll creates path and any missing parents with mode. It returns
	// nil when path already exists as a directory.
	MkdirAll(path string, mode fs.FileMode) error

	// ReadFile returns the full contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the contents of the file at path, creating it
	// with mode when missing.
	WriteFile(path string, data []byte, mode fs.FileMode) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error

	// Remove deletes the file or empty directory at path.
	Remove(path string) error

	// ModTime returns the last modification time of path.
	ModTime(path string) (time.Time, error)
}
