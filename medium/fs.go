package medium

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"github.com/go-git/go-billy/v5"
	fsbilly "github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// FS adapts a core.FS to the Medium interface.
type FS struct {
	fsys  core.FS
	chmod func(name string, mode fs.FileMode) error
	lstat func(name string) (fs.FileInfo, error)
}

// NewFS wraps fsys as a Medium.
//
// Chmod is served by core.MetadataFS when fsys implements it, then by the
// billy.Change capability of an unwrappable go-billy filesystem. When
// neither is available Chmod returns core.ErrUnsupported. IsSymlink is
// resolved the same way through Lstat.
func NewFS(fsys core.FS) *FS {
	return &FS{
		fsys:  fsys,
		chmod: chmodFunc(fsys),
		lstat: lstatFunc(fsys),
	}
}

// NewLocal returns a Medium backed by the local disk. Paths are absolute
// operating system paths.
func NewLocal() *FS {
	return &FS{
		fsys: fsbilly.NewLocal(),
		// The local provider is rooted at "/", so medium paths are OS paths.
		chmod: os.Chmod,
		lstat: os.Lstat,
	}
}

// NewMemory returns an empty in-memory Medium.
func NewMemory() *FS {
	return NewFS(fsbilly.NewMemory())
}

// Unwrap returns the wrapped filesystem.
func (m *FS) Unwrap() core.FS {
	return m.fsys
}

// Exists reports whether path exists.
func (m *FS) Exists(path string) (bool, error) {
	return m.fsys.Exists(path)
}

// IsDir reports whether path exists and is a directory.
func (m *FS) IsDir(path string) (bool, error) {
	info, err := m.fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsSymlink reports whether path is a symbolic link.
func (m *FS) IsSymlink(path string) (bool, error) {
	if m.lstat == nil {
		return false, nil
	}
	info, err := m.lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}

// List returns the sorted names of the direct children of path.
func (m *FS) List(path string) ([]string, error) {
	entries, err := m.fsys.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Chmod changes the permission bits of path.
func (m *FS) Chmod(path string, mode fs.FileMode) error {
	if m.chmod == nil {
		return core.ErrUnsupported
	}
	return m.chmod(path, mode)
}

// MkdirAll creates path and any missing parents.
func (m *FS) MkdirAll(path string, mode fs.FileMode) error {
	return m.fsys.MkdirAll(path, mode)
}

// ReadFile returns the contents of the file at path.
func (m *FS) ReadFile(path string) ([]byte, error) {
	return m.fsys.ReadFile(path)
}

// WriteFile replaces the contents of the file at path. The parent directory
// must already exist; go-billy would otherwise create it implicitly.
func (m *FS) WriteFile(name string, data []byte, mode fs.FileMode) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		exists, err := m.fsys.Exists(dir)
		if err != nil {
			return err
		}
		if !exists {
			return &fs.PathError{Op: "write", Path: name, Err: fs.ErrNotExist}
		}
	}
	return m.fsys.WriteFile(name, data, mode)
}

// Rename moves oldpath to newpath.
func (m *FS) Rename(oldpath, newpath string) error {
	return m.fsys.Rename(oldpath, newpath)
}

// Remove deletes the file or empty directory at path.
func (m *FS) Remove(path string) error {
	return m.fsys.Remove(path)
}

// ModTime returns the last modification time of path.
func (m *FS) ModTime(path string) (time.Time, error) {
	info, err := m.fsys.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Type returns the type of the wrapped filesystem.
func (m *FS) Type() core.FSType {
	return m.fsys.Type()
}

type billyUnwrapper interface {
	Unwrap() billy.Filesystem
}

func chmodFunc(fsys core.FS) func(string, fs.FileMode) error {
	if mfs, ok := fsys.(core.MetadataFS); ok {
		return mfs.Chmod
	}
	if u, ok := fsys.(billyUnwrapper); ok {
		if change, ok := u.Unwrap().(billy.Change); ok {
			return change.Chmod
		}
	}
	return nil
}

func lstatFunc(fsys core.FS) func(string) (fs.FileInfo, error) {
	if mfs, ok := fsys.(core.MetadataFS); ok {
		return mfs.Lstat
	}
	if u, ok := fsys.(billyUnwrapper); ok {
		if links, ok := u.Unwrap().(billy.Symlink); ok {
			return links.Lstat
		}
	}
	return nil
}
