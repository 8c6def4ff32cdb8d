package store

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/jmgilman/go/errors"
)

const (
	// deleteDirMode grants traversal and removal rights on directories.
	deleteDirMode fs.FileMode = 0o777
	// deleteFileMode makes read-only entries removable.
	deleteFileMode fs.FileMode = 0o700
)

// pending is a path waiting to be deleted. Directories are visited twice:
// once to queue their children and once, after the children, to be removed.
type pending struct {
	path     string
	expanded bool
}

// DeleteAll removes every entry and directory under the cache root and then
// the root itself. A missing root is not an error. Symbolic links are
// removed without being followed.
//
// Permissions are relaxed before each removal on a best-effort basis. The
// walk never stops at an individual failure; when any path could not be
// removed the returned error wraps ErrIncompleteDelete and the tree keeps
// only what was skipped.
func (s *Store) DeleteAll(ctx context.Context) error {
	failed := s.deleteTree(ctx, s.root)
	s.metrics.recordInvalidation(ctx, failed)

	if failed > 0 {
		s.logger.WarnContext(ctx, "cache invalidation incomplete", "failed", failed)
		return errors.WrapWithContext(
			ErrIncompleteDelete,
			errors.CodeInternal,
			fmt.Sprintf("failed to remove %d cache paths", failed),
			map[string]interface{}{"root": s.root, "failed": failed},
		)
	}

	s.logger.InfoContext(ctx, "cache invalidated")
	return nil
}

// deleteTree removes root and everything below it using an explicit stack
// and returns the number of paths that could not be removed.
func (s *Store) deleteTree(ctx context.Context, root string) int {
	failed := 0
	stack := []pending{{path: root}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.expanded {
			if !s.remove(ctx, item.path) {
				failed++
			}
			continue
		}

		// Links, dangling ones included, are removed as entries. Their targets
		// are never touched.
		link, err := s.medium.IsSymlink(item.path)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to inspect cache path", "path", item.path, "error", err)
			failed++
			continue
		}
		if link {
			if !s.remove(ctx, item.path) {
				failed++
			}
			continue
		}

		exists, err := s.medium.Exists(item.path)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to check cache path", "path", item.path, "error", err)
			failed++
			continue
		}
		if !exists {
			continue
		}

		isDir, err := s.medium.IsDir(item.path)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to inspect cache path", "path", item.path, "error", err)
			failed++
			continue
		}

		if !isDir {
			s.relax(ctx, item.path, deleteFileMode)
			if !s.remove(ctx, item.path) {
				failed++
			}
			continue
		}

		s.relax(ctx, item.path, deleteDirMode)
		children, err := s.medium.List(item.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.logger.WarnContext(ctx, "failed to list cache directory", "path", item.path, "error", err)
			failed++
			continue
		}

		stack = append(stack, pending{path: item.path, expanded: true})
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{path: path.Join(item.path, children[i])})
		}
	}

	return failed
}

// relax is a best-effort chmod. Failures are expected for entries removed
// concurrently and on media without permission support.
func (s *Store) relax(ctx context.Context, p string, mode fs.FileMode) {
	if err := s.medium.Chmod(p, mode); err != nil {
		s.logger.DebugContext(ctx, "failed to relax permissions", "path", p, "error", err)
	}
}

// remove deletes p, treating an already missing path as success.
func (s *Store) remove(ctx context.Context, p string) bool {
	err := s.medium.Remove(p)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	s.logger.WarnContext(ctx, "failed to remove cache path", "path", p, "error", err)
	return false
}
