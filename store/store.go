package store

import (
	"context"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/tplcache/medium"
)

// Store is a filesystem cache of compiled template artifacts rooted at a
// single directory of a medium.Medium. It is safe for concurrent use.
type Store struct {
	medium  medium.Medium
	root    string
	opts    *options
	logger  *slog.Logger
	metrics *metrics
}

// New creates a Store rooted at root, an absolute path within m. The root
// does not need to exist; Write creates it on demand.
func New(m medium.Medium, root string, opts ...Option) (*Store, error) {
	if m == nil {
		return nil, errors.New(errors.CodeInvalidInput, "medium is required")
	}
	if root == "" || !path.IsAbs(root) {
		return nil, errors.WithContext(
			errors.New(errors.CodeInvalidInput, "cache root must be an absolute path"),
			"root", root,
		)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	met, err := newMetrics(o.meter())
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create cache metrics")
	}

	return &Store{
		medium:  m,
		root:    path.Clean(root),
		opts:    o,
		logger:  o.logger.With("root", path.Clean(root)),
		metrics: met,
	}, nil
}

// Open resolves uri with r and creates a Store at the resulting root.
func Open(m medium.Medium, r medium.Resolver, uri string, opts ...Option) (*Store, error) {
	if r == nil {
		return nil, errors.New(errors.CodeInvalidInput, "resolver is required")
	}
	root, err := r.Resolve(uri)
	if err != nil {
		return nil, err
	}
	return New(m, root, opts...)
}

// Root returns the absolute cache root.
func (s *Store) Root() string {
	return s.root
}

// Path returns the medium path of the entry for key.
//
// Keys are slash-separated relative paths as produced by key.Deriver. Empty,
// absolute or unclean keys and keys with ".." segments return ErrInvalidKey.
func (s *Store) Path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return s.root + "/" + key, nil
}

// Write stores content under key, replacing any existing entry in full.
//
// Missing parent directories are created with the configured directory mode.
// The content is written to a hidden temporary sibling and renamed onto the
// entry, so readers never observe a partially written file.
func (s *Store) Write(ctx context.Context, key string, content []byte) (err error) {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	defer func() {
		s.metrics.recordWrite(ctx, err)
	}()

	dir := path.Dir(p)
	if err := s.medium.MkdirAll(dir, s.opts.dirMode); err != nil {
		return errors.WrapWithContext(err, errors.CodeInternal, "failed to create cache directory", map[string]interface{}{
			"key":  key,
			"path": dir,
		})
	}

	tmp := path.Join(dir, "."+path.Base(p)+"."+uuid.NewString()+".tmp")
	if err := s.medium.WriteFile(tmp, content, s.opts.fileMode); err != nil {
		s.discard(tmp)
		return errors.WrapWithContext(err, errors.CodeInternal, "failed to write cache entry", map[string]interface{}{
			"key":  key,
			"path": tmp,
		})
	}

	if err := s.medium.Rename(tmp, p); err != nil {
		s.discard(tmp)
		return errors.WrapWithContext(err, errors.CodeInternal, "failed to publish cache entry", map[string]interface{}{
			"key":  key,
			"path": p,
		})
	}

	s.logger.DebugContext(ctx, "cache entry written", "key", key, "size", len(content))
	return nil
}

// Load returns a handle to the entry for key. The second result is false when
// the entry does not exist, names a directory, the key is invalid or the
// medium fails.
// Freshness is not checked.
func (s *Store) Load(ctx context.Context, key string) (*Handle, bool) {
	p, err := s.Path(key)
	if err != nil {
		s.metrics.recordLoad(ctx, false)
		return nil, false
	}

	exists, err := s.medium.Exists(p)
	if err == nil && exists {
		// A directory is never an entry.
		var isDir bool
		if isDir, err = s.medium.IsDir(p); err == nil {
			exists = !isDir
		}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to check cache entry", "key", key, "error", err)
	}
	if err != nil || !exists {
		s.logger.DebugContext(ctx, "cache miss", "key", key)
		s.metrics.recordLoad(ctx, false)
		return nil, false
	}

	s.logger.DebugContext(ctx, "cache hit", "key", key)
	s.metrics.recordLoad(ctx, true)
	return &Handle{Key: key, Path: p, medium: s.medium}, true
}

// Timestamp returns the modification time of the entry for key in Unix
// seconds, or 0 when the entry does not exist or cannot be inspected.
func (s *Store) Timestamp(ctx context.Context, key string) int64 {
	p, err := s.Path(key)
	if err != nil {
		return 0
	}

	mtime, err := s.medium.ModTime(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "failed to stat cache entry", "key", key, "error", err)
		}
		return 0
	}
	if mtime.IsZero() {
		return 0
	}
	return mtime.Unix()
}

// IsFresh reports whether the entry for key exists and is at least as new
// as sourceModified, a Unix timestamp in seconds.
func (s *Store) IsFresh(ctx context.Context, key string, sourceModified int64) bool {
	ts := s.Timestamp(ctx, key)
	return ts != 0 && ts >= sourceModified
}

// discard removes a leftover temporary file after a failed write.
func (s *Store) discard(tmp string) {
	if err := s.medium.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to remove temporary cache file", "path", tmp, "error", err)
	}
}

func validateKey(key string) error {
	invalid := key == "" ||
		strings.HasPrefix(key, "/") ||
		strings.Contains(key, `\`) ||
		path.Clean(key) != key ||
		key == "." ||
		key == ".." ||
		strings.HasPrefix(key, "../")
	if invalid {
		return errors.WrapWithContext(ErrInvalidKey, errors.CodeInvalidInput, "invalid cache key", map[string]interface{}{
			"key": key,
		})
	}
	return nil
}
