package store

import (
	"github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/tplcache/medium"
)

// Handle refers to an existing cache entry. It is what an executor needs to
// materialize the compiled artifact.
type Handle struct {
	// Key is the cache key of the entry.
	Key string

	// Path is the medium path of the entry.
	Path string

	medium medium.Medium
}

// Bytes reads the entry's content. The entry may have been replaced or
// removed since the handle was obtained; in that case the newer content or
// an error is returned.
func (h *Handle) Bytes() ([]byte, error) {
	data, err := h.medium.ReadFile(h.Path)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInternal, "failed to read cache entry", map[string]interface{}{
			"key":  h.Key,
			"path": h.Path,
		})
	}
	return data, nil
}
