package store

import "github.com/jmgilman/go/errors"

// ErrInvalidKey is returned when a key is empty, absolute, unclean or
// contains traversal segments.
var ErrInvalidKey = errors.New(errors.CodeInvalidInput, "invalid cache key")

// ErrIncompleteDelete is returned by DeleteAll when one or more entries
// under the cache root could not be removed.
var ErrIncompleteDelete = errors.New(errors.CodeInternal, "cache root was not fully deleted")
