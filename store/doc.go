// Package store implements the filesystem cache for compiled template
// artifacts.
//
// A Store owns a cache root within a medium.Medium and keeps one file per
// cache key at <root>/<key>. Entries are replaced wholesale: Write stages
// the content in a uniquely named sibling file and renames it onto the
// entry, so concurrent readers observe either the previous or the new
// content, never a partial write. Writers targeting the same key are not
// coordinated; the last rename wins.
//
// Freshness is decided by the caller. Timestamp reports the modification
// time of an entry (0 when absent) and IsFresh compares it against the
// source template's modification time:
//
//	s, err := store.Open(medium.NewLocal(), resolver, "private://twig_cache")
//	if s.IsFresh(ctx, k, sourceModTime) {
//	    if h, ok := s.Load(ctx, k); ok {
//	        content, err := h.Bytes()
//	        ...
//	    }
//	}
//	_ = s.Write(ctx, k, compiled)
//
// DeleteAll removes the whole cache root, including the root directory,
// using a best-effort walk that keeps going past individual failures. The
// next Write recreates the root.
//
// # Failure Policy
//
// The cache is an optimization layer. Load and Timestamp degrade to "absent"
// on I/O errors, and Write and DeleteAll return errors that callers may log
// and otherwise ignore. Nothing in this package panics on storage failures.
//
// The Store holds no locks; DeleteAll racing with Write or Load may remove
// entries that are in use.
package store
