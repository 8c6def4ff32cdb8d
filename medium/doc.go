// Package medium defines the storage medium a compiled-template cache reads
// and writes through, and resolves logical storage schemes to cache roots.
//
// The Medium interface covers existence checks, directory listing,
// permission changes, recursive directory creation, whole-file reads and
// writes, rename, remove and modification time. Paths are slash-separated
// and absolute within the medium.
//
// FS adapts any github.com/jmgilman/go/fs/core filesystem to Medium. Two
// constructors cover the common cases:
//
//	local := medium.NewLocal()   // disk, via go-billy osfs
//	mem := medium.NewMemory()    // in-memory, via go-billy memfs
//
// Cache roots are named by URIs such as "private://twig_cache". A Resolver
// turns such a URI into an absolute root; SchemeResolver does so from a
// static scheme table:
//
//	r := medium.NewSchemeResolver(map[string]string{"private": "/srv/private"})
//	root, err := r.Resolve("private://twig_cache") // "/srv/private/twig_cache"
package medium
