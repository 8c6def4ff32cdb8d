package medium

import (
	"path"
	"sort"
	"strings"

	"github.com/jmgilman/go/errors"
)

// Resolver maps a cache root URI to an absolute path within a Medium.
type Resolver interface {
	Resolve(uri string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(uri string) (string, error)

// Resolve calls f(uri).
func (f ResolverFunc) Resolve(uri string) (string, error) {
	return f(uri)
}

// SchemeResolver resolves "scheme://target" URIs against a fixed table of
// scheme roots. URIs without a scheme must already be absolute paths.
type SchemeResolver struct {
	roots map[string]string
}

// NewSchemeResolver creates a resolver from a scheme name to root path table.
// The table is copied.
func NewSchemeResolver(roots map[string]string) *SchemeResolver {
	r := &SchemeResolver{roots: make(map[string]string, len(roots))}
	for scheme, root := range roots {
		r.roots[scheme] = root
	}
	return r
}

// Schemes returns the registered scheme names, sorted.
func (r *SchemeResolver) Schemes() []string {
	names := make([]string, 0, len(r.roots))
	for scheme := range r.roots {
		names = append(names, scheme)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the absolute root for uri.
//
// Returns CodeNotFound when the scheme is not registered and CodeInvalidInput
// when the URI is relative or the scheme root is not absolute. Targets can
// never escape their scheme root.
func (r *SchemeResolver) Resolve(uri string) (string, error) {
	scheme, target, found := strings.Cut(uri, "://")
	if !found {
		if !path.IsAbs(uri) {
			return "", errors.WithContext(
				errors.New(errors.CodeInvalidInput, "cache root must be an absolute path or a scheme URI"),
				"uri", uri,
			)
		}
		return path.Clean(uri), nil
	}

	root, ok := r.roots[scheme]
	if !ok {
		return "", errors.WithContextMap(
			errors.Newf(errors.CodeNotFound, "unknown storage scheme %q", scheme),
			map[string]interface{}{"uri": uri, "scheme": scheme},
		)
	}
	if !path.IsAbs(root) {
		return "", errors.WithContextMap(
			errors.Newf(errors.CodeInvalidInput, "root for scheme %q is not absolute", scheme),
			map[string]interface{}{"scheme": scheme, "root": root},
		)
	}

	// Rooting the target before cleaning confines ".." segments to the
	// scheme root.
	target = path.Clean("/" + strings.ReplaceAll(target, `\`, "/"))
	return path.Join(path.Clean(root), target), nil
}
