package key

import (
	"path"
	"strings"

	"github.com/opencontainers/go-digest"
)

// DefaultCompiledExtension is the extension given to compiled artifacts when
// no other extension is configured.
const DefaultCompiledExtension = "tplc"

// Deriver maps template names and artifact identities to cache keys.
// A Deriver is immutable after construction and safe for concurrent use.
type Deriver struct {
	markers     []string
	sourceExt   string
	compiledExt string
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithMarkers sets the templates-root markers. Everything up to and including
// the first marker found in a template name is dropped, which keeps keys
// stable regardless of the absolute path a template was loaded from.
// Markers are tried in order; the first one present in the name wins.
func WithMarkers(markers ...string) Option {
	return func(d *Deriver) {
		d.markers = d.markers[:0]
		for _, m := range markers {
			if m = normalizeSeparators(m); m != "" {
				d.markers = append(d.markers, m)
			}
		}
	}
}

// WithSourceExtension sets the template source extension stripped from the
// name stem (for example "tpl.twig"). Names without it, and every name when
// it is empty, have the last extension of the basename stripped instead.
func WithSourceExtension(ext string) Option {
	return func(d *Deriver) {
		d.sourceExt = strings.TrimPrefix(ext, ".")
	}
}

// WithCompiledExtension sets the extension appended to every key.
// An empty extension produces keys without a trailing extension.
func WithCompiledExtension(ext string) Option {
	return func(d *Deriver) {
		d.compiledExt = sanitizeSegment(strings.TrimPrefix(ext, "."))
	}
}

// New creates a Deriver. Without options it uses no markers, strips the last
// extension of each name and appends DefaultCompiledExtension.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		compiledExt: DefaultCompiledExtension,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CompiledExtension returns the extension appended to derived keys.
func (d *Deriver) CompiledExtension() string {
	return d.compiledExt
}

// Derive returns the cache key for the given template name and artifact
// identity, in the form <dir>/<base>_<sha256-hex>.<ext>.
func (d *Deriver) Derive(templateName, artifactIdentity string) string {
	dir, base := d.stem(templateName)

	var b strings.Builder
	if dir != "" {
		b.WriteString(dir)
		b.WriteByte('/')
	}
	b.WriteString(base)
	b.WriteByte('_')
	b.WriteString(Digest(artifactIdentity))
	if d.compiledExt != "" {
		b.WriteByte('.')
		b.WriteString(d.compiledExt)
	}
	return b.String()
}

// Digest returns the lowercase hex SHA-256 digest of identity.
func Digest(identity string) string {
	return digest.SHA256.FromString(identity).Encoded()
}

// stem strips the marker prefix and source extension from name and returns
// the sanitized directory and basename.
func (d *Deriver) stem(name string) (string, string) {
	name = normalizeSeparators(name)
	for _, marker := range d.markers {
		if _, after, found := strings.Cut(name, marker); found {
			name = after
			break
		}
	}

	segments := splitSegments(name)
	if len(segments) == 0 {
		return "", ""
	}

	base := d.stripSourceExtension(segments[len(segments)-1])
	base = sanitizeSegment(base)
	if base == "." || base == ".." {
		base = ""
	}
	return strings.Join(segments[:len(segments)-1], "/"), base
}

func (d *Deriver) stripSourceExtension(base string) string {
	if d.sourceExt != "" {
		if trimmed, ok := strings.CutSuffix(base, "."+d.sourceExt); ok && trimmed != "" {
			return trimmed
		}
	}
	if ext := path.Ext(base); ext != "" && ext != base {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// splitSegments splits name on "/" and drops empty, "." and ".." segments
// so the joined result can never escape the cache root.
func splitSegments(name string) []string {
	parts := strings.Split(name, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = sanitizeSegment(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

func normalizeSeparators(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// sanitizeSegment replaces characters that are illegal in a path segment on
// Windows or POSIX filesystems, and trims trailing dots and spaces which
// Windows silently discards.
func sanitizeSegment(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`<>:"|?*/\`, r):
			return '_'
		}
		return r
	}, s)
	if s == "." || s == ".." {
		return s
	}
	return strings.TrimRight(s, ". ")
}
