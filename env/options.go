package env

import (
	"log/slog"
	"strings"

	"github.com/jmgilman/go/tplcache/key"
	"github.com/jmgilman/go/tplcache/store"
)

const (
	// DefaultClassPrefix is prepended to every template class name.
	DefaultClassPrefix = "__TFDTemplate_"

	// DefaultSourceExtension is the template source extension stripped from
	// loader cache keys when building class names.
	DefaultSourceExtension = "tpl.twig"
)

// Option configures an Environment.
type Option func(*settings)

type settings struct {
	cache       *store.Store
	deriver     *key.Deriver
	autoReload  bool
	autoRender  bool
	classPrefix string
	sourceExt   string
	logger      *slog.Logger
}

func defaultSettings() *settings {
	return &settings{
		autoReload:  true,
		autoRender:  true,
		classPrefix: DefaultClassPrefix,
		sourceExt:   DefaultSourceExtension,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithCache sets the compiled artifact cache. A nil store disables caching
// and every template is compiled once per Environment.
//
// Example:
//
//	s, _ := store.Open(medium.NewLocal(), resolver, "private://twig_cache")
//	e, _ := env.New(loader, compiler, executor, env.WithCache(s))
func WithCache(s *store.Store) Option {
	return func(o *settings) {
		o.cache = s
	}
}

// WithDeriver sets the key deriver used to map templates to cache keys.
// Defaults to key.New() with the environment's source extension.
func WithDeriver(d *key.Deriver) Option {
	return func(o *settings) {
		o.deriver = d
	}
}

// WithAutoReload controls whether cache entries are checked against the
// source modification time before use. Enabled by default.
func WithAutoReload(enabled bool) Option {
	return func(o *settings) {
		o.autoReload = enabled
	}
}

// WithAutoRender controls the auto render flag reported by AutoRender.
// Enabled by default.
func WithAutoRender(enabled bool) Option {
	return func(o *settings) {
		o.autoRender = enabled
	}
}

// WithClassPrefix sets the prefix of generated template class names.
func WithClassPrefix(prefix string) Option {
	return func(o *settings) {
		o.classPrefix = prefix
	}
}

// WithSourceExtension sets the template source extension, with or without
// the leading dot.
func WithSourceExtension(ext string) Option {
	return func(o *settings) {
		o.sourceExt = strings.TrimPrefix(ext, ".")
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *settings) {
		if logger != nil {
			o.logger = logger
		}
	}
}
