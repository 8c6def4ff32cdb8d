package tplcache

import (
	"context"
	"log/slog"

	"github.com/jmgilman/go/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/jmgilman/go/tplcache/config"
	"github.com/jmgilman/go/tplcache/env"
	"github.com/jmgilman/go/tplcache/key"
	"github.com/jmgilman/go/tplcache/medium"
	"github.com/jmgilman/go/tplcache/store"
	"github.com/jmgilman/go/tplcache/watch"
)

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	medium        medium.Medium
	resolver      medium.Resolver
	logger        *slog.Logger
	meterProvider metric.MeterProvider
}

// WithMedium sets the storage medium. Defaults to the local disk.
func WithMedium(m medium.Medium) Option {
	return func(o *openOptions) {
		o.medium = m
	}
}

// WithResolver replaces the resolver built from the configured schemes.
func WithResolver(r medium.Resolver) Option {
	return func(o *openOptions) {
		o.resolver = r
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for cache metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *openOptions) {
		o.meterProvider = mp
	}
}

// Cache bundles a configured key deriver and cache store.
type Cache struct {
	*store.Store

	cfg     config.Config
	deriver *key.Deriver
	logger  *slog.Logger
}

// Open builds a Cache from cfg.
//
// The cache root is resolved from cfg.Cache.URI through a
// medium.SchemeResolver over cfg.Schemes unless WithResolver is given.
func Open(cfg config.Config, opts ...Option) (*Cache, error) {
	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.medium == nil {
		o.medium = medium.NewLocal()
	}
	if o.resolver == nil {
		o.resolver = medium.NewSchemeResolver(cfg.Schemes)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	storeOpts := []store.Option{
		store.WithDirMode(cfg.Cache.DirPerm()),
		store.WithFileMode(cfg.Cache.FilePerm()),
		store.WithLogger(o.logger),
	}
	if o.meterProvider != nil {
		storeOpts = append(storeOpts, store.WithMeterProvider(o.meterProvider))
	}

	s, err := store.Open(o.medium, o.resolver, cfg.Cache.URI, storeOpts...)
	if err != nil {
		return nil, errors.WithContext(err, "uri", cfg.Cache.URI)
	}

	keyOpts := []key.Option{
		key.WithMarkers(cfg.Key.Markers...),
		key.WithSourceExtension(cfg.Key.SourceExtension),
	}
	if cfg.Key.CompiledExtension != "" {
		keyOpts = append(keyOpts, key.WithCompiledExtension(cfg.Key.CompiledExtension))
	}

	o.logger.Debug("template cache opened", "root", s.Root(), "uri", cfg.Cache.URI)
	return &Cache{
		Store:   s,
		cfg:     cfg,
		deriver: key.New(keyOpts...),
		logger:  o.logger,
	}, nil
}

// Key derives the cache key for a template name and artifact identity.
func (c *Cache) Key(templateName, artifactIdentity string) string {
	return c.deriver.Derive(templateName, artifactIdentity)
}

// Deriver returns the configured key deriver.
func (c *Cache) Deriver() *key.Deriver {
	return c.deriver
}

// Config returns the configuration the cache was opened with.
func (c *Cache) Config() config.Config {
	return c.cfg
}

// EnvironmentOptions returns env options wiring this cache and the
// configured environment settings.
//
// Example:
//
//	e, err := env.New(loader, compiler, executor, c.EnvironmentOptions()...)
func (c *Cache) EnvironmentOptions() []env.Option {
	return []env.Option{
		env.WithCache(c.Store),
		env.WithDeriver(c.deriver),
		env.WithAutoReload(c.cfg.Environment.AutoReload),
		env.WithAutoRender(c.cfg.Environment.AutoRender),
		env.WithClassPrefix(c.cfg.Environment.ClassPrefix),
		env.WithSourceExtension(c.cfg.Key.SourceExtension),
		env.WithLogger(c.logger),
	}
}

// Watcher creates a source watcher over the configured watch paths that
// invalidates inv, or the store itself when inv is nil. Pass an
// environment's ClearCache through watch.InvalidatorFunc to also drop its
// materialized templates.
func (c *Cache) Watcher(inv watch.Invalidator, opts ...watch.Option) (*watch.Watcher, error) {
	if inv == nil {
		inv = c.Store
	}
	base := []watch.Option{
		watch.WithExtensions(c.cfg.Watch.Extensions...),
		watch.WithDebounce(c.cfg.Watch.DebounceDuration()),
		watch.WithLogger(c.logger),
	}
	return watch.New(inv, c.cfg.Watch.Paths, append(base, opts...)...)
}

// Invalidate deletes every cached artifact.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.DeleteAll(ctx)
}
