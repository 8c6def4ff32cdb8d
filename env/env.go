package env

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/singleflight"

	"github.com/jmgilman/go/tplcache/key"
	"github.com/jmgilman/go/tplcache/store"
)

// Loader provides template sources.
type Loader interface {
	// Source returns the template source for name.
	Source(ctx context.Context, name string) ([]byte, error)

	// CacheKey returns a string uniquely identifying the template, usually
	// its resolved path.
	CacheKey(name string) (string, error)

	// ModTime returns the source modification time in Unix seconds.
	ModTime(ctx context.Context, name string) (int64, error)

	// FindTemplate resolves a "namespace::name" reference to a template name.
	FindTemplate(name string) (string, error)
}

// Compiler turns a template source into its compiled artifact.
type Compiler interface {
	Compile(ctx context.Context, name string, source []byte) ([]byte, error)
}

// Executor materializes a compiled artifact into a usable template. It must
// return an error for content it does not recognize.
type Executor[T any] interface {
	Materialize(ctx context.Context, class string, content []byte) (T, error)
}

// Environment loads templates through the compiled artifact cache. It is
// safe for concurrent use.
type Environment[T any] struct {
	loader   Loader
	compiler Compiler
	executor Executor[T]
	opts     *settings
	logger   *slog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	loaded map[string]T
}

// New creates an Environment.
func New[T any](loader Loader, compiler Compiler, executor Executor[T], opts ...Option) (*Environment[T], error) {
	if loader == nil || compiler == nil || executor == nil {
		return nil, errors.New(errors.CodeInvalidInput, "loader, compiler and executor are required")
	}

	o := defaultSettings()
	for _, opt := range opts {
		opt(o)
	}
	if o.deriver == nil {
		o.deriver = key.New(key.WithSourceExtension(o.sourceExt))
	}

	return &Environment[T]{
		loader:   loader,
		compiler: compiler,
		executor: executor,
		opts:     o,
		logger:   o.logger,
		loaded:   make(map[string]T),
	}, nil
}

// Cache returns the configured store, or nil when caching is disabled.
func (e *Environment[T]) Cache() *store.Store {
	return e.opts.cache
}

// AutoRender reports whether auto rendering is enabled.
func (e *Environment[T]) AutoRender() bool {
	return e.opts.autoRender
}

// AutoReload reports whether cache entries are checked for freshness.
func (e *Environment[T]) AutoReload() bool {
	return e.opts.autoReload
}

// TemplateClass returns the class name for the template, which is also the
// identity of its compiled artifact. The loader's cache key has the source
// extension removed and "-", "." and "/" replaced by "_". An optional index
// is appended as "_<index>".
func (e *Environment[T]) TemplateClass(name string, index ...int) (string, error) {
	cacheKey, err := e.loader.CacheKey(name)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeNotFound, "failed to resolve template cache key", map[string]interface{}{
			"template": name,
		})
	}

	if e.opts.sourceExt != "" {
		cacheKey = strings.TrimSuffix(cacheKey, "."+e.opts.sourceExt)
	}

	var b strings.Builder
	b.WriteString(e.opts.classPrefix)
	b.WriteString(classReplacer.Replace(cacheKey))
	if len(index) > 0 {
		b.WriteByte('_')
		b.WriteString(strconv.Itoa(index[0]))
	}
	return b.String(), nil
}

var classReplacer = strings.NewReplacer("-", "_", ".", "_", "/", "_")

// CacheKey returns the cache key the template's artifact is stored under.
func (e *Environment[T]) CacheKey(name string, index ...int) (string, error) {
	name, err := e.resolveName(name)
	if err != nil {
		return "", err
	}
	class, err := e.TemplateClass(name, index...)
	if err != nil {
		return "", err
	}
	return e.opts.deriver.Derive(name, class), nil
}

// Load returns the template for name. Names of the form "namespace::name"
// are resolved through the loader first.
//
// Each template class is materialized at most once per Environment;
// concurrent loads of the same class share a single compilation. A caller
// whose ctx ends returns early while the shared compilation completes for
// the others.
func (e *Environment[T]) Load(ctx context.Context, name string, index ...int) (T, error) {
	var zero T

	name, err := e.resolveName(name)
	if err != nil {
		return zero, err
	}
	class, err := e.TemplateClass(name, index...)
	if err != nil {
		return zero, err
	}

	if tpl, ok := e.memoized(class); ok {
		return tpl, nil
	}

	// The shared load ignores caller cancellation; each caller stops
	// waiting on its own ctx.
	flight := e.group.DoChan(class, func() (any, error) {
		if tpl, ok := e.memoized(class); ok {
			return tpl, nil
		}

		tpl, err := e.load(context.WithoutCancel(ctx), name, class)
		if err != nil {
			return nil, err
		}

		e.mu.Lock()
		e.loaded[class] = tpl
		e.mu.Unlock()
		return tpl, nil
	})

	select {
	case <-ctx.Done():
		return zero, errors.WrapWithContext(ctx.Err(), errors.CodeTimeout, "template load abandoned", map[string]interface{}{
			"template": name,
			"class":    class,
		})
	case res := <-flight:
		if res.Err != nil {
			return zero, res.Err
		}
		tpl, _ := res.Val.(T)
		return tpl, nil
	}
}

// ClearCache drops every materialized template and deletes the cache root.
func (e *Environment[T]) ClearCache(ctx context.Context) error {
	e.mu.Lock()
	e.loaded = make(map[string]T)
	e.mu.Unlock()

	if e.opts.cache == nil {
		return nil
	}
	return e.opts.cache.DeleteAll(ctx)
}

func (e *Environment[T]) memoized(class string) (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tpl, ok := e.loaded[class]
	return tpl, ok
}

func (e *Environment[T]) resolveName(name string) (string, error) {
	if strings.Count(name, "::") != 1 {
		return name, nil
	}
	resolved, err := e.loader.FindTemplate(name)
	if err != nil {
		return "", errors.WrapWithContext(err, errors.CodeNotFound, "failed to find template", map[string]interface{}{
			"template": name,
		})
	}
	return resolved, nil
}

func (e *Environment[T]) load(ctx context.Context, name, class string) (T, error) {
	var zero T
	var k string

	if e.opts.cache != nil {
		k = e.opts.deriver.Derive(name, class)
		if tpl, ok := e.fromCache(ctx, name, class, k); ok {
			return tpl, nil
		}
	}

	source, err := e.loader.Source(ctx, name)
	if err != nil {
		return zero, errors.WrapWithContext(err, errors.CodeNotFound, "failed to read template source", map[string]interface{}{
			"template": name,
		})
	}

	compiled, err := e.compiler.Compile(ctx, name, source)
	if err != nil {
		return zero, errors.WrapWithContext(err, errors.CodeBuildFailed, "failed to compile template", map[string]interface{}{
			"template": name,
			"class":    class,
		})
	}

	if e.opts.cache != nil {
		if err := e.opts.cache.Write(ctx, k, compiled); err != nil {
			e.logger.WarnContext(ctx, "failed to write compiled template to cache",
				"template", name,
				"key", k,
				"error", err,
			)
		}
	}

	tpl, err := e.executor.Materialize(ctx, class, compiled)
	if err != nil {
		return zero, errors.WrapWithContext(err, errors.CodeExecutionFailed, "failed to materialize compiled template", map[string]interface{}{
			"template": name,
			"class":    class,
		})
	}
	return tpl, nil
}

// fromCache materializes the cached artifact for k when it is present and,
// with auto reload, not older than the source.
func (e *Environment[T]) fromCache(ctx context.Context, name, class, k string) (T, bool) {
	var zero T

	if e.opts.autoReload {
		modified, err := e.loader.ModTime(ctx, name)
		if err != nil {
			e.logger.DebugContext(ctx, "source modification time unavailable", "template", name, "error", err)
			return zero, false
		}
		if !e.opts.cache.IsFresh(ctx, k, modified) {
			return zero, false
		}
	}

	h, ok := e.opts.cache.Load(ctx, k)
	if !ok {
		return zero, false
	}

	content, err := h.Bytes()
	if err != nil {
		e.logger.WarnContext(ctx, "failed to read cached template", "key", k, "error", err)
		return zero, false
	}

	tpl, err := e.executor.Materialize(ctx, class, content)
	if err != nil {
		e.logger.WarnContext(ctx, "discarding unusable cache entry", "key", k, "error", err)
		return zero, false
	}
	return tpl, true
}
