package env_test

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/tplcache/env"
	"github.com/jmgilman/go/tplcache/key"
	"github.com/jmgilman/go/tplcache/medium"
	"github.com/jmgilman/go/tplcache/medium/mocks"
	"github.com/jmgilman/go/tplcache/store"
)

const compiledPrefix = "compiled:"

// mapLoader serves templates from memory. Cache keys are the template paths.
type mapLoader struct {
	mu         sync.Mutex
	sources    map[string]string
	modTimes   map[string]int64
	namespaces map[string]string
}

func newMapLoader(sources map[string]string) *mapLoader {
	return &mapLoader{
		sources:    sources,
		modTimes:   make(map[string]int64),
		namespaces: make(map[string]string),
	}
}

func (l *mapLoader) Source(_ context.Context, name string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.sources[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(src), nil
}

func (l *mapLoader) CacheKey(name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sources[name]; !ok {
		return "", fs.ErrNotExist
	}
	return name, nil
}

func (l *mapLoader) ModTime(_ context.Context, name string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.modTimes[name], nil
}

func (l *mapLoader) FindTemplate(name string) (string, error) {
	ns, rest, _ := strings.Cut(name, "::")
	root, ok := l.namespaces[ns]
	if !ok {
		return "", fmt.Errorf("unknown namespace %q", ns)
	}
	return root + "/" + rest, nil
}

func (l *mapLoader) touch(name string, ts int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modTimes[name] = ts
}

// countingCompiler prefixes sources and counts compilations.
type countingCompiler struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (c *countingCompiler) Compile(_ context.Context, _ string, source []byte) ([]byte, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if c.err != nil {
		return nil, c.err
	}
	return append([]byte(compiledPrefix), source...), nil
}

type template struct {
	Class string
	Body  string
}

// prefixExecutor rejects content without the compiled prefix.
type prefixExecutor struct{}

func (prefixExecutor) Materialize(_ context.Context, class string, content []byte) (*template, error) {
	body, ok := bytes.CutPrefix(content, []byte(compiledPrefix))
	if !ok {
		return nil, fmt.Errorf("unrecognized artifact for %s", class)
	}
	return &template{Class: class, Body: string(body)}, nil
}

func newLocalStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	root := filepath.ToSlash(filepath.Join(t.TempDir(), "twig_cache"))
	s, err := store.New(medium.NewLocal(), root, opts...)
	require.NoError(t, err)
	return s
}

const pagePath = "/srv/site/themes/custom/page.tpl.twig"

func newEnv(t *testing.T, loader env.Loader, compiler env.Compiler, opts ...env.Option) *env.Environment[*template] {
	t.Helper()
	e, err := env.New[*template](loader, compiler, prefixExecutor{}, opts...)
	require.NoError(t, err)
	return e
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := env.New[*template](nil, &countingCompiler{}, prefixExecutor{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestEnvironment_Defaults(t *testing.T) {
	e := newEnv(t, newMapLoader(nil), &countingCompiler{})

	assert.True(t, e.AutoRender())
	assert.True(t, e.AutoReload())
	assert.Nil(t, e.Cache())
}

func TestEnvironment_TemplateClass(t *testing.T) {
	loader := newMapLoader(map[string]string{
		pagePath:                    "",
		"node--article.tpl.twig":    "",
		"block.html":                "",
		"views/view-field.tpl.twig": "",
	})

	tests := []struct {
		name  string
		tpl   string
		index []int
		opts  []env.Option
		want  string
	}{
		{
			name: "absolute path",
			tpl:  pagePath,
			want: "__TFDTemplate__srv_site_themes_custom_page",
		},
		{
			name: "dashes",
			tpl:  "node--article.tpl.twig",
			want: "__TFDTemplate_node__article",
		},
		{
			name: "other extension kept",
			tpl:  "block.html",
			want: "__TFDTemplate_block_html",
		},
		{
			name:  "with index",
			tpl:   "views/view-field.tpl.twig",
			index: []int{3},
			want:  "__TFDTemplate_views_view_field_3",
		},
		{
			name: "empty prefix",
			tpl:  "node--article.tpl.twig",
			opts: []env.Option{env.WithClassPrefix("")},
			want: "node__article",
		},
		{
			name: "custom prefix and extension",
			tpl:  "block.html",
			opts: []env.Option{env.WithClassPrefix("T_"), env.WithSourceExtension(".html")},
			want: "T_block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, loader, &countingCompiler{}, tt.opts...)
			got, err := e.TemplateClass(tt.tpl, tt.index...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvironment_TemplateClassUnknown(t *testing.T) {
	e := newEnv(t, newMapLoader(nil), &countingCompiler{})

	_, err := e.TemplateClass("missing.tpl.twig")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestEnvironment_LoadCompilesAndCaches(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "<h1>{{ title }}</h1>"})
	s := newLocalStore(t)
	compiler := &countingCompiler{}

	d := key.New(key.WithMarkers("themes/"), key.WithSourceExtension("tpl.twig"))
	e := newEnv(t, loader, compiler, env.WithCache(s), env.WithDeriver(d))

	tpl, err := e.Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, "<h1>{{ title }}</h1>", tpl.Body)
	assert.Equal(t, "__TFDTemplate__srv_site_themes_custom_page", tpl.Class)
	assert.Equal(t, int32(1), compiler.calls.Load())

	k, err := e.CacheKey(pagePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(k, "custom/page_"), k)
	_, ok := s.Load(ctx, k)
	assert.True(t, ok, "compiled artifact should be written back")

	// Memoized within the environment.
	again, err := e.Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Same(t, tpl, again)
	assert.Equal(t, int32(1), compiler.calls.Load())

	// A fresh environment is served from the cache.
	fresh := newEnv(t, loader, compiler, env.WithCache(s), env.WithDeriver(d))
	_, err = fresh.Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, int32(1), compiler.calls.Load())
}

func TestEnvironment_StaleEntryRecompiles(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "v1"})
	s := newLocalStore(t)
	compiler := &countingCompiler{}

	_, err := newEnv(t, loader, compiler, env.WithCache(s)).Load(ctx, pagePath)
	require.NoError(t, err)

	loader.mu.Lock()
	loader.sources[pagePath] = "v2"
	loader.mu.Unlock()
	loader.touch(pagePath, time.Now().Add(time.Hour).Unix())

	tpl, err := newEnv(t, loader, compiler, env.WithCache(s)).Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, "v2", tpl.Body)
	assert.Equal(t, int32(2), compiler.calls.Load())
}

func TestEnvironment_AutoReloadDisabledUsesStaleEntry(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "v1"})
	s := newLocalStore(t)
	compiler := &countingCompiler{}

	_, err := newEnv(t, loader, compiler, env.WithCache(s)).Load(ctx, pagePath)
	require.NoError(t, err)

	loader.touch(pagePath, time.Now().Add(time.Hour).Unix())

	tpl, err := newEnv(t, loader, compiler, env.WithCache(s), env.WithAutoReload(false)).Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, "v1", tpl.Body)
	assert.Equal(t, int32(1), compiler.calls.Load())
}

func TestEnvironment_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "body"})
	s := newLocalStore(t)
	compiler := &countingCompiler{}
	e := newEnv(t, loader, compiler, env.WithCache(s))

	k, err := e.CacheKey(pagePath)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, k, []byte("garbage")))

	tpl, err := e.Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, "body", tpl.Body)
	assert.Equal(t, int32(1), compiler.calls.Load())

	h, ok := s.Load(ctx, k)
	require.True(t, ok)
	data, err := h.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte(compiledPrefix+"body"), data, "corrupt entry should be replaced")
}

func TestEnvironment_WriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	backing := medium.NewMemory()
	m := &mocks.MediumMock{
		ExistsFunc:   backing.Exists,
		IsDirFunc:    backing.IsDir,
		ModTimeFunc:  backing.ModTime,
		MkdirAllFunc: backing.MkdirAll,
		WriteFileFunc: func(path string, data []byte, mode fs.FileMode) error {
			return &fs.PathError{Op: "write", Path: path, Err: fs.ErrPermission}
		},
		RemoveFunc: backing.Remove,
	}
	s, err := store.New(m, "/cache")
	require.NoError(t, err)

	loader := newMapLoader(map[string]string{pagePath: "body"})
	tpl, err := newEnv(t, loader, &countingCompiler{}, env.WithCache(s)).Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, "body", tpl.Body)
	assert.Len(t, m.WriteFileCalls(), 1)
}

func TestEnvironment_NamespacedNames(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "body"})
	loader.namespaces["custom"] = "/srv/site/themes/custom"
	e := newEnv(t, loader, &countingCompiler{})

	tpl, err := e.Load(ctx, "custom::page.tpl.twig")
	require.NoError(t, err)
	assert.Equal(t, "__TFDTemplate__srv_site_themes_custom_page", tpl.Class)

	_, err = e.Load(ctx, "missing::page.tpl.twig")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestEnvironment_ConcurrentLoadsCompileOnce(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "body"})
	compiler := &countingCompiler{delay: 20 * time.Millisecond}
	e := newEnv(t, loader, compiler, env.WithCache(newLocalStore(t)))

	results := make([]*template, 16)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			tpl, err := e.Load(ctx, pagePath)
			results[i] = tpl
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), compiler.calls.Load())
	for _, tpl := range results {
		assert.Same(t, results[0], tpl)
	}
}

// gatedCompiler blocks each compilation until release is closed.
type gatedCompiler struct {
	countingCompiler
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *gatedCompiler) Compile(ctx context.Context, name string, source []byte) ([]byte, error) {
	c.once.Do(func() { close(c.started) })
	<-c.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.countingCompiler.Compile(ctx, name, source)
}

func TestEnvironment_CancelledCallerDoesNotFailOthers(t *testing.T) {
	loader := newMapLoader(map[string]string{pagePath: "body"})
	compiler := &gatedCompiler{started: make(chan struct{}), release: make(chan struct{})}
	e := newEnv(t, loader, compiler)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := e.Load(first, pagePath)
		firstErr <- err
	}()
	<-compiler.started

	second := make(chan *template, 1)
	go func() {
		tpl, err := e.Load(context.Background(), pagePath)
		assert.NoError(t, err)
		second <- tpl
	}()

	cancel()
	err := <-firstErr
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(err))

	close(compiler.release)
	tpl := <-second
	require.NotNil(t, tpl)
	assert.Equal(t, "body", tpl.Body)
	assert.Equal(t, int32(1), compiler.calls.Load())
}

func TestEnvironment_CompileError(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "body"})
	e := newEnv(t, loader, &countingCompiler{err: assert.AnError})

	_, err := e.Load(ctx, pagePath)
	require.Error(t, err)
	assert.Equal(t, errors.CodeBuildFailed, errors.GetCode(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestEnvironment_ClearCache(t *testing.T) {
	ctx := context.Background()
	loader := newMapLoader(map[string]string{pagePath: "body"})
	s := newLocalStore(t)
	compiler := &countingCompiler{}
	e := newEnv(t, loader, compiler, env.WithCache(s))

	_, err := e.Load(ctx, pagePath)
	require.NoError(t, err)
	k, err := e.CacheKey(pagePath)
	require.NoError(t, err)

	require.NoError(t, e.ClearCache(ctx))

	_, ok := s.Load(ctx, k)
	assert.False(t, ok)

	_, err = e.Load(ctx, pagePath)
	require.NoError(t, err)
	assert.Equal(t, int32(2), compiler.calls.Load())
}

func TestEnvironment_ClearCacheWithoutStore(t *testing.T) {
	e := newEnv(t, newMapLoader(nil), &countingCompiler{})
	assert.NoError(t, e.ClearCache(context.Background()))
}
