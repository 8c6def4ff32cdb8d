package config_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	fsbilly "github.com/jmgilman/go/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/tplcache/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "temporary://tplcache", cfg.Cache.URI)
	assert.Equal(t, fs.FileMode(0o777), cfg.Cache.DirPerm())
	assert.Equal(t, fs.FileMode(0o666), cfg.Cache.FilePerm())
	assert.Equal(t, filepath.ToSlash(os.TempDir()), cfg.Schemes[config.TemporaryScheme])
	assert.Empty(t, cfg.Key.Markers)
	assert.Equal(t, "tpl.twig", cfg.Key.SourceExtension)
	assert.Equal(t, "tplc", cfg.Key.CompiledExtension)
	assert.True(t, cfg.Environment.AutoReload)
	assert.True(t, cfg.Environment.AutoRender)
	assert.Equal(t, "__TFDTemplate_", cfg.Environment.ClassPrefix)
	assert.Equal(t, []string{"tpl.twig"}, cfg.Watch.Extensions)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.DebounceDuration())
}

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
	}{
		{
			name:     "cue",
			filename: "tplcache.cue",
			data: `
schemes: private: "/srv/files/private"
cache: {
	uri:     "private://twig_cache"
	dirMode: 0o750
}
key: markers: ["themes/"]
environment: autoReload: false
watch: {
	paths:    ["/srv/site/themes"]
	debounce: "250ms"
}
`,
		},
		{
			name:     "json",
			filename: "tplcache.json",
			data: `{
	"schemes": {"private": "/srv/files/private"},
	"cache": {"uri": "private://twig_cache", "dirMode": 488},
	"key": {"markers": ["themes/"]},
	"environment": {"autoReload": false},
	"watch": {"paths": ["/srv/site/themes"], "debounce": "250ms"}
}`,
		},
		{
			name:     "yaml",
			filename: "tplcache.yaml",
			data: `
schemes:
  private: /srv/files/private
cache:
  uri: private://twig_cache
  dirMode: 0o750
key:
  markers:
    - themes/
environment:
  autoReload: false
watch:
  paths: [/srv/site/themes]
  debounce: 250ms
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse(context.Background(), []byte(tt.data), tt.filename)
			require.NoError(t, err)

			assert.Equal(t, "/srv/files/private", cfg.Schemes["private"])
			assert.Contains(t, cfg.Schemes, config.TemporaryScheme)
			assert.Equal(t, "private://twig_cache", cfg.Cache.URI)
			assert.Equal(t, fs.FileMode(0o750), cfg.Cache.DirPerm())
			assert.Equal(t, fs.FileMode(0o666), cfg.Cache.FilePerm(), "unset fields take defaults")
			assert.Equal(t, []string{"themes/"}, cfg.Key.Markers)
			assert.False(t, cfg.Environment.AutoReload)
			assert.True(t, cfg.Environment.AutoRender)
			assert.Equal(t, []string{"/srv/site/themes"}, cfg.Watch.Paths)
			assert.Equal(t, 250*time.Millisecond, cfg.Watch.DebounceDuration())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "cue syntax",
			filename: "bad.cue",
			data:     `cache: {`,
			wantCode: errors.CodeCUEBuildFailed,
		},
		{
			name:     "yaml syntax",
			filename: "bad.yaml",
			data:     "cache: [unterminated",
			wantCode: errors.CodeCUEBuildFailed,
		},
		{
			name:     "unknown field",
			filename: "bad.cue",
			data:     `bogus: true`,
			wantCode: errors.CodeCUEValidationFailed,
		},
		{
			name:     "relative scheme root",
			filename: "bad.cue",
			data:     `schemes: private: "files/private"`,
			wantCode: errors.CodeCUEValidationFailed,
		},
		{
			name:     "mode out of range",
			filename: "bad.json",
			data:     `{"cache": {"fileMode": 4096}}`,
			wantCode: errors.CodeCUEValidationFailed,
		},
		{
			name:     "empty uri",
			filename: "bad.yml",
			data:     `cache: {uri: ""}`,
			wantCode: errors.CodeCUEValidationFailed,
		},
		{
			name:     "bad debounce",
			filename: "bad.cue",
			data:     `watch: debounce: "5 minutes"`,
			wantCode: errors.CodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse(context.Background(), []byte(tt.data), tt.filename)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := config.Parse(context.Background(), nil, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().Cache, cfg.Cache)
}

func TestParse_NormalizesExtensions(t *testing.T) {
	cfg, err := config.Parse(context.Background(), []byte(`key: {sourceExtension: ".html", compiledExtension: ".bin"}`), "c.cue")
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Key.SourceExtension)
	assert.Equal(t, "bin", cfg.Key.CompiledExtension)
}

func TestParse_TemporaryOverride(t *testing.T) {
	cfg, err := config.Parse(context.Background(), []byte(`schemes: temporary: "/var/tmp"`), "c.cue")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp", cfg.Schemes[config.TemporaryScheme])
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fsys := fsbilly.NewMemory()
	require.NoError(t, fsys.WriteFile("etc/tplcache.yaml", []byte("cache:\n  uri: /var/cache/twig\n"), 0o644))

	cfg, err := config.Load(ctx, fsys, "etc/tplcache.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/twig", cfg.Cache.URI)

	_, err = config.Load(ctx, fsys, "etc/missing.cue")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCUELoadFailed, errors.GetCode(err))
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := config.Load(ctx, fsbilly.NewMemory(), "tplcache.cue")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCUELoadFailed, errors.GetCode(err))
}
