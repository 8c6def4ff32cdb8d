package config

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/jmgilman/go/fs/core"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// TemporaryScheme is the scheme that resolves to the operating system's
// temporary directory unless the configuration maps it elsewhere.
const TemporaryScheme = "temporary"

// Config is the complete cache configuration.
type Config struct {
	// Schemes maps scheme names to absolute root directories.
	Schemes map[string]string `json:"schemes"`

	Cache       CacheConfig       `json:"cache"`
	Key         KeyConfig         `json:"key"`
	Environment EnvironmentConfig `json:"environment"`
	Watch       WatchConfig       `json:"watch"`
}

// CacheConfig configures the cache store.
type CacheConfig struct {
	// URI is the cache root, either "scheme://target" or an absolute path.
	URI      string `json:"uri"`
	DirMode  uint32 `json:"dirMode"`
	FileMode uint32 `json:"fileMode"`
}

// DirPerm returns DirMode as a permission mode.
func (c CacheConfig) DirPerm() fs.FileMode {
	return fs.FileMode(c.DirMode).Perm()
}

// FilePerm returns FileMode as a permission mode.
func (c CacheConfig) FilePerm() fs.FileMode {
	return fs.FileMode(c.FileMode).Perm()
}

// KeyConfig configures cache key derivation.
type KeyConfig struct {
	Markers           []string `json:"markers"`
	SourceExtension   string   `json:"sourceExtension"`
	CompiledExtension string   `json:"compiledExtension"`
}

// EnvironmentConfig configures the template environment.
type EnvironmentConfig struct {
	AutoReload  bool   `json:"autoReload"`
	AutoRender  bool   `json:"autoRender"`
	ClassPrefix string `json:"classPrefix"`
}

// WatchConfig configures the source watcher.
type WatchConfig struct {
	Paths      []string `json:"paths"`
	Extensions []string `json:"extensions"`
	// Debounce is a Go duration string.
	Debounce string `json:"debounce"`
}

// DebounceDuration returns the parsed debounce interval. Parse guarantees
// the value is valid.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0
	}
	return d
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	cfg, err := Parse(context.Background(), nil, "default.cue")
	if err != nil {
		// The embedded schema defaults always decode.
		panic(fmt.Sprintf("config: invalid schema defaults: %v", err))
	}
	return cfg
}

// Load reads and parses the configuration file at path from fsys.
//
// Returns CodeCUELoadFailed when the file cannot be read; see Parse for the
// remaining error codes.
func Load(ctx context.Context, fsys core.ReadFS, path string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, wrapLoadErrorWithContext(err, "context cancelled", makeContext("file_path", path))
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Config{}, wrapLoadErrorWithContext(err, "failed to read configuration file", makeContext("file_path", path))
	}
	return Parse(ctx, data, path)
}

// Parse parses configuration data. The format is chosen from the filename
// extension: ".yaml" and ".yml" are YAML, everything else is CUE, which
// includes JSON.
//
// The data is unified with the #Config schema, which fills in defaults.
// Returns CodeCUEBuildFailed when the data does not compile,
// CodeCUEValidationFailed when it violates the schema, CodeCUEDecodeFailed
// when it cannot be decoded and CodeInvalidConfig for unusable values.
func Parse(ctx context.Context, data []byte, filename string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, wrapLoadErrorWithContext(err, "context cancelled", makeContext("file_path", filename))
	}

	cueCtx := cuecontext.New()
	schema := cueCtx.CompileString(schemaSource, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return Config{}, wrapBuildErrorWithContext(err, "failed to build configuration schema", nil)
	}

	value, err := compile(cueCtx, data, filename)
	if err != nil {
		return Config{}, err
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, wrapValidationErrorWithContext(err, "configuration does not match schema", makeContext("file_path", filename))
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, wrapDecodeErrorWithContext(err, "failed to decode configuration", makeContext("file_path", filename))
	}

	if err := cfg.finalize(); err != nil {
		return Config{}, wrapConfigErrorWithContext(err, "invalid configuration", makeContext("file_path", filename))
	}
	return cfg, nil
}

func compile(cueCtx *cue.Context, data []byte, filename string) (cue.Value, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cue.Value{}, wrapBuildErrorWithContext(err, "failed to parse YAML configuration", makeContext("file_path", filename))
		}
		if raw == nil {
			raw = map[string]interface{}{}
		}
		value := cueCtx.Encode(raw)
		if err := value.Err(); err != nil {
			return cue.Value{}, wrapBuildErrorWithContext(err, "failed to encode YAML configuration", makeContext("file_path", filename))
		}
		return value, nil
	default:
		value := cueCtx.CompileBytes(data, cue.Filename(filename))
		if err := value.Err(); err != nil {
			return cue.Value{}, wrapBuildErrorWithContext(err, "failed to compile configuration", makeContext("file_path", filename))
		}
		return value, nil
	}
}

func (c *Config) finalize() error {
	if c.Schemes == nil {
		c.Schemes = make(map[string]string)
	}
	if _, ok := c.Schemes[TemporaryScheme]; !ok {
		c.Schemes[TemporaryScheme] = filepath.ToSlash(os.TempDir())
	}

	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %s", c.Watch.Debounce)
	}

	c.Key.SourceExtension = strings.TrimPrefix(c.Key.SourceExtension, ".")
	c.Key.CompiledExtension = strings.TrimPrefix(c.Key.CompiledExtension, ".")
	return nil
}
