package store

import (
	"io/fs"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	// DefaultDirMode is the permission mode for cache directories. It lets
	// every writer sharing the cache create sibling directories; the process
	// umask still applies.
	DefaultDirMode fs.FileMode = 0o777

	// DefaultFileMode is the permission mode for cache entries before umask.
	DefaultFileMode fs.FileMode = 0o666
)

// Option configures a Store.
type Option func(*options)

type options struct {
	dirMode       fs.FileMode
	fileMode      fs.FileMode
	logger        *slog.Logger
	meterProvider metric.MeterProvider
}

func defaultOptions() *options {
	return &options{
		dirMode:  DefaultDirMode,
		fileMode: DefaultFileMode,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithDirMode sets the permission mode used when creating cache directories.
func WithDirMode(mode fs.FileMode) Option {
	return func(o *options) {
		o.dirMode = mode.Perm()
	}
}

// WithFileMode sets the permission mode used when writing cache entries.
func WithFileMode(mode fs.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode.Perm()
	}
}

// WithLogger sets the logger for swallowed failures and cache events.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used for cache
// metrics. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

func (o *options) meter() metric.Meter {
	mp := o.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(instrumentationName)
}
