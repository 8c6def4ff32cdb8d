package store

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/jmgilman/go/tplcache/store"

// metrics records cache activity.
type metrics struct {
	hits           metric.Int64Counter
	misses         metric.Int64Counter
	writes         metric.Int64Counter
	writeFailures  metric.Int64Counter
	invalidations  metric.Int64Counter
	deleteFailures metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	hits, err := meter.Int64Counter(
		"tplcache.store.hits",
		metric.WithDescription("Cache loads that found an entry"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"tplcache.store.misses",
		metric.WithDescription("Cache loads that found no entry"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, err
	}

	writes, err := meter.Int64Counter(
		"tplcache.store.writes",
		metric.WithDescription("Cache entries written"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	writeFailures, err := meter.Int64Counter(
		"tplcache.store.write_failures",
		metric.WithDescription("Cache writes that failed"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	invalidations, err := meter.Int64Counter(
		"tplcache.store.invalidations",
		metric.WithDescription("Full cache invalidations"),
		metric.WithUnit("{invalidation}"),
	)
	if err != nil {
		return nil, err
	}

	deleteFailures, err := meter.Int64Counter(
		"tplcache.store.delete_failures",
		metric.WithDescription("Paths that could not be removed during invalidation"),
		metric.WithUnit("{path}"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		hits:           hits,
		misses:         misses,
		writes:         writes,
		writeFailures:  writeFailures,
		invalidations:  invalidations,
		deleteFailures: deleteFailures,
	}, nil
}

func (m *metrics) recordLoad(ctx context.Context, found bool) {
	if found {
		m.hits.Add(ctx, 1)
		return
	}
	m.misses.Add(ctx, 1)
}

func (m *metrics) recordWrite(ctx context.Context, err error) {
	if err != nil {
		m.writeFailures.Add(ctx, 1)
		return
	}
	m.writes.Add(ctx, 1)
}

func (m *metrics) recordInvalidation(ctx context.Context, failed int) {
	m.invalidations.Add(ctx, 1)
	if failed > 0 {
		m.deleteFailures.Add(ctx, int64(failed))
	}
}
