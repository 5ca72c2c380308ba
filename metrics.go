package packbuf

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PoolCollector exposes a PoolProvider's acquisition counters to
// Prometheus.
type PoolCollector struct {
	pool *PoolProvider

	reuses      *prometheus.Desc
	relocations *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	releases    *prometheus.Desc
}

func NewPoolCollector(pool *PoolProvider) *PoolCollector {
	return &PoolCollector{
		pool: pool,

		reuses: prometheus.NewDesc(
			"packbuf_pool_reuses_total",
			"Serializations satisfied by the caller's own buffer without movement",
			nil, nil,
		),
		relocations: prometheus.NewDesc(
			"packbuf_pool_relocations_total",
			"Serializations satisfied by relocating the body within existing capacity",
			nil, nil,
		),
		hits: prometheus.NewDesc(
			"packbuf_pool_hits_total",
			"Fresh buffers served from the free lists",
			nil, nil,
		),
		misses: prometheus.NewDesc(
			"packbuf_pool_misses_total",
			"Fresh buffers that required a new allocation",
			nil, nil,
		),
		releases: prometheus.NewDesc(
			"packbuf_pool_releases_total",
			"Buffers returned to the pool",
			nil, nil,
		),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reuses
	ch <- c.relocations
	ch <- c.hits
	ch <- c.misses
	ch <- c.releases
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.reuses, prometheus.CounterValue, float64(stats.Reuses))
	ch <- prometheus.MustNewConstMetric(c.relocations, prometheus.CounterValue, float64(stats.Relocations))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.releases, prometheus.CounterValue, float64(stats.Releases))
}
