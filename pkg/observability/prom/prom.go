// Package prom implements observability hooks with Prometheus collectors.
//
// The CLI is short-lived, so metrics are not scraped. Instead the collected
// values are written once, at exit, in the text exposition format that the
// node exporter's textfile collector picks up.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/hilbertmaze/pkg/observability"
)

const namespace = "hilbertmaze"

// Metrics collects generation, encoding and cache metrics in a private
// registry.
type Metrics struct {
	registry *prometheus.Registry

	generations    *prometheus.CounterVec
	generationTime prometheus.Histogram
	vertices       prometheus.Gauge
	stageTime      *prometheus.HistogramVec
	encodeBytes    *prometheus.CounterVec
	encodeErrors   *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheWrites    *prometheus.CounterVec
}

// New registers all collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation runs by scale and outcome.",
		}, []string{"scale", "status"}),
		generationTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a full generation run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
		}),
		vertices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_vertices",
			Help:      "Vertex count of the most recent run.",
		}),
		stageTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per generation stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"stage"}),
		encodeBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encoded_bytes_total",
			Help:      "Bytes produced per output format.",
		}, []string{"format"}),
		encodeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_errors_total",
			Help:      "Failed encodes per output format.",
		}, []string{"format"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Artifact cache hits.",
		}, []string{"type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Artifact cache misses.",
		}, []string{"type"}),
		cacheWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the artifact cache.",
		}, []string{"type"}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnGenerateStart(context.Context, int, uint64) {}

func (m *Metrics) OnStageComplete(_ context.Context, stage string, d time.Duration, _ error) {
	m.stageTime.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) OnGenerateComplete(_ context.Context, scale, vertices int, d time.Duration, err error) {
	m.generations.WithLabelValues(strconv.Itoa(scale), status(err)).Inc()
	if err != nil {
		return
	}
	m.generationTime.Observe(d.Seconds())
	m.vertices.Set(float64(vertices))
}

func (m *Metrics) OnEncodeComplete(_ context.Context, format string, size int, _ time.Duration, err error) {
	if err != nil {
		m.encodeErrors.WithLabelValues(format).Inc()
		return
	}
	m.encodeBytes.WithLabelValues(format).Add(float64(size))
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheWrites.WithLabelValues(keyType).Add(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
