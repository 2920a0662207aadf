package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	// Prometheus metrics
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheHitRate   prometheus.Gauge
	cacheKeys      prometheus.Gauge
	cacheEvictions prometheus.Counter
	checks         *prometheus.CounterVec
	checkDuration  *prometheus.HistogramVec
	checkErrors    *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	return &PrometheusExporter{
		collector: collector,
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_check_cache_hits_total",
			Help: "Total number of cache hits for permission checks",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_check_cache_misses_total",
			Help: "Total number of cache misses for permission checks",
		}),
		cacheHitRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gatehouse_check_cache_hit_rate",
			Help: "Current cache hit rate (0.0 to 1.0)",
		}),
		cacheKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gatehouse_check_cache_keys_current",
			Help: "Current number of keys in the check cache",
		}),
		cacheEvictions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_check_cache_evictions_total",
			Help: "Total number of cache evictions due to capacity limits",
		}),
		checks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatehouse_checks_total",
				Help: "Total number of permission checks",
			},
			[]string{"permission", "result"},
		),
		checkDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gatehouse_check_duration_seconds",
				Help:    "Duration of permission checks in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"permission"},
		),
		checkErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatehouse_check_errors_total",
				Help: "Total number of failed permission checks",
			},
			[]string{"permission"},
		),
	}
}

// Update updates Gauge metrics from the collector.
// Counters are updated per check, so only update gauges here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update() {
	cacheMetrics := e.collector.GetCacheMetrics()
	e.cacheHitRate.Set(cacheMetrics.HitRate)
	e.cacheKeys.Set(float64(cacheMetrics.KeysCurrent))
}

// RecordCheck records a check outcome in Prometheus.
func (e *PrometheusExporter) RecordCheck(permission string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	e.checks.WithLabelValues(permission, result).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(permission string, durationSeconds float64) {
	e.checkDuration.WithLabelValues(permission).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(permission string) {
	e.checkErrors.WithLabelValues(permission).Inc()
}

// RecordCacheHit records a cache hit.
func (e *PrometheusExporter) RecordCacheHit() {
	e.cacheHits.Inc()
}

// RecordCacheMiss records a cache miss.
func (e *PrometheusExporter) RecordCacheMiss() {
	e.cacheMisses.Inc()
}

// RecordCacheEviction records a cache eviction.
func (e *PrometheusExporter) RecordCacheEviction() {
	e.cacheEvictions.Inc()
}
