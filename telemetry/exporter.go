package telemetry

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/orrery/status"
)

const namespace = "orrery"

// Exporter publishes a status.Registry and host frame timings to Prometheus
type Exporter struct {
	registry      *prometheus.Registry
	frameDuration prometheus.Histogram
	framesDropped prometheus.Counter
}

// New creates an exporter with its own Prometheus registry
// Go runtime collectors are registered alongside the simulation metrics
func New(src *status.Registry) *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent advancing and drawing one frame",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		framesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_frames_dropped_total",
			Help:      "Snapshots dropped because a stream queue was full",
		}),
	}

	e.registry.MustRegister(
		&registryCollector{src: src},
		e.frameDuration,
		e.framesDropped,
		collectors.NewGoCollector(),
	)
	return e
}

// ObserveFrame records one frame's wall time
func (e *Exporter) ObserveFrame(d time.Duration) {
	e.frameDuration.Observe(d.Seconds())
}

// FrameDropped counts one dropped stream frame
func (e *Exporter) FrameDropped() {
	e.framesDropped.Inc()
}

// Gatherer exposes the underlying registry
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// Handler serves the text exposition format
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// registryCollector is unchecked: status keys are registered lazily by writers
type registryCollector struct {
	src *status.Registry
}

func (c *registryCollector) Describe(chan<- *prometheus.Desc) {}

func (c *registryCollector) Collect(ch chan<- prometheus.Metric) {
	c.src.Counters.Range(func(key string, v *atomic.Int64) {
		ch <- prometheus.MustNewConstMetric(
			prometheus.NewDesc(MetricName(key)+"_total", "Counter "+key, nil, nil),
			prometheus.CounterValue,
			float64(v.Load()),
		)
	})
	c.src.Gauges.Range(func(key string, v *status.AtomicFloat) {
		ch <- prometheus.MustNewConstMetric(
			prometheus.NewDesc(MetricName(key), "Gauge "+key, nil, nil),
			prometheus.GaugeValue,
			v.Load(),
		)
	})
}

// MetricName maps a dotted status key onto a Prometheus name
func MetricName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return namespace + "_" + r.Replace(key)
}
