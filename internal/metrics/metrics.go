// Package metrics records per-run Prometheus metrics. A CLI run is too short
// to be scraped, so the registry is written to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "interview_roadmap"

// Stage names observed by ObserveStage.
const (
	StageSearch   = "search"
	StagePrompt   = "prompt"
	StageModel    = "model"
	StageAssemble = "assemble"
	StageWrite    = "write"
)

// Recorder owns a private registry and the metrics for one run.
type Recorder struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	fallbacks      *prometheus.CounterVec
	searchQueries  *prometheus.CounterVec
	warnings       prometheus.Counter
	stageDuration  *prometheus.HistogramVec
	lastRunSuccess prometheus.Gauge
	lastRunUnix    prometheus.Gauge
}

// Option configures a Recorder.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace overrides the metric namespace.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithBuckets sets the stage duration histogram buckets, in seconds.
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(opts ...Option) *Recorder {
	o := options{
		namespace: defaultNamespace,
		buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		runs: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "runs_total",
			Help:      "Roadmaps written, by source (model or fallback).",
		}, []string{"source"}),
		fallbacks: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "fallbacks_total",
			Help:      "Fallback roadmaps, by reason.",
		}, []string{"reason"}),
		searchQueries: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "search_lookups_total",
			Help:      "Company lookups, by outcome (ok, empty, error, skipped).",
		}, []string{"outcome"}),
		warnings: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "validation_warnings_total",
			Help:      "Soft validation warnings on accepted roadmaps.",
		}),
		stageDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   o.buckets,
		}, []string{"stage"}),
		lastRunSuccess: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run wrote its artifact, 0 otherwise.",
		}),
		lastRunUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records how long a pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordSearch counts one company lookup outcome.
func (r *Recorder) RecordSearch(outcome string) {
	r.searchQueries.WithLabelValues(outcome).Inc()
}

// RecordRoadmap counts a written roadmap and, for fallbacks, its reason.
func (r *Recorder) RecordRoadmap(source, reason string, warnings int) {
	r.runs.WithLabelValues(source).Inc()
	if reason != "" {
		r.fallbacks.WithLabelValues(reason).Inc()
	}
	if warnings > 0 {
		r.warnings.Add(float64(warnings))
	}
}

// Finish stamps the end of a run.
func (r *Recorder) Finish(success bool, at time.Time) {
	if success {
		r.lastRunSuccess.Set(1)
	} else {
		r.lastRunSuccess.Set(0)
	}
	r.lastRunUnix.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry in the text exposition format, atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
