package metrics

import (
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "magnet_sass"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	compileDuration *prom.HistogramVec
	compileResults  *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	buildSources    prom.Gauge
	staticMounts    *prom.CounterVec
}

// NewPrometheusRecorder constructs the plugin metrics and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		compileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual stylesheet compilations",
			Buckets:   prom.DefBuckets,
		}, []string{"source", "result"}),
		compileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "compile_results_total",
			Help:      "Stylesheet compile results by outcome",
		}, []string{"result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total duration of a build call",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		buildSources: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "build_sources",
			Help:      "Number of configured sources in the last build",
		}),
		staticMounts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "static_mounts_total",
			Help:      "Static directory registrations on the host engine",
		}, []string{"prefix"}),
	}
	reg.MustRegister(pr.compileDuration, pr.compileResults, pr.buildDuration, pr.buildOutcome, pr.buildSources, pr.staticMounts)
	return pr
}

func (p *PrometheusRecorder) ObserveCompileDuration(source string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.compileDuration.WithLabelValues(filepath.Base(source), string(result)).Observe(d.Seconds())
	p.compileResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetBuildSources(n int) {
	if p == nil {
		return
	}
	p.buildSources.Set(float64(n))
}

func (p *PrometheusRecorder) IncStaticMount(prefix string) {
	if p == nil {
		return
	}
	p.staticMounts.WithLabelValues(prefix).Inc()
}
