package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PassGenerate = "generate"
	PassPreview  = "preview"
	PassImport   = "import"
	PassExport   = "export"
)

// Metrics holds the pipeline collectors on a private registry so several
// studios can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	PassesTotal        *prometheus.CounterVec
	PassDuration       *prometheus.HistogramVec
	DiagnosticsTotal   *prometheus.CounterVec
	ValidationWarnings *prometheus.CounterVec
	ParseErrorsTotal   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PassesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagesmith_passes_total",
				Help: "Total number of pipeline passes by kind and result",
			},
			[]string{"pass", "result"},
		),
		PassDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pagesmith_pass_duration_seconds",
				Help:    "Duration of pipeline passes in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"pass"},
		),
		DiagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagesmith_diagnostics_total",
				Help: "Resolution diagnostics by kind and stage",
			},
			[]string{"kind", "stage"},
		),
		ValidationWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pagesmith_validation_warnings_total",
				Help: "Structural validation warnings by message",
			},
			[]string{"warning"},
		),
		ParseErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pagesmith_parse_errors_total",
				Help: "DSL syntax errors reported by imports",
			},
		),
	}
}

// ObservePass records one pass. A nil receiver is a no-op.
func (m *Metrics) ObservePass(pass string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PassesTotal.WithLabelValues(pass, result).Inc()
	m.PassDuration.WithLabelValues(pass).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveDiagnostic(kind, stage string) {
	if m == nil {
		return
	}
	m.DiagnosticsTotal.WithLabelValues(kind, stage).Inc()
}

func (m *Metrics) ObserveWarnings(warnings []string) {
	if m == nil {
		return
	}
	for _, w := range warnings {
		m.ValidationWarnings.WithLabelValues(w).Inc()
	}
}

func (m *Metrics) ObserveParseErrors(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ParseErrorsTotal.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
