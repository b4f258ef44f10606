package pdfexport

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional set of Prometheus collectors a caller can
// register against its own registry and pass in via Options.Metrics.
// The orchestrator never reaches for a process-global registry:
// NewMetrics registers against the caller's Registerer, never
// prometheus.DefaultRegisterer.
type Metrics struct {
	ExportsTotal     *prometheus.CounterVec
	ExportDuration   prometheus.Histogram
	PagesGenerated   prometheus.Histogram
}

// NewMetrics builds a Metrics bundle and registers it against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legaldocpdf_exports_total",
			Help: "Total number of export attempts, by outcome.",
		}, []string{"outcome"}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "legaldocpdf_export_duration_seconds",
			Help:    "Wall-clock duration of completed exports.",
			Buckets: prometheus.DefBuckets,
		}),
		PagesGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "legaldocpdf_pages_generated",
			Help:    "Page count of completed exports.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}

	reg.MustRegister(m.ExportsTotal, m.ExportDuration, m.PagesGenerated)
	return m
}

func (m *Metrics) observeSuccess(seconds float64, pages int) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues("success").Inc()
	m.ExportDuration.Observe(seconds)
	m.PagesGenerated.Observe(float64(pages))
}

func (m *Metrics) observeFailure() {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues("failure").Inc()
}
