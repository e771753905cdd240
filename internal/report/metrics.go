package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and gauges recorded for one generation run.
// Each instance owns its registry so runs and tests never collide.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsGenerated prometheus.Counter
	DocumentsWritten   prometheus.Counter
	QueriesGenerated   prometheus.Counter
	FallbackAnchors    prometheus.Counter
	CorpusBytes        prometheus.Gauge
	PhaseSeconds       *prometheus.GaugeVec
}

// NewMetrics creates metrics registered on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DocumentsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "benchgen_documents_generated_total",
			Help: "Documents assembled by the generator",
		}),
		DocumentsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "benchgen_documents_written_total",
			Help: "Document files written to storage",
		}),
		QueriesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "benchgen_queries_generated_total",
			Help: "Benchmark queries generated",
		}),
		FallbackAnchors: factory.NewCounter(prometheus.CounterOpts{
			Name: "benchgen_fallback_anchors_total",
			Help: "Query anchors drawn from the whole-corpus fallback sample",
		}),
		CorpusBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "benchgen_corpus_bytes",
			Help: "Total size of generated document content",
		}),
		PhaseSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "benchgen_phase_duration_seconds",
			Help: "Wall-clock duration of each pipeline phase",
		}, []string{"phase"}),
	}
}

// Gatherer exposes the registry for export.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
