// Package prometheus exports extraction metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for extractions.
//
// Metrics:
//   - readdoc_extractions_total{mode,status} - extractions by outcome
//   - readdoc_paragraphs_removed_total{mode} - paragraphs dropped by pruning
//   - readdoc_extraction_duration_seconds{mode} - extraction latency
type Metrics struct {
	ExtractionsTotal       *prometheus.CounterVec
	ParagraphsRemovedTotal *prometheus.CounterVec
	ExtractionDuration     *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "readdoc_extractions_total",
				Help: "Total number of document extractions",
			},
			[]string{"mode", "status"}, // status is "ok" or an error code
		),
		ParagraphsRemovedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "readdoc_paragraphs_removed_total",
				Help: "Total number of paragraphs removed by extraction",
			},
			[]string{"mode"},
		),
		ExtractionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "readdoc_extraction_duration_seconds",
				Help:    "Duration of document extraction in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
			[]string{"mode"},
		),
	}
}

// Ensure InstrumentedExtractor implements readdoc.Extractor at compile time.
var _ readdoc.Extractor = (*InstrumentedExtractor)(nil)

// InstrumentedExtractor records metrics around another Extractor.
type InstrumentedExtractor struct {
	next    readdoc.Extractor
	metrics *Metrics
}

// NewInstrumentedExtractor wraps next with metrics.
func NewInstrumentedExtractor(next readdoc.Extractor, metrics *Metrics) *InstrumentedExtractor {
	return &InstrumentedExtractor{next: next, metrics: metrics}
}

// Extract delegates to the wrapped extractor, recording its duration, its
// outcome and the number of paragraphs it removed.
func (e *InstrumentedExtractor) Extract(ctx context.Context, data []byte, mode readdoc.Mode) (*readdoc.Extraction, error) {
	begin := time.Now()
	ext, err := e.next.Extract(ctx, data, mode)
	e.metrics.ExtractionDuration.WithLabelValues(string(mode)).Observe(time.Since(begin).Seconds())

	if err != nil {
		e.metrics.ExtractionsTotal.WithLabelValues(string(mode), readdoc.ErrorCode(err)).Inc()
		return nil, err
	}
	e.metrics.ExtractionsTotal.WithLabelValues(string(mode), "ok").Inc()
	e.metrics.ParagraphsRemovedTotal.WithLabelValues(string(mode)).Add(float64(ext.Removed))
	return ext, nil
}
