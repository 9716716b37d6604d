package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nconklindev/tabconv/internal/converter"
)

const (
	LabelPair    = "pair"
	LabelOutcome = "outcome"

	// OutcomeSuccess labels conversions that produced an output file.
	OutcomeSuccess = "success"
)

// Reporter counts conversions in its own registry. It satisfies
// converter.Reporter.
type Reporter struct {
	registry *prometheus.Registry

	conversions *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	rows        *prometheus.CounterVec
}

// NewReporter creates a reporter with its collectors registered in a fresh registry.
func NewReporter() (*Reporter, error) {
	r := &Reporter{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tabconv",
				Name:      "conversions_total",
				Help:      "Number of conversions by pair and outcome.",
			},
			[]string{LabelPair, LabelOutcome},
		),
		durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tabconv",
				Name:      "conversion_duration_seconds",
				Help:      "Conversion duration distributions.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{LabelPair},
		),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tabconv",
				Name:      "rows_converted_total",
				Help:      "Number of data rows written to output files.",
			},
			[]string{LabelPair},
		),
	}

	for _, c := range []prometheus.Collector{r.conversions, r.durations, r.rows} {
		if err := r.registry.Register(c); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return r, nil
}

// ConversionFinished records one conversion. Refused conversions are counted
// but never observed in the duration histogram.
func (r *Reporter) ConversionFinished(
	pair converter.Pair,
	kind converter.Kind,
	elapsed time.Duration,
	rows int,
) {
	r.conversions.WithLabelValues(pair.String(), Outcome(kind)).Inc()

	if kind == converter.KindUnsupportedConversion {
		return
	}

	r.durations.WithLabelValues(pair.String()).Observe(elapsed.Seconds())
	if kind == converter.KindNone {
		r.rows.WithLabelValues(pair.String()).Add(float64(rows))
	}
}

// Registry exposes the underlying registry.
func (r *Reporter) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the collected metrics in the text exposition format,
// for the node exporter textfile collector.
func (r *Reporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}

// Outcome returns the label value for a conversion kind.
func Outcome(kind converter.Kind) string {
	switch kind {
	case converter.KindNone:
		return OutcomeSuccess
	case converter.KindUnsupportedConversion:
		return "unsupported"
	case converter.KindSourceRead:
		return "source_error"
	case converter.KindTargetWrite:
		return "target_error"
	default:
		return "unknown"
	}
}
