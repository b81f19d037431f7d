package bench

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus instruments for comparison runs. Each
// Metrics owns its registry so a run can be written out on its own.
type Metrics struct {
	registry *prometheus.Registry

	Runs           prometheus.Counter
	EncodeDuration *prometheus.HistogramVec
	DecodeDuration *prometheus.HistogramVec
	EncodedBytes   *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	// 100ns .. ~26ms
	buckets := prometheus.ExponentialBuckets(1e-7, 4, 10)

	return &Metrics{
		registry: reg,
		Runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed comparison runs.",
		}),
		EncodeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Time to encode the sample record, by format.",
			Buckets:   buckets,
		}, []string{"format"}),
		DecodeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Time to decode the sample record, by format.",
			Buckets:   buckets,
		}, []string{"format"}),
		EncodedBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "encoded_bytes",
			Help:      "Encoded size of the sample record, by format.",
		}, []string{"format"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes all metrics in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
