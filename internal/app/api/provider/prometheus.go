package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollectors exports attempt outcomes and configuration presence
type PrometheusCollectors struct {
	attempts   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	configured *prometheus.GaugeVec
}

// NewPrometheusCollectors creates the collectors and registers them on reg
func NewPrometheusCollectors(reg prometheus.Registerer) (*PrometheusCollectors, error) {
	c := &PrometheusCollectors{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "briefly",
			Subsystem: "provider",
			Name:      "attempts_total",
			Help:      "Provider attempts by outcome and error kind.",
		}, []string{"provider", "operation", "outcome", "error_kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "briefly",
			Subsystem: "provider",
			Name:      "attempt_duration_seconds",
			Help:      "Latency of individual provider attempts.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"provider", "operation"}),
		configured: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "briefly",
			Subsystem: "provider",
			Name:      "configured",
			Help:      "1 when the provider has the credentials it needs.",
		}, []string{"provider", "operation"}),
	}

	for _, collector := range []prometheus.Collector{c.attempts, c.duration, c.configured} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetConfigured publishes the configuration flag of every descriptor
func (c *PrometheusCollectors) SetConfigured(descriptors []Descriptor) {
	if c == nil {
		return
	}
	for _, desc := range descriptors {
		value := 0.0
		if desc.IsConfigured {
			value = 1
		}
		c.configured.WithLabelValues(desc.Name, string(desc.Operation)).Set(value)
	}
}

func (c *PrometheusCollectors) observe(provider string, operation OperationKind, outcome string, kind ErrorKind, latencyMs int64) {
	if c == nil {
		return
	}
	c.attempts.WithLabelValues(provider, string(operation), outcome, string(kind)).Inc()
	c.duration.WithLabelValues(provider, string(operation)).
		Observe((time.Duration(latencyMs) * time.Millisecond).Seconds())
}
