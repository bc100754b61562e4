package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sewa"

// Metrics holds the service counters on a private registry so tests and
// multiple servers in one process do not collide on the default one.
type Metrics struct {
	registry        *prometheus.Registry
	donationIntents *prometheus.CounterVec
	mediaUploads    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		donationIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_intents_total",
			Help:      "Donation requests by outcome.",
		}, []string{"outcome"}),
		mediaUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Media and report uploads by kind and outcome.",
		}, []string{"kind", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.donationIntents,
		m.mediaUploads,
		m.httpRequests,
	)
	return m
}

func (m *Metrics) DonationIntent(outcome string) {
	m.donationIntents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) MediaUpload(kind, outcome string) {
	m.mediaUploads.WithLabelValues(kind, outcome).Inc()
}

// Instrument counts requests passing through next.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.httpRequests, next)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
