package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the gateway.
type Metrics struct {
	VendorRequests  *prometheus.CounterVec
	VendorLatency   *prometheus.HistogramVec
	SettingsOps     *prometheus.CounterVec
	DevLogins       *prometheus.CounterVec
	ActivePlaybacks prometheus.Gauge
	EventClients    prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		VendorRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_requests_total",
			Help:      "Speech vendor requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		VendorLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vendor_latency_ms",
			Help:      "Speech vendor round-trip latency in milliseconds.",
			Buckets:   []float64{100, 200, 300, 500, 700, 900, 1200, 2000, 5000},
		}, []string{"op"}),
		SettingsOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_settings_ops_total",
			Help:      "Voice settings reads and writes by outcome.",
		}, []string{"op", "outcome"}),
		DevLogins: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dev_logins_total",
			Help:      "Dev-login attempts by role.",
		}, []string{"role"}),
		ActivePlaybacks: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_playbacks",
			Help:      "Playbacks currently running on the local device.",
		}),
		EventClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_clients",
			Help:      "Connected dev event feed clients.",
		}),
	}
}

func (m *Metrics) ObserveVendor(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.VendorRequests.WithLabelValues(op, outcome).Inc()
	m.VendorLatency.WithLabelValues(op).Observe(float64(time.Since(start).Milliseconds()))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
