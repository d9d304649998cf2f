// Package metrics holds the prometheus collectors exposed on /metrics.
//
// Constructors return unregistered collectors; the composition root registers
// them so tests can use a private registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewHTTPRequestsTotal counts served HTTP requests by method, route and status.
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
}

// NewHTTPRequestDuration observes request latency by method, route and status.
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
}

// NewGeocoderRetriesTotal counts retry attempts performed against the geocoding provider.
func NewGeocoderRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geocoder_retries_total",
		Help: "Total number of retry attempts performed against the geocoding provider",
	})
}

// NewNotificationsTotal counts dispatched outbox messages by result (sent, failed).
func NewNotificationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of outbox messages handed to notifiers, by result",
		},
		[]string{"result"},
	)
}

// NewDeliveriesOverdue reports the number of active deliveries past their max delivery time.
func NewDeliveriesOverdue() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "deliveries_overdue",
		Help: "Number of active deliveries past their max delivery time",
	})
}

// Registry bundles every collector of the service.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GeocoderRetries     prometheus.Counter
	Notifications       *prometheus.CounterVec
	DeliveriesOverdue   prometheus.Gauge
}

// NewRegistry builds all collectors and registers them with reg.
func NewRegistry(reg prometheus.Registerer) (*Registry, error) {
	r := &Registry{
		HTTPRequestsTotal:   NewHTTPRequestsTotal(),
		HTTPRequestDuration: NewHTTPRequestDuration(),
		GeocoderRetries:     NewGeocoderRetriesTotal(),
		Notifications:       NewNotificationsTotal(),
		DeliveriesOverdue:   NewDeliveriesOverdue(),
	}
	for _, c := range []prometheus.Collector{
		r.HTTPRequestsTotal,
		r.HTTPRequestDuration,
		r.GeocoderRetries,
		r.Notifications,
		r.DeliveriesOverdue,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
