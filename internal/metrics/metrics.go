// Package metrics holds the Prometheus collectors for the client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the shopbox client.
type Metrics struct {
	OwnerChecksTotal  *prometheus.CounterVec
	ChannelConnects   prometheus.Counter
	ChannelReconnects prometheus.Counter
	ChannelConnected  prometheus.Gauge
	MessagesTotal     *prometheus.CounterVec
}

// New initializes and registers the collectors on the given registerer.
// The wiring passes the private registry also served at /metrics; tests
// use their own registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OwnerChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopbox",
			Subsystem: "ownership",
			Name:      "checks_total",
			Help:      "Total ownership resolutions by outcome.",
		}, []string{"outcome"}), // outcome: owner, not_owner, bypass, unauthenticated, error, stale
		ChannelConnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbox",
			Subsystem: "channel",
			Name:      "connects_total",
			Help:      "Total successful channel connections.",
		}),
		ChannelReconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shopbox",
			Subsystem: "channel",
			Name:      "reconnects_total",
			Help:      "Total reconnect attempts after a dropped connection.",
		}),
		ChannelConnected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "shopbox",
			Subsystem: "channel",
			Name:      "connected_gauge",
			Help:      "Whether the message channel is currently connected (1 or 0).",
		}),
		MessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopbox",
			Subsystem: "channel",
			Name:      "messages_total",
			Help:      "Total channel messages by direction, domain and verb.",
		}, []string{"direction", "domain", "verb"}), // direction: in, out
	}
}
