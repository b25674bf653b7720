// Package metrics exposes Prometheus instrumentation for the relay.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	ActiveSessions  prometheus.Gauge
	SessionsStarted prometheus.Counter
	SessionsFailed  prometheus.Counter

	SegmentsForwarded prometheus.Counter
	SegmentsPersisted prometheus.Counter
	EventsDiscarded   prometheus.Counter

	AudioBytesForwarded prometheus.Counter
	PersistErrors       prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relay_active_sessions",
			Help: "Current number of live relay sessions",
		}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_sessions_started_total",
			Help: "Total number of relay sessions that reached the active state",
		}),
		SessionsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_sessions_failed_total",
			Help: "Total number of relay sessions that ended in the failed state",
		}),
		SegmentsForwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_segments_forwarded_total",
			Help: "Total number of transcript segments forwarded to clients",
		}),
		SegmentsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_segments_persisted_total",
			Help: "Total number of finalized segments written to the sink",
		}),
		EventsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_events_discarded_total",
			Help: "Total number of malformed upstream events discarded",
		}),
		AudioBytesForwarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_audio_bytes_forwarded_total",
			Help: "Total audio payload bytes forwarded upstream",
		}),
		PersistErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "relay_persist_errors_total",
			Help: "Total number of sink write failures (logged and swallowed)",
		}),
	}
}

func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
