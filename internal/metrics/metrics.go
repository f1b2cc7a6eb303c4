package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chessmate"

// Collector records hub activity as Prometheus series.
type Collector struct {
	registry *prometheus.Registry

	connections prometheus.Gauge
	rooms       prometheus.Gauge
	presence    prometheus.Gauge
	intents     *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	ratings     prometheus.Counter
}

// New registers all collectors on a private registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open WebSocket connections.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Rooms held in the registry.",
		}),
		presence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "present_users",
			Help:      "Identified users in the presence roster.",
		}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Intents handled successfully, by event name.",
		}, []string{"intent"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_rejected_total",
			Help:      "Intents rejected, by error code.",
		}, []string{"code"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Outbound events not delivered, by event name.",
		}, []string{"event"}),
		ratings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rated_games_total",
			Help:      "Games that produced rating updates.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.connections, c.rooms, c.presence, c.intents, c.rejected, c.dropped, c.ratings,
	)
	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) ConnectionOpened()           { c.connections.Inc() }
func (c *Collector) ConnectionClosed()           { c.connections.Dec() }
func (c *Collector) RoomsLive(n int)             { c.rooms.Set(float64(n)) }
func (c *Collector) PresenceLive(n int)          { c.presence.Set(float64(n)) }
func (c *Collector) IntentHandled(intent string) { c.intents.WithLabelValues(intent).Inc() }
func (c *Collector) IntentRejected(code string)  { c.rejected.WithLabelValues(code).Inc() }
func (c *Collector) EventDropped(event string)   { c.dropped.WithLabelValues(event).Inc() }
func (c *Collector) RatingApplied()              { c.ratings.Inc() }
