package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ConnectedClients *prometheus.GaugeVec
	OrdersCreated    prometheus.Counter
	OrdersUpdated    prometheus.Counter
	EventsPushed     *prometheus.CounterVec
}

// New registers the service metrics against reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConnectedClients: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderdash_connected_clients",
			Help: "Number of websocket connections with a declared role",
		}, []string{"role"}),
		OrdersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "orderdash_orders_created_total",
			Help: "Total number of orders created",
		}),
		OrdersUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "orderdash_orders_updated_total",
			Help: "Total number of order status updates",
		}),
		EventsPushed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orderdash_events_pushed_total",
			Help: "Total number of events pushed to live connections",
		}, []string{"event"}),
	}
}
