package lifecycle

import "github.com/prometheus/client_golang/prometheus"

var (
	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifeline",
			Subsystem: "entity",
			Name:      "transitions_total",
			Help:      "Entity state transitions, by target state",
		},
		[]string{"to"},
	)

	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifeline",
			Subsystem: "entity",
			Name:      "notifications_total",
			Help:      "Observer notifications, by kind and result",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	prometheus.MustRegister(transitionsTotal, notificationsTotal)
}
