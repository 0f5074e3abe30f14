package dispatch

import "github.com/prometheus/client_golang/prometheus"

var (
	queueTasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifeline",
			Subsystem: "dispatch",
			Name:      "tasks_total",
			Help:      "Tasks handled by a dispatch queue, by result",
		},
		[]string{"queue", "result"},
	)

	queuePending = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lifeline",
			Subsystem: "dispatch",
			Name:      "pending",
			Help:      "Tasks waiting in a dispatch queue",
		},
		[]string{"queue"},
	)
)

func init() {
	prometheus.MustRegister(queueTasksTotal, queuePending)
}
