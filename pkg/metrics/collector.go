package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/pathfinder/pkg/pathfinder"
)

// Collector records engine events into Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	commandsTotal    *prometheus.CounterVec
	batchesBuffered  prometheus.Counter
	batchesDelivered prometheus.Counter
	pendingBatches   prometheus.Gauge
	commandErrors    *prometheus.CounterVec
	stackDepth       prometheus.Gauge
	dialogShown      prometheus.Gauge
	lifecycleState   prometheus.Gauge
}

// NewCollector creates a collector whose metric names start with
// namespace ("pathfinder" when empty).
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "pathfinder"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands delivered to a navigator, by op name",
		},
		[]string{"command"},
	)

	c.batchesBuffered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "buffer",
		Name:      "batches_buffered_total",
		Help:      "Batches queued because no navigator was attached",
	})

	c.batchesDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "buffer",
		Name:      "batches_delivered_total",
		Help:      "Batches executed successfully by a navigator",
	})

	c.pendingBatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "buffer",
		Name:      "pending_batches",
		Help:      "Batches waiting for a navigator",
	})

	c.commandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Batches rejected by a navigator, by error kind",
		},
		[]string{"kind"},
	)

	c.stackDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stack",
		Name:      "depth",
		Help:      "Screens on the attached navigator's back stack",
	})

	c.dialogShown = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "stack",
		Name:      "dialog_shown",
		Help:      "1 while the overlay slot holds a dialog",
	})

	c.lifecycleState = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "lifecycle_state",
		Help:      "Current lifecycle state (0=stopped, 1=starting, 2=running, 3=stopping, 4=crashed)",
	})

	c.registry.MustRegister(
		c.commandsTotal,
		c.batchesBuffered,
		c.batchesDelivered,
		c.pendingBatches,
		c.commandErrors,
		c.stackDepth,
		c.dialogShown,
		c.lifecycleState,
	)

	return c
}

// Registry returns the Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// OnStateChange implements pathfinder.EventHandler.
func (c *Collector) OnStateChange(e pathfinder.StateChangeEvent) {
	c.lifecycleState.Set(float64(e.Current))
}

// OnBatchBuffered implements pathfinder.EventHandler.
func (c *Collector) OnBatchBuffered(e pathfinder.BatchEvent) {
	c.batchesBuffered.Inc()
	c.pendingBatches.Set(float64(e.Pending))
}

// OnBatchDelivered implements pathfinder.EventHandler.
func (c *Collector) OnBatchDelivered(e pathfinder.BatchEvent) {
	c.batchesDelivered.Inc()
	c.pendingBatches.Set(float64(e.Pending))
	for _, name := range e.Commands {
		c.commandsTotal.WithLabelValues(name).Inc()
	}
}

// OnCommandError implements pathfinder.EventHandler.
func (c *Collector) OnCommandError(e pathfinder.CommandErrorEvent) {
	c.commandErrors.WithLabelValues(e.Kind).Inc()
	c.pendingBatches.Set(float64(e.Pending))
}

// OnStackChange implements pathfinder.EventHandler.
func (c *Collector) OnStackChange(e pathfinder.StackChangeEvent) {
	c.stackDepth.Set(float64(len(e.Keys)))
	if e.DialogShown {
		c.dialogShown.Set(1)
	} else {
		c.dialogShown.Set(0)
	}
}

var _ pathfinder.EventHandler = (*Collector)(nil)
