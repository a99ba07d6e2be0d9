// Package metrics holds the Prometheus collectors of the UI server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meshx"

// Collector owns a private registry so several servers (and tests) can
// coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	Events       *prometheus.CounterVec
	Rejected     *prometheus.CounterVec
	Patches      *prometheus.CounterVec
	Viewers      prometheus.Gauge
	GraphReloads *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ui_events_total",
				Help:      "Pointer events applied to viewer state",
			},
			[]string{"kind"},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ui_events_rejected_total",
				Help:      "Pointer events rejected before reaching viewer state",
			},
			[]string{"reason"},
		),
		Patches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ui_patches_total",
				Help:      "Element patches sent over SSE",
			},
			[]string{"target"},
		),
		Viewers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ui_viewers",
				Help:      "Viewers with live interaction state",
			},
		),
		GraphReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_reloads_total",
				Help:      "Lineage graph file reloads",
			},
			[]string{"result"},
		),
	}

	c.registry.MustRegister(c.Events, c.Rejected, c.Patches, c.Viewers, c.GraphReloads)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
