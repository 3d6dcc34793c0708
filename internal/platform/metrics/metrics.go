// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus instruments exported on /metrics.

Each [Metrics] value carries its own registry, so tests can build as many
as they need without colliding on the global default registerer.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

// Upload outcome label values.
const (
	UploadCommitted = "committed"
	UploadFailed    = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	// SlugCollisions counts every taken candidate seen during slug assignment.
	SlugCollisions *prometheus.CounterVec

	// Uploads counts ingested files by outcome.
	Uploads *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		SlugCollisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_collisions_total",
			Help:      "Slug candidates rejected because another item of the same kind holds them.",
		}, []string{"kind"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded images processed, by outcome.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SlugCollisions,
		m.Uploads,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
