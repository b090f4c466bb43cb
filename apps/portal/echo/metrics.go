package echoportal

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AhmedMostafa129/Mahd/core/guard"
)

// Metrics holds the portal's prometheus collectors on a registry of its own.
type Metrics struct {
	registry         *prometheus.Registry
	guardDecisions   *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mahd",
			Subsystem: "portal",
			Name:      "guard_decisions_total",
			Help:      "Route guard decisions by guard and outcome.",
		}, []string{"guard", "outcome"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mahd",
			Subsystem: "portal",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the Mahd API by response status class.",
		}, []string{"class"}),
	}
	m.registry.MustRegister(
		m.guardDecisions,
		m.upstreamRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveGuard(kind guard.Kind, d guard.Decision) {
	outcome := "allow"
	if !d.Allow {
		outcome = "redirect"
	}
	m.guardDecisions.WithLabelValues(string(kind), outcome).Inc()
}

// ObserveUpstream counts an API round trip; it is meant to be the api.Transport's Observe hook.
func (m *Metrics) ObserveUpstream(_ *http.Request, resp *http.Response, err error) {
	class := "error"
	if err == nil && resp != nil {
		class = fmt.Sprintf("%dxx", resp.StatusCode/100)
	}
	m.upstreamRequests.WithLabelValues(class).Inc()
}
