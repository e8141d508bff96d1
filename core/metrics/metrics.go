package metrics

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "site_settings"

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds the application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Operations counts lifecycle operations by name and outcome.
	Operations *prometheus.CounterVec
	// TemplateResolutions counts template resolutions by tier.
	TemplateResolutions *prometheus.CounterVec
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Configuration operations by operation and result",
		}, []string{"operation", "result"}),
		TemplateResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_resolutions_total",
			Help:      "Template resolutions by source tier",
		}, []string{"source"}),
	}
	r.registry.MustRegister(r.Operations, r.TemplateResolutions)
	return r
}

// Observe counts one operation; a non-nil err counts as an error.
func (r *Registry) Observe(operation string, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.Operations.WithLabelValues(operation, result).Inc()
}

// TemplateResolved counts one template resolution.
func (r *Registry) TemplateResolved(source string) {
	if r == nil {
		return
	}
	r.TemplateResolutions.WithLabelValues(source).Inc()
}

// Handler serves the metrics in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// FiberHandler adapts Handler for a fiber route.
func (r *Registry) FiberHandler() fiber.Handler {
	return adaptor.HTTPHandler(r.Handler())
}
