// Package metrics exposes Prometheus counters for configuration operations.
//
// A Registry owns its own prometheus.Registry so tests never touch global state.
// A nil *Registry is valid and records nothing, which lets services run without
// metrics wired in.
//
// # Metrics
//
//   - site_settings_operations_total{operation,result}
//   - site_settings_template_resolutions_total{source}
//
// # Usage
//
//	reg := metrics.NewRegistry()
//	reg.Observe("save", err)
//	app.Get("/metrics", reg.FiberHandler())
package metrics
