package router

import "github.com/go-chi/chi/v5"

// registerHealthRoutes registra /readyz, /livez y el endpoint de métricas.
// Sin logging: son muy frecuentes.
func registerHealthRoutes(r chi.Router, deps Deps) {
	c := deps.Controllers.Health

	r.Get("/readyz", c.Readyz)
	r.Get("/livez", c.Livez)

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method("GET", path, deps.Metrics.Handler())
	}
}
