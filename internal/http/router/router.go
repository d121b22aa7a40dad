// Package router define las rutas HTTP del servicio sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/nutrigest/internal/http/controllers"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	mw "github.com/dropDatabas3/nutrigest/internal/http/middlewares"
)

// MetricsProvider instrumenta requests y expone el endpoint de scraping.
type MetricsProvider interface {
	WithMetrics(next http.Handler) http.Handler
	Handler() http.Handler
}

// Deps contiene todo lo necesario para armar el router.
type Deps struct {
	Controllers *controllers.Controllers

	CORSOrigins []string
	RateLimit   mw.RateLimitConfig // Limiter nil = sin rate limit

	Metrics     MetricsProvider // opcional
	MetricsPath string          // default /metrics
}

// New arma el handler raíz. Health y métricas quedan fuera del chain de
// logging y rate limit.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRecover(), mw.WithRequestID())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.WithMetrics)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	registerHealthRoutes(r, deps)

	r.Route("/api", func(api chi.Router) {
		api.Use(apiChain(deps))
		registerClinicaRoutes(api, deps.Controllers.Clinica)
		registerAdminRoutes(api, deps.Controllers.Admin)
	})

	return r
}

// apiChain agrupa los middlewares de /api en el orden en que se ejecutan.
func apiChain(deps Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw.Chain(next,
			mw.WithSecurityHeaders(),
			mw.WithCORS(deps.CORSOrigins),
			mw.WithLogging(),
			mw.WithRateLimit(deps.RateLimit),
		)
	}
}
