package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/nutrigest/internal/http/controllers/admin"
)

// registerAdminRoutes registra la administración del cache bajo /api/admin.
func registerAdminRoutes(r chi.Router, c *ctrl.Controllers) {
	r.Route("/admin/cache", func(r chi.Router) {
		r.Get("/stats", c.Cache.Stats)
		r.Post("/clear", c.Cache.Clear)
		r.Post("/invalidate", c.Cache.Invalidate)
	})
}
