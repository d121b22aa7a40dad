package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/nutrigest/internal/http/controllers/clinica"
)

// registerClinicaRoutes registra las rutas de pacientes, consultas y
// registros bajo /api.
func registerClinicaRoutes(r chi.Router, c *ctrl.Controllers) {
	r.Route("/profesionales/{profID}", func(r chi.Router) {
		r.Get("/pacientes", c.Pacientes.List)
		r.Post("/pacientes", c.Pacientes.Create)
		r.Get("/consultas", c.Consultas.List)
		r.Post("/consultas", c.Consultas.Create)
		r.Get("/estadisticas", c.Estadisticas.Profesional)
	})

	r.Route("/pacientes/{id}", func(r chi.Router) {
		r.Get("/", c.Pacientes.Get)
		r.Put("/", c.Pacientes.Update)
		r.Get("/resumen", c.Pacientes.Resumen)
		r.Get("/mediciones", c.Registros.ListMediciones)
		r.Post("/mediciones", c.Registros.CreateMedicion)
		r.Get("/comidas", c.Registros.ListComidas)
		r.Post("/comidas", c.Registros.CreateComida)
		r.Get("/planes", c.Registros.ListPlanes)
		r.Post("/planes", c.Registros.CreatePlan)
	})

	r.Route("/consultas/{id}", func(r chi.Router) {
		r.Get("/", c.Consultas.Get)
		r.Put("/", c.Consultas.Update)
		r.Post("/completar", c.Consultas.Completar)
		r.Post("/cancelar", c.Consultas.Cancelar)
		r.Post("/ausente", c.Consultas.Ausente)
	})
}
