// Package controllers agrupa todos los controllers HTTP.
// Este es el "composition root" de controllers: primero se crean los
// services (ver services.New), luego los controllers y por último el router.
package controllers

import (
	"github.com/dropDatabas3/nutrigest/internal/http/controllers/admin"
	"github.com/dropDatabas3/nutrigest/internal/http/controllers/clinica"
	"github.com/dropDatabas3/nutrigest/internal/http/controllers/health"
	"github.com/dropDatabas3/nutrigest/internal/http/services"
)

// Controllers agrupa todos los controllers por dominio.
type Controllers struct {
	Clinica *clinica.Controllers
	Admin   *admin.Controllers
	Health  *health.HealthController
}

// New crea todos los controllers inyectando los services.
func New(s *services.Services) *Controllers {
	return &Controllers{
		Clinica: clinica.NewControllers(s.Clinica),
		Admin:   admin.NewControllers(s.Admin),
		Health:  health.NewHealthController(s.Health),
	}
}
