// Package services agrupa todos los services HTTP.
// Este es el "composition root" de services: cada dominio expone su
// aggregator (Services) y su Deps, y New los arma a partir de Deps.
package services

import (
	"time"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	"github.com/dropDatabas3/nutrigest/internal/http/services/admin"
	"github.com/dropDatabas3/nutrigest/internal/http/services/clinica"
	"github.com/dropDatabas3/nutrigest/internal/http/services/health"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	DAL      repository.DataAccess
	Cache    cache.Store
	Notifier clinica.Notifier // opcional

	// ─── Configuración ───
	ListTTL  time.Duration
	StatsTTL time.Duration
}

// Services agrupa todos los sub-services por dominio.
type Services struct {
	Clinica clinica.Services
	Admin   admin.Services
	Health  health.HealthService
}

// New crea todos los services. El Memo (singleflight) y el Invalidator se
// comparten entre dominios.
func New(d Deps) *Services {
	memo := cache.NewMemo(d.Cache)
	inv := cache.NewInvalidator(d.Cache)

	healthDeps := health.Deps{Cache: d.Cache}
	if d.DAL != nil {
		healthDeps.DBCheck = d.DAL.Ping
	}

	return &Services{
		Clinica: clinica.NewServices(clinica.Deps{
			DAL:         d.DAL,
			Memo:        memo,
			Invalidator: inv,
			Notifier:    d.Notifier,
			ListTTL:     d.ListTTL,
			StatsTTL:    d.StatsTTL,
		}),
		Admin:  admin.NewServices(d.Cache),
		Health: health.NewHealthService(healthDeps),
	}
}
