// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/health"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	DBCheck func(ctx context.Context) error // nil = sin base configurada
	Cache   cache.Store
	Timeout time.Duration // por componente, default 2s
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

// Check evalúa la base (crítica) y el cache (no crítico: sin cache los
// listados se sirven igual, solo más lentos).
func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
		Version:    os.Getenv("SERVICE_VERSION"),
		Commit:     os.Getenv("SERVICE_COMMIT"),
	}

	hasErrors := false
	hasCriticalErrors := false

	// 1) DB (crítico)
	if s.deps.DBCheck != nil {
		if err := s.probe(ctx, s.deps.DBCheck); err != nil {
			response.Components["db"] = dto.HealthStatus{Status: "error", Message: fmt.Sprintf("unavailable: %v", err)}
			hasCriticalErrors = true
			log.Error("db unavailable", logger.Err(err))
		} else {
			response.Components["db"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["db"] = dto.HealthStatus{Status: "error", Message: "not configured"}
		hasCriticalErrors = true
	}

	// 2) Cache
	switch {
	case s.deps.Cache == nil:
		response.Components["cache"] = dto.HealthStatus{Status: "disabled"}
	default:
		driver := s.deps.Cache.Stats(ctx).Driver
		status := dto.HealthStatus{Status: "ok", Message: driver}
		if p, ok := s.deps.Cache.(cache.Pinger); ok {
			if err := s.probe(ctx, p.Ping); err != nil {
				status = dto.HealthStatus{Status: "error", Message: fmt.Sprintf("%s unavailable: %v", driver, err)}
				hasErrors = true
				log.Warn("cache unavailable", logger.Err(err))
			}
		}
		response.Components["cache"] = status
	}

	switch {
	case hasCriticalErrors:
		response.Status = "unavailable"
	case hasErrors:
		response.Status = "degraded"
	default:
		response.Status = "ready"
	}
	return response
}

func (s *healthService) probe(ctx context.Context, check func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()
	return check(ctx)
}
