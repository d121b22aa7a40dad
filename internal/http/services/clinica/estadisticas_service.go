package clinica

import (
	"context"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// EstadisticasService calcula el dashboard de un profesional.
type EstadisticasService interface {
	Profesional(ctx context.Context, profesionalID int64) (dto.EstadisticasResponse, error)
}

type estadisticasService struct {
	deps Deps
}

// NewEstadisticasService crea el service de estadísticas.
func NewEstadisticasService(d Deps) EstadisticasService {
	return &estadisticasService{deps: d}
}

const componentEstadisticas = "clinica.estadisticas"

func (s *estadisticasService) Profesional(ctx context.Context, profesionalID int64) (dto.EstadisticasResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentEstadisticas),
		logger.Op("Profesional"),
		logger.ProfesionalID(profesionalID),
	)

	key := cache.StatsKey(profesionalID, "dashboard")
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.StatsTTL,
		func(ctx context.Context) (dto.EstadisticasResponse, error) {
			st, err := s.deps.DAL.Stats().Profesional(ctx, profesionalID, s.deps.now())
			if err != nil {
				return dto.EstadisticasResponse{}, err
			}
			porEstado := make(map[string]int, len(st.ConsultasPorEstado))
			for e, n := range st.ConsultasPorEstado {
				porEstado[string(e)] = n
			}
			return dto.EstadisticasResponse{
				ProfesionalID:      profesionalID,
				TotalPacientes:     st.TotalPacientes,
				PacientesActivos:   st.PacientesActivos,
				ConsultasPorEstado: porEstado,
				ConsultasMes:       st.ConsultasMes,
				TasaAsistencia:     st.TasaAsistencia,
				GeneratedAt:        st.GeneratedAt,
			}, nil
		})
	if err != nil {
		log.Error("failed to compute estadisticas", logger.Err(err))
		return dto.EstadisticasResponse{}, err
	}

	resp.Cached = cached
	log.Debug("estadisticas served", logger.CacheHit(cached))
	return resp, nil
}
