package clinica

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/audit"
	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// ConsultaService define las operaciones sobre consultas.
type ConsultaService interface {
	List(ctx context.Context, profesionalID int64, q dto.ListConsultasQuery) (dto.ListConsultasResponse, error)
	Get(ctx context.Context, id int64) (dto.ConsultaResponse, error)
	Create(ctx context.Context, profesionalID int64, req dto.CreateConsultaRequest) (dto.ConsultaResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateConsultaRequest) (dto.ConsultaResponse, error)
	Completar(ctx context.Context, id int64) (dto.ConsultaResponse, error)
	Cancelar(ctx context.Context, id int64) (dto.ConsultaResponse, error)
	MarcarAusente(ctx context.Context, id int64) (dto.ConsultaResponse, error)
}

type consultaService struct {
	deps Deps
}

// NewConsultaService crea el service de consultas.
func NewConsultaService(d Deps) ConsultaService {
	return &consultaService{deps: d}
}

const (
	componentConsultas = "clinica.consultas"
	defaultDuracionMin = 30
	maxDuracionMin     = 480
)

func (s *consultaService) List(ctx context.Context, profesionalID int64, q dto.ListConsultasQuery) (dto.ListConsultasResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsultas),
		logger.Op("List"),
		logger.ProfesionalID(profesionalID),
	)

	estado := repository.EstadoConsulta(strings.ToLower(strings.TrimSpace(q.Estado)))
	if estado != "" && !estado.Valid() {
		return dto.ListConsultasResponse{}, invalid("estado desconocido: %s", q.Estado)
	}
	if q.Desde != nil && q.Hasta != nil && q.Hasta.Before(*q.Desde) {
		return dto.ListConsultasResponse{}, invalid("hasta es anterior a desde")
	}

	filter := repository.ListConsultasFilter{Estado: estado, Desde: q.Desde, Hasta: q.Hasta}
	key := cache.ConsultasListKey(profesionalID, string(estado), formatDayPtr(q.Desde), formatDayPtr(q.Hasta))

	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL,
		func(ctx context.Context) (dto.ListConsultasResponse, error) {
			list, err := s.deps.DAL.Consultas().List(ctx, profesionalID, filter)
			if err != nil {
				return dto.ListConsultasResponse{}, err
			}
			items := make([]dto.ConsultaResponse, 0, len(list))
			for _, c := range list {
				items = append(items, toConsultaResponse(c))
			}
			return dto.ListConsultasResponse{Items: items, Total: len(items)}, nil
		})
	if err != nil {
		log.Error("failed to list consultas", logger.Err(err))
		return dto.ListConsultasResponse{}, err
	}

	resp.Cached = cached
	log.Debug("consultas listed", logger.Count(resp.Total), logger.CacheHit(cached))
	return resp, nil
}

func (s *consultaService) Get(ctx context.Context, id int64) (dto.ConsultaResponse, error) {
	c, err := s.deps.DAL.Consultas().GetByID(ctx, id)
	if err != nil {
		return dto.ConsultaResponse{}, err
	}
	return toConsultaResponse(*c), nil
}

func (s *consultaService) Create(ctx context.Context, profesionalID int64, req dto.CreateConsultaRequest) (dto.ConsultaResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsultas),
		logger.Op("Create"),
		logger.ProfesionalID(profesionalID),
		logger.PacienteID(req.PacienteID),
	)

	if req.PacienteID <= 0 {
		return dto.ConsultaResponse{}, invalid("paciente_id es obligatorio")
	}
	if req.FechaHora.IsZero() {
		return dto.ConsultaResponse{}, invalid("fecha_hora es obligatoria")
	}
	if req.DuracionMin == 0 {
		req.DuracionMin = defaultDuracionMin
	}
	if req.DuracionMin < 0 || req.DuracionMin > maxDuracionMin {
		return dto.ConsultaResponse{}, invalid("duracion_min debe estar entre 1 y %d", maxDuracionMin)
	}

	p, err := s.deps.DAL.Pacientes().GetByID(ctx, req.PacienteID)
	if err != nil {
		return dto.ConsultaResponse{}, err
	}
	if p.ProfesionalID != profesionalID {
		return dto.ConsultaResponse{}, invalid("el paciente no pertenece al profesional")
	}

	c, err := s.deps.DAL.Consultas().Create(ctx, repository.CreateConsultaInput{
		ProfesionalID: profesionalID,
		PacienteID:    p.ID,
		FechaHora:     req.FechaHora.UTC(),
		DuracionMin:   req.DuracionMin,
		Motivo:        strings.TrimSpace(req.Motivo),
	})
	if err != nil {
		log.Error("failed to create consulta", logger.Err(err))
		return dto.ConsultaResponse{}, err
	}
	if c.PacienteNombre == "" {
		c.PacienteNombre = p.NombreCompleto()
	}
	if c.PacienteEmail == "" {
		c.PacienteEmail = p.Email
	}

	s.deps.Invalidator.Paciente(ctx, c.PacienteID, c.ProfesionalID)
	log.Info("consulta created", logger.ConsultaID(c.ID))
	audit.Log(ctx, audit.ConsultaCreated, logger.ConsultaID(c.ID), logger.PacienteID(c.PacienteID), logger.ProfesionalID(c.ProfesionalID))

	s.notify(ctx, c)
	return toConsultaResponse(*c), nil
}

func (s *consultaService) Update(ctx context.Context, id int64, req dto.UpdateConsultaRequest) (dto.ConsultaResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsultas),
		logger.Op("Update"),
		logger.ConsultaID(id),
	)

	if req.DuracionMin != nil && (*req.DuracionMin <= 0 || *req.DuracionMin > maxDuracionMin) {
		return dto.ConsultaResponse{}, invalid("duracion_min debe estar entre 1 y %d", maxDuracionMin)
	}

	current, err := s.deps.DAL.Consultas().GetByID(ctx, id)
	if err != nil {
		return dto.ConsultaResponse{}, err
	}
	// Solo una consulta programada se puede reprogramar.
	if (req.FechaHora != nil || req.DuracionMin != nil) && current.Estado != repository.EstadoProgramada {
		return dto.ConsultaResponse{}, fmt.Errorf("%w: consulta %s no se puede reprogramar", repository.ErrConflict, current.Estado)
	}

	input := repository.UpdateConsultaInput{
		DuracionMin: req.DuracionMin,
		Motivo:      req.Motivo,
		Notas:       req.Notas,
	}
	if req.FechaHora != nil {
		fh := req.FechaHora.UTC()
		input.FechaHora = &fh
	}

	c, err := s.deps.DAL.Consultas().Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update consulta", logger.Err(err))
		return dto.ConsultaResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, c.PacienteID, c.ProfesionalID)
	log.Info("consulta updated")
	return toConsultaResponse(*c), nil
}

func (s *consultaService) Completar(ctx context.Context, id int64) (dto.ConsultaResponse, error) {
	return s.transition(ctx, id, repository.EstadoCompletada)
}

func (s *consultaService) Cancelar(ctx context.Context, id int64) (dto.ConsultaResponse, error) {
	return s.transition(ctx, id, repository.EstadoCancelada)
}

func (s *consultaService) MarcarAusente(ctx context.Context, id int64) (dto.ConsultaResponse, error) {
	return s.transition(ctx, id, repository.EstadoAusente)
}

// transition aplica programada -> to. Cualquier otro estado de origen es un
// conflicto.
func (s *consultaService) transition(ctx context.Context, id int64, to repository.EstadoConsulta) (dto.ConsultaResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentConsultas),
		logger.Op("Transition"),
		logger.ConsultaID(id),
		logger.Estado(string(to)),
	)

	current, err := s.deps.DAL.Consultas().GetByID(ctx, id)
	if err != nil {
		return dto.ConsultaResponse{}, err
	}
	if !current.Estado.CanTransitionTo(to) {
		return dto.ConsultaResponse{}, fmt.Errorf("%w: consulta %s no puede pasar a %s", repository.ErrConflict, current.Estado, to)
	}

	c, err := s.deps.DAL.Consultas().SetEstado(ctx, id, current.Estado, to)
	if err != nil {
		if !repository.IsConflict(err) {
			log.Error("failed to change estado", logger.Err(err))
		}
		return dto.ConsultaResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, c.PacienteID, c.ProfesionalID)
	log.Info("consulta estado changed", logger.String("from", string(current.Estado)))
	audit.Log(ctx, audit.ConsultaEstado, logger.ConsultaID(c.ID), logger.String("from", string(current.Estado)), logger.Estado(string(to)))

	if to == repository.EstadoCancelada {
		s.notify(ctx, c)
	}
	return toConsultaResponse(*c), nil
}

// notify envía el aviso correspondiente al estado. Un fallo se loguea y no
// afecta la respuesta.
func (s *consultaService) notify(ctx context.Context, c *repository.Consulta) {
	if s.deps.Notifier == nil {
		return
	}
	var err error
	switch c.Estado {
	case repository.EstadoProgramada:
		err = s.deps.Notifier.ConsultaProgramada(ctx, c)
	case repository.EstadoCancelada:
		err = s.deps.Notifier.ConsultaCancelada(ctx, c)
	default:
		return
	}
	if err != nil {
		logger.From(ctx).Warn("consulta notification failed",
			logger.Component(componentConsultas),
			logger.ConsultaID(c.ID),
			logger.Err(err),
		)
	}
}
