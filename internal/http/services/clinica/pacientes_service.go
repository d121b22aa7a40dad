package clinica

import (
	"context"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/audit"
	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	"github.com/dropDatabas3/nutrigest/internal/validation"
)

// PacienteService define las operaciones sobre pacientes.
type PacienteService interface {
	List(ctx context.Context, profesionalID int64, q dto.ListPacientesQuery) (dto.ListPacientesResponse, error)
	Get(ctx context.Context, id int64) (dto.PacienteResponse, error)
	Create(ctx context.Context, profesionalID int64, req dto.CreatePacienteRequest) (dto.PacienteResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdatePacienteRequest) (dto.PacienteResponse, error)
	Resumen(ctx context.Context, id int64) (dto.ResumenPacienteResponse, error)
}

type pacienteService struct {
	deps Deps
}

// NewPacienteService crea el service de pacientes.
func NewPacienteService(d Deps) PacienteService {
	return &pacienteService{deps: d}
}

const componentPacientes = "clinica.pacientes"

func (s *pacienteService) List(ctx context.Context, profesionalID int64, q dto.ListPacientesQuery) (dto.ListPacientesResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPacientes),
		logger.Op("List"),
		logger.ProfesionalID(profesionalID),
	)

	filter := repository.ListPacientesFilter{
		Search: strings.TrimSpace(q.Search),
		Filter: strings.ToLower(strings.TrimSpace(q.Filter)),
		Sort:   strings.ToLower(strings.TrimSpace(q.Sort)),
	}
	switch filter.Filter {
	case "", repository.FiltroActivos, repository.FiltroInactivos:
	default:
		return dto.ListPacientesResponse{}, invalid("filter debe ser activos o inactivos")
	}
	switch filter.Sort {
	case "", repository.OrdenNombre, repository.OrdenApellido, repository.OrdenReciente:
	default:
		return dto.ListPacientesResponse{}, invalid("sort debe ser name, apellido o recent")
	}

	key := cache.PacientesListKey(profesionalID, filter.Search, filter.Filter, filter.Sort)
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL,
		func(ctx context.Context) (dto.ListPacientesResponse, error) {
			list, err := s.deps.DAL.Pacientes().List(ctx, profesionalID, filter)
			if err != nil {
				return dto.ListPacientesResponse{}, err
			}
			items := make([]dto.PacienteResponse, 0, len(list))
			for _, p := range list {
				items = append(items, toPacienteResponse(p))
			}
			return dto.ListPacientesResponse{Items: items, Total: len(items)}, nil
		})
	if err != nil {
		log.Error("failed to list pacientes", logger.Err(err))
		return dto.ListPacientesResponse{}, err
	}

	resp.Cached = cached
	log.Debug("pacientes listed", logger.Count(resp.Total), logger.CacheHit(cached))
	return resp, nil
}

func (s *pacienteService) Get(ctx context.Context, id int64) (dto.PacienteResponse, error) {
	p, err := s.deps.DAL.Pacientes().GetByID(ctx, id)
	if err != nil {
		return dto.PacienteResponse{}, err
	}
	return toPacienteResponse(*p), nil
}

func (s *pacienteService) Create(ctx context.Context, profesionalID int64, req dto.CreatePacienteRequest) (dto.PacienteResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPacientes),
		logger.Op("Create"),
		logger.ProfesionalID(profesionalID),
	)

	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Email = strings.TrimSpace(req.Email)
	if req.Nombre == "" {
		return dto.PacienteResponse{}, invalid("nombre es obligatorio")
	}
	if req.Email != "" && !validation.ValidEmail(req.Email) {
		return dto.PacienteResponse{}, invalid("email inválido")
	}

	input := repository.CreatePacienteInput{
		ProfesionalID: profesionalID,
		Nombre:        req.Nombre,
		Apellido:      strings.TrimSpace(req.Apellido),
		Email:         req.Email,
		Telefono:      strings.TrimSpace(req.Telefono),
		Sexo:          req.Sexo,
		Objetivo:      req.Objetivo,
	}
	if req.FechaNacimiento != "" {
		fn, err := parseDay("fecha_nacimiento", req.FechaNacimiento, s.deps.now())
		if err != nil {
			return dto.PacienteResponse{}, err
		}
		input.FechaNacimiento = &fn
	}

	p, err := s.deps.DAL.Pacientes().Create(ctx, input)
	if err != nil {
		log.Error("failed to create paciente", logger.Err(err))
		return dto.PacienteResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, p.ID, p.ProfesionalID)
	log.Info("paciente created", logger.PacienteID(p.ID))
	audit.Log(ctx, audit.PacienteCreated, logger.PacienteID(p.ID), logger.ProfesionalID(p.ProfesionalID))
	return toPacienteResponse(*p), nil
}

func (s *pacienteService) Update(ctx context.Context, id int64, req dto.UpdatePacienteRequest) (dto.PacienteResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPacientes),
		logger.Op("Update"),
		logger.PacienteID(id),
	)

	input := repository.UpdatePacienteInput{
		Apellido: req.Apellido,
		Telefono: req.Telefono,
		Sexo:     req.Sexo,
		Objetivo: req.Objetivo,
		Activo:   req.Activo,
	}
	if req.Nombre != nil {
		n := strings.TrimSpace(*req.Nombre)
		if n == "" {
			return dto.PacienteResponse{}, invalid("nombre no puede quedar vacío")
		}
		input.Nombre = &n
	}
	if req.Email != nil {
		e := strings.TrimSpace(*req.Email)
		if e != "" && !validation.ValidEmail(e) {
			return dto.PacienteResponse{}, invalid("email inválido")
		}
		input.Email = &e
	}
	if req.FechaNacimiento != nil {
		fn, err := parseDay("fecha_nacimiento", *req.FechaNacimiento, s.deps.now())
		if err != nil {
			return dto.PacienteResponse{}, err
		}
		input.FechaNacimiento = &fn
	}

	p, err := s.deps.DAL.Pacientes().Update(ctx, id, input)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to update paciente", logger.Err(err))
		}
		return dto.PacienteResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, p.ID, p.ProfesionalID)
	log.Info("paciente updated")
	audit.Log(ctx, audit.PacienteUpdated, logger.PacienteID(p.ID), logger.ProfesionalID(p.ProfesionalID))
	return toPacienteResponse(*p), nil
}

// Resumen arma la vista del portal del paciente: última medición, próxima
// consulta, plan activo y totales.
func (s *pacienteService) Resumen(ctx context.Context, id int64) (dto.ResumenPacienteResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPacientes),
		logger.Op("Resumen"),
		logger.PacienteID(id),
	)

	key := cache.PacienteKey(id, "resumen")
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL, s.loadResumen(id))
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to build resumen", logger.Err(err))
		}
		return dto.ResumenPacienteResponse{}, err
	}

	resp.Cached = cached
	log.Debug("resumen served", logger.CacheHit(cached))
	return resp, nil
}

func (s *pacienteService) loadResumen(id int64) func(context.Context) (dto.ResumenPacienteResponse, error) {
	return func(ctx context.Context) (dto.ResumenPacienteResponse, error) {
		dal := s.deps.DAL
		now := s.deps.now()

		p, err := dal.Pacientes().GetByID(ctx, id)
		if err != nil {
			return dto.ResumenPacienteResponse{}, err
		}
		resp := dto.ResumenPacienteResponse{
			Paciente:    toPacienteResponse(*p),
			GeneratedAt: now.UTC(),
		}

		if m, err := dal.Mediciones().Latest(ctx, id); err == nil {
			mr := toMedicionResponse(*m)
			resp.UltimaMedicion = &mr
		} else if !repository.IsNotFound(err) {
			return dto.ResumenPacienteResponse{}, err
		}

		if c, err := dal.Consultas().NextForPaciente(ctx, id, now); err == nil {
			cr := toConsultaResponse(*c)
			resp.ProximaConsulta = &cr
		} else if !repository.IsNotFound(err) {
			return dto.ResumenPacienteResponse{}, err
		}

		if pl, err := dal.Planes().Active(ctx, id); err == nil {
			pr := toPlanResponse(*pl)
			resp.PlanActivo = &pr
		} else if !repository.IsNotFound(err) {
			return dto.ResumenPacienteResponse{}, err
		}

		conteo, err := dal.Stats().Paciente(ctx, id)
		if err != nil {
			return dto.ResumenPacienteResponse{}, err
		}
		resp.Conteo = dto.ConteoResponse{
			Consultas:  conteo.Consultas,
			Mediciones: conteo.Mediciones,
			Comidas:    conteo.Comidas,
		}
		return resp, nil
	}
}
