package clinica

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// MedicionService define las operaciones sobre mediciones.
type MedicionService interface {
	List(ctx context.Context, pacienteID int64) (dto.ListMedicionesResponse, error)
	Create(ctx context.Context, pacienteID int64, req dto.CreateMedicionRequest) (dto.MedicionResponse, error)
}

// ComidaService define las operaciones sobre registros de comidas.
type ComidaService interface {
	List(ctx context.Context, pacienteID int64, fecha *time.Time) (dto.ListComidasResponse, error)
	Create(ctx context.Context, pacienteID int64, req dto.CreateComidaRequest) (dto.ComidaResponse, error)
}

// PlanService define las operaciones sobre planes de dieta.
type PlanService interface {
	List(ctx context.Context, pacienteID int64) (dto.ListPlanesResponse, error)
	Create(ctx context.Context, pacienteID int64, req dto.CreatePlanRequest) (dto.PlanResponse, error)
}

const (
	componentMediciones = "clinica.mediciones"
	componentComidas    = "clinica.comidas"
	componentPlanes     = "clinica.planes"

	// maxMediciones limita el historial devuelto.
	maxMediciones = 100
)

// ─── Mediciones ───

type medicionService struct {
	deps Deps
}

// NewMedicionService crea el service de mediciones.
func NewMedicionService(d Deps) MedicionService {
	return &medicionService{deps: d}
}

func (s *medicionService) List(ctx context.Context, pacienteID int64) (dto.ListMedicionesResponse, error) {
	key := cache.PacienteKey(pacienteID, "mediciones")
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL,
		func(ctx context.Context) (dto.ListMedicionesResponse, error) {
			if _, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID); err != nil {
				return dto.ListMedicionesResponse{}, err
			}
			list, err := s.deps.DAL.Mediciones().ListByPaciente(ctx, pacienteID, maxMediciones)
			if err != nil {
				return dto.ListMedicionesResponse{}, err
			}
			items := make([]dto.MedicionResponse, 0, len(list))
			for _, m := range list {
				items = append(items, toMedicionResponse(m))
			}
			return dto.ListMedicionesResponse{Items: items}, nil
		})
	if err != nil {
		return dto.ListMedicionesResponse{}, err
	}
	resp.Cached = cached
	return resp, nil
}

func (s *medicionService) Create(ctx context.Context, pacienteID int64, req dto.CreateMedicionRequest) (dto.MedicionResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentMediciones),
		logger.Op("Create"),
		logger.PacienteID(pacienteID),
	)

	if req.PesoKg == nil && req.TallaCm == nil && req.CinturaCm == nil && req.GrasaPct == nil {
		return dto.MedicionResponse{}, invalid("la medición no tiene valores")
	}
	for field, v := range map[string]*float64{"peso_kg": req.PesoKg, "talla_cm": req.TallaCm, "cintura_cm": req.CinturaCm} {
		if v != nil && *v <= 0 {
			return dto.MedicionResponse{}, invalid("%s debe ser positivo", field)
		}
	}
	if req.GrasaPct != nil && (*req.GrasaPct < 0 || *req.GrasaPct > 100) {
		return dto.MedicionResponse{}, invalid("grasa_pct debe estar entre 0 y 100")
	}
	fecha, err := parseDay("fecha", req.Fecha, s.deps.now())
	if err != nil {
		return dto.MedicionResponse{}, err
	}

	p, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID)
	if err != nil {
		return dto.MedicionResponse{}, err
	}

	input := repository.CreateMedicionInput{
		PacienteID: pacienteID,
		Fecha:      fecha,
		PesoKg:     req.PesoKg,
		TallaCm:    req.TallaCm,
		CinturaCm:  req.CinturaCm,
		GrasaPct:   req.GrasaPct,
		Notas:      strings.TrimSpace(req.Notas),
	}
	if imc, ok := repository.CalcularIMC(req.PesoKg, req.TallaCm); ok {
		input.IMC = &imc
	}

	m, err := s.deps.DAL.Mediciones().Create(ctx, input)
	if err != nil {
		log.Error("failed to create medicion", logger.Err(err))
		return dto.MedicionResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, pacienteID, p.ProfesionalID)
	log.Info("medicion created", logger.Int64("medicion_id", m.ID))
	return toMedicionResponse(*m), nil
}

// ─── Comidas ───

type comidaService struct {
	deps Deps
}

// NewComidaService crea el service de registros de comidas.
func NewComidaService(d Deps) ComidaService {
	return &comidaService{deps: d}
}

func (s *comidaService) List(ctx context.Context, pacienteID int64, fecha *time.Time) (dto.ListComidasResponse, error) {
	key := cache.PacienteKey(pacienteID, "comidas", formatDayPtr(fecha))
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL,
		func(ctx context.Context) (dto.ListComidasResponse, error) {
			if _, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID); err != nil {
				return dto.ListComidasResponse{}, err
			}
			list, err := s.deps.DAL.Comidas().ListByPaciente(ctx, pacienteID, fecha)
			if err != nil {
				return dto.ListComidasResponse{}, err
			}
			items := make([]dto.ComidaResponse, 0, len(list))
			for _, c := range list {
				items = append(items, toComidaResponse(c))
			}
			return dto.ListComidasResponse{Items: items}, nil
		})
	if err != nil {
		return dto.ListComidasResponse{}, err
	}
	resp.Cached = cached
	return resp, nil
}

func (s *comidaService) Create(ctx context.Context, pacienteID int64, req dto.CreateComidaRequest) (dto.ComidaResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentComidas),
		logger.Op("Create"),
		logger.PacienteID(pacienteID),
	)

	tipo := strings.ToLower(strings.TrimSpace(req.Tipo))
	if !repository.TipoComidaValido(tipo) {
		return dto.ComidaResponse{}, invalid("tipo debe ser desayuno, almuerzo, merienda, cena o colacion")
	}
	desc := strings.TrimSpace(req.Descripcion)
	if desc == "" {
		return dto.ComidaResponse{}, invalid("descripcion es obligatoria")
	}
	if req.Calorias != nil && *req.Calorias < 0 {
		return dto.ComidaResponse{}, invalid("calorias no puede ser negativo")
	}
	fecha, err := parseDay("fecha", req.Fecha, s.deps.now())
	if err != nil {
		return dto.ComidaResponse{}, err
	}

	p, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID)
	if err != nil {
		return dto.ComidaResponse{}, err
	}

	c, err := s.deps.DAL.Comidas().Create(ctx, repository.CreateComidaInput{
		PacienteID:  pacienteID,
		Fecha:       fecha,
		Tipo:        tipo,
		Descripcion: desc,
		Calorias:    req.Calorias,
	})
	if err != nil {
		log.Error("failed to create registro de comida", logger.Err(err))
		return dto.ComidaResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, pacienteID, p.ProfesionalID)
	log.Info("registro de comida created", logger.Int64("comida_id", c.ID))
	return toComidaResponse(*c), nil
}

// ─── Planes ───

type planService struct {
	deps Deps
}

// NewPlanService crea el service de planes de dieta.
func NewPlanService(d Deps) PlanService {
	return &planService{deps: d}
}

func (s *planService) List(ctx context.Context, pacienteID int64) (dto.ListPlanesResponse, error) {
	key := cache.PacienteKey(pacienteID, "planes")
	resp, cached, err := cache.Remember(ctx, s.deps.Memo, key, s.deps.ListTTL,
		func(ctx context.Context) (dto.ListPlanesResponse, error) {
			if _, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID); err != nil {
				return dto.ListPlanesResponse{}, err
			}
			list, err := s.deps.DAL.Planes().ListByPaciente(ctx, pacienteID)
			if err != nil {
				return dto.ListPlanesResponse{}, err
			}
			items := make([]dto.PlanResponse, 0, len(list))
			for _, p := range list {
				items = append(items, toPlanResponse(p))
			}
			return dto.ListPlanesResponse{Items: items}, nil
		})
	if err != nil {
		return dto.ListPlanesResponse{}, err
	}
	resp.Cached = cached
	return resp, nil
}

func (s *planService) Create(ctx context.Context, pacienteID int64, req dto.CreatePlanRequest) (dto.PlanResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPlanes),
		logger.Op("Create"),
		logger.PacienteID(pacienteID),
	)

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.PlanResponse{}, invalid("nombre es obligatorio")
	}
	if req.CaloriasDiarias != nil && *req.CaloriasDiarias <= 0 {
		return dto.PlanResponse{}, invalid("calorias_diarias debe ser positivo")
	}
	inicio, err := parseDay("fecha_inicio", req.FechaInicio, s.deps.now())
	if err != nil {
		return dto.PlanResponse{}, err
	}
	var fin *time.Time
	if req.FechaFin != "" {
		f, err := parseDay("fecha_fin", req.FechaFin, s.deps.now())
		if err != nil {
			return dto.PlanResponse{}, err
		}
		if f.Before(inicio) {
			return dto.PlanResponse{}, invalid("fecha_fin es anterior a fecha_inicio")
		}
		fin = &f
	}

	p, err := s.deps.DAL.Pacientes().GetByID(ctx, pacienteID)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	plan, err := s.deps.DAL.Planes().Create(ctx, repository.CreatePlanInput{
		PacienteID:      pacienteID,
		ProfesionalID:   p.ProfesionalID,
		Nombre:          nombre,
		Descripcion:     strings.TrimSpace(req.Descripcion),
		CaloriasDiarias: req.CaloriasDiarias,
		FechaInicio:     inicio,
		FechaFin:        fin,
	})
	if err != nil {
		log.Error("failed to create plan", logger.Err(err))
		return dto.PlanResponse{}, err
	}

	s.deps.Invalidator.Paciente(ctx, pacienteID, p.ProfesionalID)
	log.Info("plan created", logger.Int64("plan_id", plan.ID))
	return toPlanResponse(*plan), nil
}
