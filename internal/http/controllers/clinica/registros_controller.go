package clinica

import (
	"net/http"

	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	"github.com/dropDatabas3/nutrigest/internal/http/helpers"
	svc "github.com/dropDatabas3/nutrigest/internal/http/services/clinica"
)

// RegistrosController maneja mediciones, comidas y planes de un paciente.
type RegistrosController struct {
	mediciones svc.MedicionService
	comidas    svc.ComidaService
	planes     svc.PlanService
}

// NewRegistrosController crea el controller de registros del paciente.
func NewRegistrosController(m svc.MedicionService, c svc.ComidaService, p svc.PlanService) *RegistrosController {
	return &RegistrosController{mediciones: m, comidas: c, planes: p}
}

// ListMediciones maneja GET /api/pacientes/{id}/mediciones
func (c *RegistrosController) ListMediciones(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.mediciones.List(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// CreateMedicion maneja POST /api/pacientes/{id}/mediciones
func (c *RegistrosController) CreateMedicion(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	var req dto.CreateMedicionRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.mediciones.Create(r.Context(), id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// ListComidas maneja GET /api/pacientes/{id}/comidas?fecha=
func (c *RegistrosController) ListComidas(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	fecha, err := helpers.QueryDate(r, "fecha")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.comidas.List(r.Context(), id, fecha)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// CreateComida maneja POST /api/pacientes/{id}/comidas
func (c *RegistrosController) CreateComida(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	var req dto.CreateComidaRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.comidas.Create(r.Context(), id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// ListPlanes maneja GET /api/pacientes/{id}/planes
func (c *RegistrosController) ListPlanes(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.planes.List(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// CreatePlan maneja POST /api/pacientes/{id}/planes
func (c *RegistrosController) CreatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	var req dto.CreatePlanRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.planes.Create(r.Context(), id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}
