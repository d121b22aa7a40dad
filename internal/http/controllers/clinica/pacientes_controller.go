// Package clinica contiene los controllers de pacientes, consultas,
// mediciones, comidas, planes y estadísticas.
package clinica

import (
	"net/http"

	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	"github.com/dropDatabas3/nutrigest/internal/http/helpers"
	svc "github.com/dropDatabas3/nutrigest/internal/http/services/clinica"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// PacientesController maneja las rutas de pacientes.
type PacientesController struct {
	service svc.PacienteService
}

// NewPacientesController crea el controller de pacientes.
func NewPacientesController(service svc.PacienteService) *PacientesController {
	return &PacientesController{service: service}
}

// List maneja GET /api/profesionales/{profID}/pacientes
func (c *PacientesController) List(w http.ResponseWriter, r *http.Request) {
	profID, err := helpers.PathID(r, "profID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	q := r.URL.Query()
	resp, err := c.service.List(r.Context(), profID, dto.ListPacientesQuery{
		Search: q.Get("search"),
		Filter: q.Get("filter"),
		Sort:   q.Get("sort"),
	})
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrNotFound))
		return
	}

	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Get maneja GET /api/pacientes/{id}
func (c *PacientesController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Get(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create maneja POST /api/profesionales/{profID}/pacientes
func (c *PacientesController) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("PacientesController.Create"))

	profID, err := helpers.PathID(r, "profID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.CreatePacienteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Create(r.Context(), profID, req)
	if err != nil {
		log.Debug("create paciente failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// Update maneja PUT /api/pacientes/{id}
func (c *PacientesController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdatePacienteRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Resumen maneja GET /api/pacientes/{id}/resumen
func (c *PacientesController) Resumen(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Resumen(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}

	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// setCacheHeader expone X-Cache: HIT|MISS.
func setCacheHeader(w http.ResponseWriter, cached bool) {
	if cached {
		w.Header().Set("X-Cache", "HIT")
		return
	}
	w.Header().Set("X-Cache", "MISS")
}
