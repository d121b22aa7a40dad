package clinica

import (
	"context"
	"net/http"

	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	"github.com/dropDatabas3/nutrigest/internal/http/helpers"
	svc "github.com/dropDatabas3/nutrigest/internal/http/services/clinica"
)

// ConsultasController maneja las rutas de consultas.
type ConsultasController struct {
	service svc.ConsultaService
}

// NewConsultasController crea el controller de consultas.
func NewConsultasController(service svc.ConsultaService) *ConsultasController {
	return &ConsultasController{service: service}
}

// List maneja GET /api/profesionales/{profID}/consultas?estado=&desde=&hasta=
func (c *ConsultasController) List(w http.ResponseWriter, r *http.Request) {
	profID, err := helpers.PathID(r, "profID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	desde, err := helpers.QueryDate(r, "desde")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	hasta, err := helpers.QueryDate(r, "hasta")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.List(r.Context(), profID, dto.ListConsultasQuery{
		Estado: r.URL.Query().Get("estado"),
		Desde:  desde,
		Hasta:  hasta,
	})
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrNotFound))
		return
	}

	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Get maneja GET /api/consultas/{id}
func (c *ConsultasController) Get(w http.ResponseWriter, r *http.Request) {
	c.byID(w, r, c.service.Get)
}

// Create maneja POST /api/profesionales/{profID}/consultas
func (c *ConsultasController) Create(w http.ResponseWriter, r *http.Request) {
	profID, err := helpers.PathID(r, "profID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.CreateConsultaRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Create(r.Context(), profID, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrPacienteNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// Update maneja PUT /api/consultas/{id}
func (c *ConsultasController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdateConsultaRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrConsultaNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Completar maneja POST /api/consultas/{id}/completar
func (c *ConsultasController) Completar(w http.ResponseWriter, r *http.Request) {
	c.byID(w, r, c.service.Completar)
}

// Cancelar maneja POST /api/consultas/{id}/cancelar
func (c *ConsultasController) Cancelar(w http.ResponseWriter, r *http.Request) {
	c.byID(w, r, c.service.Cancelar)
}

// Ausente maneja POST /api/consultas/{id}/ausente
func (c *ConsultasController) Ausente(w http.ResponseWriter, r *http.Request) {
	c.byID(w, r, c.service.MarcarAusente)
}

func (c *ConsultasController) byID(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) (dto.ConsultaResponse, error)) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := op(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrConsultaNotFound))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
