package clinica

import (
	"net/http"

	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	"github.com/dropDatabas3/nutrigest/internal/http/helpers"
	svc "github.com/dropDatabas3/nutrigest/internal/http/services/clinica"
)

// EstadisticasController maneja el dashboard del profesional.
type EstadisticasController struct {
	service svc.EstadisticasService
}

// NewEstadisticasController crea el controller de estadísticas.
func NewEstadisticasController(service svc.EstadisticasService) *EstadisticasController {
	return &EstadisticasController{service: service}
}

// Profesional maneja GET /api/profesionales/{profID}/estadisticas
func (c *EstadisticasController) Profesional(w http.ResponseWriter, r *http.Request) {
	profID, err := helpers.PathID(r, "profID")
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	resp, err := c.service.Profesional(r.Context(), profID)
	if err != nil {
		httperrors.WriteError(w, mapError(err, httperrors.ErrNotFound))
		return
	}
	setCacheHeader(w, resp.Cached)
	helpers.WriteJSON(w, http.StatusOK, resp)
}
