// Package admin contiene los controllers de la API de administración.
package admin

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
	"github.com/dropDatabas3/nutrigest/internal/http/helpers"
	svc "github.com/dropDatabas3/nutrigest/internal/http/services/admin"
)

// CacheController maneja /api/admin/cache/*.
type CacheController struct {
	service svc.CacheService
}

// NewCacheController crea el controller del cache.
func NewCacheController(service svc.CacheService) *CacheController {
	return &CacheController{service: service}
}

// Stats maneja GET /api/admin/cache/stats
func (c *CacheController) Stats(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.service.Stats(r.Context()))
}

// Clear maneja POST /api/admin/cache/clear
func (c *CacheController) Clear(w http.ResponseWriter, r *http.Request) {
	c.service.Clear(r.Context())
	helpers.NoContent(w)
}

// Invalidate maneja POST /api/admin/cache/invalidate {prefix}
func (c *CacheController) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req dto.InvalidateRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp, err := c.service.Invalidate(r.Context(), req.Prefix)
	if err != nil {
		if repository.IsInvalidInput(err) {
			detail := strings.TrimPrefix(err.Error(), repository.ErrInvalidInput.Error()+": ")
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(detail))
			return
		}
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Controllers agrupa los controllers de administración.
type Controllers struct {
	Cache *CacheController
}

// NewControllers crea los controllers de administración.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{Cache: NewCacheController(s.Cache)}
}
