package helpers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
)

// DateLayout formato de fechas sin hora (query params y DTOs).
const DateLayout = "2006-01-02"

// PathID lee un parámetro de ruta como ID positivo.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, httperrors.ErrInvalidParameter.WithDetail(name + " debe ser un entero positivo")
	}
	return id, nil
}

// QueryDate lee un query param YYYY-MM-DD. Vacío retorna nil.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, httperrors.ErrInvalidParameter.WithDetail(name + " debe tener formato YYYY-MM-DD")
	}
	return &t, nil
}

// ParseDate parsea una fecha YYYY-MM-DD de un DTO. Vacío retorna nil.
func ParseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, httperrors.ErrInvalidFormat.WithDetail(field + " debe tener formato YYYY-MM-DD")
	}
	return &t, nil
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatDatePtr formatea una fecha opcional ("" si es nil).
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
