package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
)

func TestReadJSON(t *testing.T) {
	var v struct{ Nombre string }

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":"Ana","extra":1}`))
	r.Header.Set("Content-Type", "application/json")
	require.NoError(t, ReadJSON(httptest.NewRecorder(), r, &v))
	assert.Equal(t, "Ana", v.Nombre)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nombre":`))
	r.Header.Set("Content-Type", "application/json")
	err := ReadJSON(httptest.NewRecorder(), r, &v)
	assert.Equal(t, "INVALID_JSON", httperrors.FromError(err).Code)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	err = ReadJSON(httptest.NewRecorder(), r, &v)
	assert.Equal(t, "BAD_REQUEST", httperrors.FromError(err).Code)
}

func TestPathID(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	id, err := PathID(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	rctx.URLParams.Add("bad", "-1")
	_, err = PathID(r, "bad")
	assert.Error(t, err)
}

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?fecha=2024-03-02&mala=ayer", nil)

	d, err := QueryDate(r, "fecha")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", FormatDate(*d))

	d, err = QueryDate(r, "nada")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = QueryDate(r, "mala")
	assert.Error(t, err)
}
