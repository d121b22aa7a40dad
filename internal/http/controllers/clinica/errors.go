package clinica

import (
	"errors"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	httperrors "github.com/dropDatabas3/nutrigest/internal/http/errors"
)

// mapError traduce los errores de service a AppError. notFound es el 404
// específico del recurso.
func mapError(err error, notFound *httperrors.AppError) *httperrors.AppError {
	var appErr *httperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case repository.IsNotFound(err):
		return notFound
	case repository.IsInvalidInput(err):
		return httperrors.ErrUnprocessableEntity.WithDetail(detail(err, repository.ErrInvalidInput))
	case repository.IsConflict(err):
		return httperrors.ErrInvalidTransition.WithDetail(detail(err, repository.ErrConflict))
	case errors.Is(err, repository.ErrNoDatabase):
		return httperrors.ErrServiceUnavailable.WithCause(err)
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}

// detail quita el prefijo del sentinel ("invalid input: nombre...").
func detail(err, sentinel error) string {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, sentinel.Error())
	return strings.TrimPrefix(msg, ": ")
}
