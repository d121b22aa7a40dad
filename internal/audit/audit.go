// Package audit registra los eventos de escritura sobre datos clínicos y
// las acciones administrativas sobre el cache.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// Eventos auditados.
const (
	PacienteCreated        = "paciente.created"
	PacienteUpdated        = "paciente.updated"
	ConsultaCreated        = "consulta.created"
	ConsultaEstado         = "consulta.estado_changed"
	CacheCleared           = "cache.cleared"
	CachePrefixInvalidated = "cache.prefix_invalidated"
)

// Log escribe un evento de auditoría en el logger "audit", con el
// request_id del logger del contexto.
func Log(ctx context.Context, event string, fields ...zap.Field) {
	l := logger.From(ctx).Named("audit")
	l.Info(event, append([]zap.Field{zap.String("event", event)}, fields...)...)
}
