package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// Prefijos de las vistas cacheadas. Las keys siguen la convención
// "<prefijo>_<scopeID>_<filtros...>".
const (
	PrefixPacientes = "pacientes"
	PrefixConsultas = "consultas"
	PrefixStats     = "stats"
	PrefixPaciente  = "paciente"
)

// anyFilter reemplaza a un filtro vacío dentro de la key.
const anyFilter = "all"

// Key arma una key uniendo las partes con "_". Las partes vacías se
// reemplazan por "all".
func Key(prefix string, scopeID int64, parts ...string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('_')
	sb.WriteString(strconv.FormatInt(scopeID, 10))
	for _, p := range parts {
		sb.WriteByte('_')
		sb.WriteString(digest(p))
	}
	return sb.String()
}

// digest normaliza un filtro para usarlo dentro de una key.
func digest(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return anyFilter
	}
	return strings.Join(strings.Fields(s), "+")
}

// Scope retorna el prefijo que agrupa todas las keys de un scope. Termina en
// "_" para que el scope 1 no alcance las keys del scope 12.
func Scope(prefix string, scopeID int64) string {
	return prefix + "_" + strconv.FormatInt(scopeID, 10) + "_"
}

// PacientesListKey key del listado de pacientes de un profesional.
func PacientesListKey(profesionalID int64, search, filter, sort string) string {
	if strings.TrimSpace(sort) == "" {
		sort = "name"
	}
	return Key(PrefixPacientes, profesionalID, search, filter, sort)
}

// ConsultasListKey key del listado de consultas de un profesional.
func ConsultasListKey(profesionalID int64, estado, desde, hasta string) string {
	return Key(PrefixConsultas, profesionalID, estado, desde, hasta)
}

// StatsKey key de las estadísticas agregadas de un profesional.
func StatsKey(profesionalID int64, view string) string {
	return Key(PrefixStats, profesionalID, view)
}

// PacienteKey key de una vista de un paciente (resumen, mediciones, etc).
func PacienteKey(pacienteID int64, view string, parts ...string) string {
	return Key(PrefixPaciente, pacienteID, append([]string{view}, parts...)...)
}

// Invalidator aplica el protocolo de invalidación: los writers lo llaman
// después de una escritura exitosa y antes de responder.
type Invalidator struct {
	store Store
}

// NewInvalidator crea un invalidator sobre el store dado.
func NewInvalidator(store Store) *Invalidator {
	return &Invalidator{store: store}
}

// Profesional invalida todas las vistas de un profesional (listados de
// pacientes y consultas, estadísticas).
func (i *Invalidator) Profesional(ctx context.Context, profesionalID int64) int {
	removed := 0
	for _, p := range []string{PrefixPacientes, PrefixConsultas, PrefixStats} {
		removed += i.store.InvalidatePrefix(ctx, Scope(p, profesionalID))
	}
	logger.From(ctx).Debug("cache invalidated",
		logger.Component("cache"),
		logger.ProfesionalID(profesionalID),
		logger.Count(removed),
	)
	return removed
}

// Paciente invalida las vistas del paciente y las de su profesional.
func (i *Invalidator) Paciente(ctx context.Context, pacienteID, profesionalID int64) int {
	removed := i.store.InvalidatePrefix(ctx, Scope(PrefixPaciente, pacienteID))
	logger.From(ctx).Debug("cache invalidated",
		logger.Component("cache"),
		logger.PacienteID(pacienteID),
		logger.Count(removed),
	)
	return removed + i.Profesional(ctx, profesionalID)
}
