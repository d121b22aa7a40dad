// Package clinica contiene los services de pacientes, consultas, mediciones,
// comidas, planes y estadísticas. Las lecturas agregadas pasan por el cache y
// cada escritura exitosa invalida los scopes afectados antes de responder.
package clinica

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

// Notifier envía los avisos de consultas al paciente.
type Notifier interface {
	ConsultaProgramada(ctx context.Context, c *repository.Consulta) error
	ConsultaCancelada(ctx context.Context, c *repository.Consulta) error
}

// Deps contiene las dependencias de los services clínicos.
type Deps struct {
	DAL         repository.DataAccess
	Memo        *cache.Memo
	Invalidator *cache.Invalidator
	Notifier    Notifier // opcional

	ListTTL  time.Duration // listados y vistas de paciente
	StatsTTL time.Duration // estadísticas agregadas

	Now func() time.Time // opcional, default time.Now
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Services agrupa los services del dominio clínico.
type Services struct {
	Pacientes    PacienteService
	Consultas    ConsultaService
	Mediciones   MedicionService
	Comidas      ComidaService
	Planes       PlanService
	Estadisticas EstadisticasService
}

// NewServices crea los services clínicos.
func NewServices(d Deps) Services {
	return Services{
		Pacientes:    NewPacienteService(d),
		Consultas:    NewConsultaService(d),
		Mediciones:   NewMedicionService(d),
		Comidas:      NewComidaService(d),
		Planes:       NewPlanService(d),
		Estadisticas: NewEstadisticasService(d),
	}
}

// invalid envuelve ErrInvalidInput con un mensaje para el cliente.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", repository.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// dayOf trunca a medianoche UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDay parsea YYYY-MM-DD; vacío usa def.
func parseDay(field, raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return dayOf(def), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, invalid("%s debe tener formato YYYY-MM-DD", field)
	}
	return t, nil
}

func formatDayPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

const dateLayout = "2006-01-02"
