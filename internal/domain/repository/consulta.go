package repository

import (
	"context"
	"time"
)

// EstadoConsulta estado de una consulta.
type EstadoConsulta string

const (
	EstadoProgramada EstadoConsulta = "programada"
	EstadoCompletada EstadoConsulta = "completada"
	EstadoCancelada  EstadoConsulta = "cancelada"
	EstadoAusente    EstadoConsulta = "ausente"
)

// Valid indica si el estado es conocido.
func (e EstadoConsulta) Valid() bool {
	switch e {
	case EstadoProgramada, EstadoCompletada, EstadoCancelada, EstadoAusente:
		return true
	}
	return false
}

// CanTransitionTo indica si se puede pasar de e a next. Solo una consulta
// programada cambia de estado.
func (e EstadoConsulta) CanTransitionTo(next EstadoConsulta) bool {
	if e != EstadoProgramada {
		return false
	}
	switch next {
	case EstadoCompletada, EstadoCancelada, EstadoAusente:
		return true
	}
	return false
}

// Consulta representa un turno entre un profesional y un paciente.
type Consulta struct {
	ID            int64
	ProfesionalID int64
	PacienteID    int64
	FechaHora     time.Time
	DuracionMin   int
	Motivo        string
	Notas         string
	Estado        EstadoConsulta
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Datos del paciente (join), usados por listados y notificaciones.
	PacienteNombre string
	PacienteEmail  string
}

// CreateConsultaInput contiene los datos para programar una consulta.
type CreateConsultaInput struct {
	ProfesionalID int64
	PacienteID    int64
	FechaHora     time.Time
	DuracionMin   int
	Motivo        string
}

// UpdateConsultaInput contiene los campos actualizables. nil = sin cambios.
type UpdateConsultaInput struct {
	FechaHora   *time.Time
	DuracionMin *int
	Motivo      *string
	Notas       *string
}

// ListConsultasFilter opciones para listar consultas.
type ListConsultasFilter struct {
	Estado EstadoConsulta // vacío = todas
	Desde  *time.Time
	Hasta  *time.Time
}

// ConsultaRepository define operaciones sobre consultas.
type ConsultaRepository interface {
	List(ctx context.Context, profesionalID int64, filter ListConsultasFilter) ([]Consulta, error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Consulta, error)

	// Create crea la consulta en estado programada.
	Create(ctx context.Context, input CreateConsultaInput) (*Consulta, error)

	// Update retorna ErrNotFound si no existe.
	Update(ctx context.Context, id int64, input UpdateConsultaInput) (*Consulta, error)

	// SetEstado cambia el estado solo si el actual es from.
	// Retorna ErrConflict si el estado cambió entre la lectura y la escritura.
	SetEstado(ctx context.Context, id int64, from, to EstadoConsulta) (*Consulta, error)

	// NextForPaciente retorna la próxima consulta programada a partir de now.
	// Retorna ErrNotFound si no hay ninguna.
	NextForPaciente(ctx context.Context, pacienteID int64, now time.Time) (*Consulta, error)
}
