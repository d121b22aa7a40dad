package repository

import (
	"context"
	"time"
)

// Paciente representa un paciente de un profesional.
type Paciente struct {
	ID              int64
	ProfesionalID   int64
	Nombre          string
	Apellido        string
	Email           string
	Telefono        string
	FechaNacimiento *time.Time
	Sexo            string
	Objetivo        string
	Activo          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NombreCompleto retorna "Nombre Apellido".
func (p Paciente) NombreCompleto() string {
	if p.Apellido == "" {
		return p.Nombre
	}
	return p.Nombre + " " + p.Apellido
}

// CreatePacienteInput contiene los datos para crear un paciente.
type CreatePacienteInput struct {
	ProfesionalID   int64
	Nombre          string
	Apellido        string
	Email           string
	Telefono        string
	FechaNacimiento *time.Time
	Sexo            string
	Objetivo        string
}

// UpdatePacienteInput contiene los campos actualizables. nil = sin cambios.
type UpdatePacienteInput struct {
	Nombre          *string
	Apellido        *string
	Email           *string
	Telefono        *string
	FechaNacimiento *time.Time
	Sexo            *string
	Objetivo        *string
	Activo          *bool
}

// Filtros y órdenes del listado de pacientes.
const (
	FiltroActivos   = "activos"
	FiltroInactivos = "inactivos"

	OrdenNombre   = "name"
	OrdenApellido = "apellido"
	OrdenReciente = "recent"
)

// ListPacientesFilter opciones para listar pacientes.
type ListPacientesFilter struct {
	Search string // búsqueda por nombre, apellido o email
	Filter string // "" | activos | inactivos
	Sort   string // name | apellido | recent
}

// PacienteRepository define operaciones sobre pacientes.
type PacienteRepository interface {
	// List retorna los pacientes de un profesional.
	List(ctx context.Context, profesionalID int64, filter ListPacientesFilter) ([]Paciente, error)

	// GetByID busca un paciente por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Paciente, error)

	// Create crea un paciente activo.
	Create(ctx context.Context, input CreatePacienteInput) (*Paciente, error)

	// Update actualiza los campos no nulos.
	// Retorna ErrNotFound si no existe.
	Update(ctx context.Context, id int64, input UpdatePacienteInput) (*Paciente, error)
}
