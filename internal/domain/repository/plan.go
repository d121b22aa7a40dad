package repository

import (
	"context"
	"time"
)

// PlanDieta representa un plan alimentario asignado a un paciente.
type PlanDieta struct {
	ID              int64
	PacienteID      int64
	ProfesionalID   int64
	Nombre          string
	Descripcion     string
	CaloriasDiarias *int
	FechaInicio     time.Time
	FechaFin        *time.Time
	Activo          bool
	CreatedAt       time.Time
}

// CreatePlanInput contiene los datos de un plan nuevo.
type CreatePlanInput struct {
	PacienteID      int64
	ProfesionalID   int64
	Nombre          string
	Descripcion     string
	CaloriasDiarias *int
	FechaInicio     time.Time
	FechaFin        *time.Time
}

// PlanRepository define operaciones sobre planes de dieta.
type PlanRepository interface {
	ListByPaciente(ctx context.Context, pacienteID int64) ([]PlanDieta, error)

	// Create desactiva el plan activo anterior y crea el nuevo como activo,
	// en una transacción.
	Create(ctx context.Context, input CreatePlanInput) (*PlanDieta, error)

	// Active retorna ErrNotFound si el paciente no tiene plan activo.
	Active(ctx context.Context, pacienteID int64) (*PlanDieta, error)
}
