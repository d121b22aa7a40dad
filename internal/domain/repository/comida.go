package repository

import (
	"context"
	"time"
)

// Tipos de comida.
const (
	ComidaDesayuno = "desayuno"
	ComidaAlmuerzo = "almuerzo"
	ComidaMerienda = "merienda"
	ComidaCena     = "cena"
	ComidaColacion = "colacion"
)

// TipoComidaValido indica si t es un tipo de comida conocido.
func TipoComidaValido(t string) bool {
	switch t {
	case ComidaDesayuno, ComidaAlmuerzo, ComidaMerienda, ComidaCena, ComidaColacion:
		return true
	}
	return false
}

// RegistroComida representa una comida registrada por el paciente.
type RegistroComida struct {
	ID          int64
	PacienteID  int64
	Fecha       time.Time
	Tipo        string
	Descripcion string
	Calorias    *int
	CreatedAt   time.Time
}

// CreateComidaInput contiene los datos de un registro de comida.
type CreateComidaInput struct {
	PacienteID  int64
	Fecha       time.Time
	Tipo        string
	Descripcion string
	Calorias    *int
}

// ComidaRepository define operaciones sobre registros de comidas.
type ComidaRepository interface {
	// ListByPaciente filtra por día si fecha no es nil.
	ListByPaciente(ctx context.Context, pacienteID int64, fecha *time.Time) ([]RegistroComida, error)

	Create(ctx context.Context, input CreateComidaInput) (*RegistroComida, error)
}
