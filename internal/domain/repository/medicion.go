package repository

import (
	"context"
	"math"
	"time"
)

// Medicion representa una medición antropométrica.
type Medicion struct {
	ID         int64
	PacienteID int64
	Fecha      time.Time
	PesoKg     *float64
	TallaCm    *float64
	IMC        *float64
	CinturaCm  *float64
	GrasaPct   *float64
	Notas      string
	CreatedAt  time.Time
}

// CreateMedicionInput contiene los datos de una medición. El IMC se calcula
// en el service.
type CreateMedicionInput struct {
	PacienteID int64
	Fecha      time.Time
	PesoKg     *float64
	TallaCm    *float64
	IMC        *float64
	CinturaCm  *float64
	GrasaPct   *float64
	Notas      string
}

// CalcularIMC retorna peso / talla² (talla en metros) redondeado a dos
// decimales. ok es false si falta algún dato o no es positivo.
func CalcularIMC(pesoKg, tallaCm *float64) (imc float64, ok bool) {
	if pesoKg == nil || tallaCm == nil || *pesoKg <= 0 || *tallaCm <= 0 {
		return 0, false
	}
	m := *tallaCm / 100
	return math.Round(*pesoKg/(m*m)*100) / 100, true
}

// MedicionRepository define operaciones sobre mediciones.
type MedicionRepository interface {
	// ListByPaciente retorna las mediciones más recientes primero.
	ListByPaciente(ctx context.Context, pacienteID int64, limit int) ([]Medicion, error)

	Create(ctx context.Context, input CreateMedicionInput) (*Medicion, error)

	// Latest retorna ErrNotFound si el paciente no tiene mediciones.
	Latest(ctx context.Context, pacienteID int64) (*Medicion, error)
}
