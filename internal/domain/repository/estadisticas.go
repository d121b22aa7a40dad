package repository

import (
	"context"
	"time"
)

// EstadisticasProfesional agregados del dashboard de un profesional.
type EstadisticasProfesional struct {
	ProfesionalID      int64
	TotalPacientes     int
	PacientesActivos   int
	ConsultasPorEstado map[EstadoConsulta]int
	ConsultasMes       int
	// TasaAsistencia completadas / (completadas + ausentes), 0 si no hay datos.
	TasaAsistencia float64
	GeneratedAt    time.Time
}

// ConteoPaciente totales de un paciente para su resumen.
type ConteoPaciente struct {
	Consultas  int
	Mediciones int
	Comidas    int
}

// StatsRepository define las consultas de agregación.
type StatsRepository interface {
	// Profesional calcula las estadísticas; now define el mes actual.
	Profesional(ctx context.Context, profesionalID int64, now time.Time) (*EstadisticasProfesional, error)

	Paciente(ctx context.Context, pacienteID int64) (*ConteoPaciente, error)
}

// TasaAsistencia calcula completadas / (completadas + ausentes).
func TasaAsistencia(porEstado map[EstadoConsulta]int) float64 {
	c := porEstado[EstadoCompletada]
	a := porEstado[EstadoAusente]
	if c+a == 0 {
		return 0
	}
	return float64(c) / float64(c+a)
}
