package repository

import "context"

// DataAccess agrupa los repositorios del consultorio sobre un mismo backend.
type DataAccess interface {
	Pacientes() PacienteRepository
	Consultas() ConsultaRepository
	Mediciones() MedicionRepository
	Comidas() ComidaRepository
	Planes() PlanRepository
	Stats() StatsRepository

	// Ping verifica la conexión (health check).
	Ping(ctx context.Context) error
	Close()
}
