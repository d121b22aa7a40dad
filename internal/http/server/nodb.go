package server

import (
	"context"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

// noDatabase es el DataAccess usado sin DSN: toda operación responde
// ErrNoDatabase (503).
type noDatabase struct{}

func (noDatabase) Pacientes() repository.PacienteRepository  { return noPacientes{} }
func (noDatabase) Consultas() repository.ConsultaRepository  { return noConsultas{} }
func (noDatabase) Mediciones() repository.MedicionRepository { return noMediciones{} }
func (noDatabase) Comidas() repository.ComidaRepository      { return noComidas{} }
func (noDatabase) Planes() repository.PlanRepository         { return noPlanes{} }
func (noDatabase) Stats() repository.StatsRepository         { return noStats{} }
func (noDatabase) Ping(context.Context) error                { return repository.ErrNoDatabase }
func (noDatabase) Close()                                    {}

var errNoDB = repository.ErrNoDatabase

type noPacientes struct{}

func (noPacientes) List(context.Context, int64, repository.ListPacientesFilter) ([]repository.Paciente, error) {
	return nil, errNoDB
}
func (noPacientes) GetByID(context.Context, int64) (*repository.Paciente, error) { return nil, errNoDB }
func (noPacientes) Create(context.Context, repository.CreatePacienteInput) (*repository.Paciente, error) {
	return nil, errNoDB
}
func (noPacientes) Update(context.Context, int64, repository.UpdatePacienteInput) (*repository.Paciente, error) {
	return nil, errNoDB
}

type noConsultas struct{}

func (noConsultas) List(context.Context, int64, repository.ListConsultasFilter) ([]repository.Consulta, error) {
	return nil, errNoDB
}
func (noConsultas) GetByID(context.Context, int64) (*repository.Consulta, error) { return nil, errNoDB }
func (noConsultas) Create(context.Context, repository.CreateConsultaInput) (*repository.Consulta, error) {
	return nil, errNoDB
}
func (noConsultas) Update(context.Context, int64, repository.UpdateConsultaInput) (*repository.Consulta, error) {
	return nil, errNoDB
}
func (noConsultas) SetEstado(context.Context, int64, repository.EstadoConsulta, repository.EstadoConsulta) (*repository.Consulta, error) {
	return nil, errNoDB
}
func (noConsultas) NextForPaciente(context.Context, int64, time.Time) (*repository.Consulta, error) {
	return nil, errNoDB
}

type noMediciones struct{}

func (noMediciones) ListByPaciente(context.Context, int64, int) ([]repository.Medicion, error) {
	return nil, errNoDB
}
func (noMediciones) Create(context.Context, repository.CreateMedicionInput) (*repository.Medicion, error) {
	return nil, errNoDB
}
func (noMediciones) Latest(context.Context, int64) (*repository.Medicion, error) { return nil, errNoDB }

type noComidas struct{}

func (noComidas) ListByPaciente(context.Context, int64, *time.Time) ([]repository.RegistroComida, error) {
	return nil, errNoDB
}
func (noComidas) Create(context.Context, repository.CreateComidaInput) (*repository.RegistroComida, error) {
	return nil, errNoDB
}

type noPlanes struct{}

func (noPlanes) ListByPaciente(context.Context, int64) ([]repository.PlanDieta, error) {
	return nil, errNoDB
}
func (noPlanes) Create(context.Context, repository.CreatePlanInput) (*repository.PlanDieta, error) {
	return nil, errNoDB
}
func (noPlanes) Active(context.Context, int64) (*repository.PlanDieta, error) { return nil, errNoDB }

type noStats struct{}

func (noStats) Profesional(context.Context, int64, time.Time) (*repository.EstadisticasProfesional, error) {
	return nil, errNoDB
}
func (noStats) Paciente(context.Context, int64) (*repository.ConteoPaciente, error) {
	return nil, errNoDB
}
