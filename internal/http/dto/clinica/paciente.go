// Package clinica contiene los DTOs de pacientes, consultas, mediciones,
// comidas, planes y estadísticas.
package clinica

import "time"

// PacienteResponse representa un paciente en la API.
type PacienteResponse struct {
	ID              int64     `json:"id"`
	ProfesionalID   int64     `json:"profesional_id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	NombreCompleto  string    `json:"nombre_completo"`
	Email           string    `json:"email,omitempty"`
	Telefono        string    `json:"telefono,omitempty"`
	FechaNacimiento string    `json:"fecha_nacimiento,omitempty"` // YYYY-MM-DD
	Sexo            string    `json:"sexo,omitempty"`
	Objetivo        string    `json:"objetivo,omitempty"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ListPacientesResponse respuesta del listado de pacientes.
type ListPacientesResponse struct {
	Items  []PacienteResponse `json:"items"`
	Total  int                `json:"total"`
	Cached bool               `json:"cached"`
}

// CreatePacienteRequest body de POST /api/profesionales/{profID}/pacientes.
type CreatePacienteRequest struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	FechaNacimiento string `json:"fecha_nacimiento,omitempty"`
	Sexo            string `json:"sexo,omitempty"`
	Objetivo        string `json:"objetivo,omitempty"`
}

// UpdatePacienteRequest body de PUT /api/pacientes/{id}. Campos nil no cambian.
type UpdatePacienteRequest struct {
	Nombre          *string `json:"nombre,omitempty"`
	Apellido        *string `json:"apellido,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	FechaNacimiento *string `json:"fecha_nacimiento,omitempty"`
	Sexo            *string `json:"sexo,omitempty"`
	Objetivo        *string `json:"objetivo,omitempty"`
	Activo          *bool   `json:"activo,omitempty"`
}

// ListPacientesQuery query params del listado.
type ListPacientesQuery struct {
	Search string
	Filter string // activos | inactivos
	Sort   string // name | apellido | recent
}

// ConteoResponse totales de un paciente.
type ConteoResponse struct {
	Consultas  int `json:"consultas"`
	Mediciones int `json:"mediciones"`
	Comidas    int `json:"comidas"`
}

// ResumenPacienteResponse vista del portal del paciente.
type ResumenPacienteResponse struct {
	Paciente        PacienteResponse  `json:"paciente"`
	UltimaMedicion  *MedicionResponse `json:"ultima_medicion,omitempty"`
	ProximaConsulta *ConsultaResponse `json:"proxima_consulta,omitempty"`
	PlanActivo      *PlanResponse     `json:"plan_activo,omitempty"`
	Conteo          ConteoResponse    `json:"conteo"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Cached          bool              `json:"cached"`
}
