package clinica

import "time"

// ConsultaResponse representa una consulta en la API.
type ConsultaResponse struct {
	ID             int64     `json:"id"`
	ProfesionalID  int64     `json:"profesional_id"`
	PacienteID     int64     `json:"paciente_id"`
	PacienteNombre string    `json:"paciente_nombre,omitempty"`
	FechaHora      time.Time `json:"fecha_hora"`
	DuracionMin    int       `json:"duracion_min"`
	Motivo         string    `json:"motivo,omitempty"`
	Notas          string    `json:"notas,omitempty"`
	Estado         string    `json:"estado"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListConsultasResponse respuesta del listado de consultas.
type ListConsultasResponse struct {
	Items  []ConsultaResponse `json:"items"`
	Total  int                `json:"total"`
	Cached bool               `json:"cached"`
}

// CreateConsultaRequest body de POST /api/profesionales/{profID}/consultas.
type CreateConsultaRequest struct {
	PacienteID  int64     `json:"paciente_id"`
	FechaHora   time.Time `json:"fecha_hora"` // RFC3339
	DuracionMin int       `json:"duracion_min,omitempty"`
	Motivo      string    `json:"motivo,omitempty"`
}

// UpdateConsultaRequest body de PUT /api/consultas/{id}.
type UpdateConsultaRequest struct {
	FechaHora   *time.Time `json:"fecha_hora,omitempty"`
	DuracionMin *int       `json:"duracion_min,omitempty"`
	Motivo      *string    `json:"motivo,omitempty"`
	Notas       *string    `json:"notas,omitempty"`
}

// ListConsultasQuery query params del listado. Las fechas van en YYYY-MM-DD.
type ListConsultasQuery struct {
	Estado string
	Desde  *time.Time
	Hasta  *time.Time
}
