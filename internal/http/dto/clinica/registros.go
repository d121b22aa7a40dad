package clinica

import "time"

// MedicionResponse representa una medición antropométrica.
type MedicionResponse struct {
	ID         int64     `json:"id"`
	PacienteID int64     `json:"paciente_id"`
	Fecha      string    `json:"fecha"`
	PesoKg     *float64  `json:"peso_kg,omitempty"`
	TallaCm    *float64  `json:"talla_cm,omitempty"`
	IMC        *float64  `json:"imc,omitempty"`
	CinturaCm  *float64  `json:"cintura_cm,omitempty"`
	GrasaPct   *float64  `json:"grasa_pct,omitempty"`
	Notas      string    `json:"notas,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListMedicionesResponse mediciones de un paciente, más recientes primero.
type ListMedicionesResponse struct {
	Items  []MedicionResponse `json:"items"`
	Cached bool               `json:"cached"`
}

// CreateMedicionRequest body de POST /api/pacientes/{id}/mediciones.
type CreateMedicionRequest struct {
	Fecha     string   `json:"fecha,omitempty"` // YYYY-MM-DD, default hoy
	PesoKg    *float64 `json:"peso_kg,omitempty"`
	TallaCm   *float64 `json:"talla_cm,omitempty"`
	CinturaCm *float64 `json:"cintura_cm,omitempty"`
	GrasaPct  *float64 `json:"grasa_pct,omitempty"`
	Notas     string   `json:"notas,omitempty"`
}

// ComidaResponse representa un registro de comida.
type ComidaResponse struct {
	ID          int64     `json:"id"`
	PacienteID  int64     `json:"paciente_id"`
	Fecha       string    `json:"fecha"`
	Tipo        string    `json:"tipo"`
	Descripcion string    `json:"descripcion"`
	Calorias    *int      `json:"calorias,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListComidasResponse registros de comidas de un paciente.
type ListComidasResponse struct {
	Items  []ComidaResponse `json:"items"`
	Cached bool             `json:"cached"`
}

// CreateComidaRequest body de POST /api/pacientes/{id}/comidas.
type CreateComidaRequest struct {
	Fecha       string `json:"fecha,omitempty"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
	Calorias    *int   `json:"calorias,omitempty"`
}

// PlanResponse representa un plan de dieta.
type PlanResponse struct {
	ID              int64     `json:"id"`
	PacienteID      int64     `json:"paciente_id"`
	ProfesionalID   int64     `json:"profesional_id"`
	Nombre          string    `json:"nombre"`
	Descripcion     string    `json:"descripcion,omitempty"`
	CaloriasDiarias *int      `json:"calorias_diarias,omitempty"`
	FechaInicio     string    `json:"fecha_inicio"`
	FechaFin        string    `json:"fecha_fin,omitempty"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListPlanesResponse planes de un paciente.
type ListPlanesResponse struct {
	Items  []PlanResponse `json:"items"`
	Cached bool           `json:"cached"`
}

// CreatePlanRequest body de POST /api/pacientes/{id}/planes.
type CreatePlanRequest struct {
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion,omitempty"`
	CaloriasDiarias *int   `json:"calorias_diarias,omitempty"`
	FechaInicio     string `json:"fecha_inicio,omitempty"`
	FechaFin        string `json:"fecha_fin,omitempty"`
}
