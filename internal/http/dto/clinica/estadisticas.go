package clinica

import "time"

// EstadisticasResponse dashboard de un profesional.
type EstadisticasResponse struct {
	ProfesionalID      int64          `json:"profesional_id"`
	TotalPacientes     int            `json:"total_pacientes"`
	PacientesActivos   int            `json:"pacientes_activos"`
	ConsultasPorEstado map[string]int `json:"consultas_por_estado"`
	ConsultasMes       int            `json:"consultas_mes"`
	TasaAsistencia     float64        `json:"tasa_asistencia"`
	GeneratedAt        time.Time      `json:"generated_at"`
	Cached             bool           `json:"cached"`
}
