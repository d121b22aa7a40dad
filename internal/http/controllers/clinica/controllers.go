package clinica

import svc "github.com/dropDatabas3/nutrigest/internal/http/services/clinica"

// Controllers agrupa los controllers del dominio clínico.
type Controllers struct {
	Pacientes    *PacientesController
	Consultas    *ConsultasController
	Registros    *RegistrosController
	Estadisticas *EstadisticasController
}

// NewControllers crea los controllers inyectando los services.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Pacientes:    NewPacientesController(s.Pacientes),
		Consultas:    NewConsultasController(s.Consultas),
		Registros:    NewRegistrosController(s.Mediciones, s.Comidas, s.Planes),
		Estadisticas: NewEstadisticasController(s.Estadisticas),
	}
}
