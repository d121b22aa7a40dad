package clinica

import (
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/clinica"
)

func toPacienteResponse(p repository.Paciente) dto.PacienteResponse {
	return dto.PacienteResponse{
		ID:              p.ID,
		ProfesionalID:   p.ProfesionalID,
		Nombre:          p.Nombre,
		Apellido:        p.Apellido,
		NombreCompleto:  p.NombreCompleto(),
		Email:           p.Email,
		Telefono:        p.Telefono,
		FechaNacimiento: formatDayPtr(p.FechaNacimiento),
		Sexo:            p.Sexo,
		Objetivo:        p.Objetivo,
		Activo:          p.Activo,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toConsultaResponse(c repository.Consulta) dto.ConsultaResponse {
	return dto.ConsultaResponse{
		ID:             c.ID,
		ProfesionalID:  c.ProfesionalID,
		PacienteID:     c.PacienteID,
		PacienteNombre: c.PacienteNombre,
		FechaHora:      c.FechaHora,
		DuracionMin:    c.DuracionMin,
		Motivo:         c.Motivo,
		Notas:          c.Notas,
		Estado:         string(c.Estado),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toMedicionResponse(m repository.Medicion) dto.MedicionResponse {
	return dto.MedicionResponse{
		ID:         m.ID,
		PacienteID: m.PacienteID,
		Fecha:      m.Fecha.Format(dateLayout),
		PesoKg:     m.PesoKg,
		TallaCm:    m.TallaCm,
		IMC:        m.IMC,
		CinturaCm:  m.CinturaCm,
		GrasaPct:   m.GrasaPct,
		Notas:      m.Notas,
		CreatedAt:  m.CreatedAt,
	}
}

func toComidaResponse(c repository.RegistroComida) dto.ComidaResponse {
	return dto.ComidaResponse{
		ID:          c.ID,
		PacienteID:  c.PacienteID,
		Fecha:       c.Fecha.Format(dateLayout),
		Tipo:        c.Tipo,
		Descripcion: c.Descripcion,
		Calorias:    c.Calorias,
		CreatedAt:   c.CreatedAt,
	}
}

func toPlanResponse(p repository.PlanDieta) dto.PlanResponse {
	return dto.PlanResponse{
		ID:              p.ID,
		PacienteID:      p.PacienteID,
		ProfesionalID:   p.ProfesionalID,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		CaloriasDiarias: p.CaloriasDiarias,
		FechaInicio:     p.FechaInicio.Format(dateLayout),
		FechaFin:        formatDayPtr(p.FechaFin),
		Activo:          p.Activo,
		CreatedAt:       p.CreatedAt,
	}
}
