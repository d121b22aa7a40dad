package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type statsRepo struct{ pool *pgxpool.Pool }

func (r *statsRepo) Profesional(ctx context.Context, profesionalID int64, now time.Time) (*repository.EstadisticasProfesional, error) {
	st := &repository.EstadisticasProfesional{
		ProfesionalID:      profesionalID,
		ConsultasPorEstado: map[repository.EstadoConsulta]int{},
		GeneratedAt:        now,
	}

	const qPacientes = `SELECT COUNT(*), COUNT(*) FILTER (WHERE activo) FROM paciente WHERE profesional_id = $1`
	if err := r.pool.QueryRow(ctx, qPacientes, profesionalID).Scan(&st.TotalPacientes, &st.PacientesActivos); err != nil {
		return nil, err
	}

	const qEstados = `SELECT estado, COUNT(*) FROM consulta WHERE profesional_id = $1 GROUP BY estado`
	rows, err := r.pool.Query(ctx, qEstados, profesionalID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			rows.Close()
			return nil, err
		}
		st.ConsultasPorEstado[repository.EstadoConsulta(estado)] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	hasta := desde.AddDate(0, 1, 0)
	const qMes = `SELECT COUNT(*) FROM consulta WHERE profesional_id = $1 AND fecha_hora >= $2 AND fecha_hora < $3`
	if err := r.pool.QueryRow(ctx, qMes, profesionalID, desde, hasta).Scan(&st.ConsultasMes); err != nil {
		return nil, err
	}

	st.TasaAsistencia = repository.TasaAsistencia(st.ConsultasPorEstado)
	return st, nil
}

func (r *statsRepo) Paciente(ctx context.Context, pacienteID int64) (*repository.ConteoPaciente, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM consulta WHERE paciente_id = $1),
			(SELECT COUNT(*) FROM medicion WHERE paciente_id = $1),
			(SELECT COUNT(*) FROM registro_comida WHERE paciente_id = $1)`
	var c repository.ConteoPaciente
	if err := r.pool.QueryRow(ctx, query, pacienteID).Scan(&c.Consultas, &c.Mediciones, &c.Comidas); err != nil {
		return nil, err
	}
	return &c, nil
}
