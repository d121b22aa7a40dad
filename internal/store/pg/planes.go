package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type planRepo struct{ pool *pgxpool.Pool }

const planCols = `id, paciente_id, profesional_id, nombre, descripcion, calorias_diarias, fecha_inicio, fecha_fin, activo, created_at`

func scanPlan(row pgx.Row) (*repository.PlanDieta, error) {
	var p repository.PlanDieta
	err := row.Scan(&p.ID, &p.PacienteID, &p.ProfesionalID, &p.Nombre, &p.Descripcion, &p.CaloriasDiarias,
		&p.FechaInicio, &p.FechaFin, &p.Activo, &p.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *planRepo) ListByPaciente(ctx context.Context, pacienteID int64) ([]repository.PlanDieta, error) {
	const query = `SELECT ` + planCols + ` FROM plan_dieta WHERE paciente_id = $1 ORDER BY activo DESC, fecha_inicio DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, pacienteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.PlanDieta, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *planRepo) Create(ctx context.Context, in repository.CreatePlanInput) (*repository.PlanDieta, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Desactivar el plan vigente
	if _, err := tx.Exec(ctx, `UPDATE plan_dieta SET activo = FALSE WHERE paciente_id = $1 AND activo`, in.PacienteID); err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO plan_dieta (paciente_id, profesional_id, nombre, descripcion, calorias_diarias, fecha_inicio, fecha_fin, activo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING ` + planCols
	p, err := scanPlan(tx.QueryRow(ctx, query,
		in.PacienteID, in.ProfesionalID, in.Nombre, in.Descripcion, in.CaloriasDiarias, in.FechaInicio, in.FechaFin))
	if err != nil {
		return nil, err
	}
	return p, tx.Commit(ctx)
}

func (r *planRepo) Active(ctx context.Context, pacienteID int64) (*repository.PlanDieta, error) {
	const query = `SELECT ` + planCols + ` FROM plan_dieta WHERE paciente_id = $1 AND activo`
	return scanPlan(r.pool.QueryRow(ctx, query, pacienteID))
}
