package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type consultaRepo struct{ pool *pgxpool.Pool }

const consultaSelect = `
	SELECT c.id, c.profesional_id, c.paciente_id, c.fecha_hora, c.duracion_min, c.motivo, c.notas,
	       c.estado, c.created_at, c.updated_at,
	       TRIM(p.nombre || ' ' || p.apellido), p.email
	FROM consulta c
	JOIN paciente p ON p.id = c.paciente_id`

func scanConsulta(row pgx.Row) (*repository.Consulta, error) {
	var c repository.Consulta
	var estado string
	err := row.Scan(&c.ID, &c.ProfesionalID, &c.PacienteID, &c.FechaHora, &c.DuracionMin, &c.Motivo, &c.Notas,
		&estado, &c.CreatedAt, &c.UpdatedAt, &c.PacienteNombre, &c.PacienteEmail)
	if err != nil {
		return nil, notFound(err)
	}
	c.Estado = repository.EstadoConsulta(estado)
	return &c, nil
}

func (r *consultaRepo) List(ctx context.Context, profesionalID int64, f repository.ListConsultasFilter) ([]repository.Consulta, error) {
	const query = consultaSelect + `
		WHERE c.profesional_id = $1
		  AND ($2 = '' OR c.estado = $2)
		  AND ($3::timestamptz IS NULL OR c.fecha_hora >= $3)
		  AND ($4::timestamptz IS NULL OR c.fecha_hora < $4)
		ORDER BY c.fecha_hora, c.id`

	rows, err := r.pool.Query(ctx, query, profesionalID, string(f.Estado), f.Desde, f.Hasta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.Consulta, 0)
	for rows.Next() {
		c, err := scanConsulta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *consultaRepo) GetByID(ctx context.Context, id int64) (*repository.Consulta, error) {
	const query = consultaSelect + ` WHERE c.id = $1`
	return scanConsulta(r.pool.QueryRow(ctx, query, id))
}

func (r *consultaRepo) Create(ctx context.Context, in repository.CreateConsultaInput) (*repository.Consulta, error) {
	const query = `
		INSERT INTO consulta (profesional_id, paciente_id, fecha_hora, duracion_min, motivo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	dur := in.DuracionMin
	if dur <= 0 {
		dur = 30
	}
	var id int64
	if err := r.pool.QueryRow(ctx, query, in.ProfesionalID, in.PacienteID, in.FechaHora, dur, in.Motivo).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *consultaRepo) Update(ctx context.Context, id int64, in repository.UpdateConsultaInput) (*repository.Consulta, error) {
	const query = `
		UPDATE consulta SET
			fecha_hora   = COALESCE($2, fecha_hora),
			duracion_min = COALESCE($3, duracion_min),
			motivo       = COALESCE($4, motivo),
			notas        = COALESCE($5, notas),
			updated_at   = NOW()
		WHERE id = $1
		RETURNING id`
	if err := r.pool.QueryRow(ctx, query, id, in.FechaHora, in.DuracionMin, in.Motivo, in.Notas).Scan(&id); err != nil {
		return nil, notFound(err)
	}
	return r.GetByID(ctx, id)
}

func (r *consultaRepo) SetEstado(ctx context.Context, id int64, from, to repository.EstadoConsulta) (*repository.Consulta, error) {
	const query = `UPDATE consulta SET estado = $3, updated_at = NOW() WHERE id = $1 AND estado = $2`
	tag, err := r.pool.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Distinguir inexistente de estado cambiado
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, repository.ErrConflict
	}
	return r.GetByID(ctx, id)
}

func (r *consultaRepo) NextForPaciente(ctx context.Context, pacienteID int64, now time.Time) (*repository.Consulta, error) {
	const query = consultaSelect + `
		WHERE c.paciente_id = $1 AND c.estado = 'programada' AND c.fecha_hora >= $2
		ORDER BY c.fecha_hora
		LIMIT 1`
	return scanConsulta(r.pool.QueryRow(ctx, query, pacienteID, now))
}
