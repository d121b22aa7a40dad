package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type comidaRepo struct{ pool *pgxpool.Pool }

func (r *comidaRepo) ListByPaciente(ctx context.Context, pacienteID int64, fecha *time.Time) ([]repository.RegistroComida, error) {
	const query = `
		SELECT id, paciente_id, fecha, tipo, descripcion, calorias, created_at
		FROM registro_comida
		WHERE paciente_id = $1 AND ($2::date IS NULL OR fecha = $2)
		ORDER BY fecha DESC, created_at, id`
	rows, err := r.pool.Query(ctx, query, pacienteID, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.RegistroComida, 0)
	for rows.Next() {
		var c repository.RegistroComida
		if err := rows.Scan(&c.ID, &c.PacienteID, &c.Fecha, &c.Tipo, &c.Descripcion, &c.Calorias, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *comidaRepo) Create(ctx context.Context, in repository.CreateComidaInput) (*repository.RegistroComida, error) {
	const query = `
		INSERT INTO registro_comida (paciente_id, fecha, tipo, descripcion, calorias)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	c := &repository.RegistroComida{
		PacienteID:  in.PacienteID,
		Fecha:       in.Fecha,
		Tipo:        in.Tipo,
		Descripcion: in.Descripcion,
		Calorias:    in.Calorias,
	}
	err := r.pool.QueryRow(ctx, query, in.PacienteID, in.Fecha, in.Tipo, in.Descripcion, in.Calorias).Scan(&c.ID, &c.CreatedAt)
	return c, err
}
