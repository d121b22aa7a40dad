package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type medicionRepo struct{ pool *pgxpool.Pool }

const medicionCols = `id, paciente_id, fecha, peso_kg, talla_cm, imc, cintura_cm, grasa_pct, notas, created_at`

func scanMedicion(row pgx.Row) (*repository.Medicion, error) {
	var m repository.Medicion
	err := row.Scan(&m.ID, &m.PacienteID, &m.Fecha, &m.PesoKg, &m.TallaCm, &m.IMC, &m.CinturaCm, &m.GrasaPct, &m.Notas, &m.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *medicionRepo) ListByPaciente(ctx context.Context, pacienteID int64, limit int) ([]repository.Medicion, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `SELECT ` + medicionCols + ` FROM medicion WHERE paciente_id = $1 ORDER BY fecha DESC, id DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, pacienteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.Medicion, 0)
	for rows.Next() {
		m, err := scanMedicion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *medicionRepo) Create(ctx context.Context, in repository.CreateMedicionInput) (*repository.Medicion, error) {
	const query = `
		INSERT INTO medicion (paciente_id, fecha, peso_kg, talla_cm, imc, cintura_cm, grasa_pct, notas)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + medicionCols
	return scanMedicion(r.pool.QueryRow(ctx, query,
		in.PacienteID, in.Fecha, in.PesoKg, in.TallaCm, in.IMC, in.CinturaCm, in.GrasaPct, in.Notas))
}

func (r *medicionRepo) Latest(ctx context.Context, pacienteID int64) (*repository.Medicion, error) {
	const query = `SELECT ` + medicionCols + ` FROM medicion WHERE paciente_id = $1 ORDER BY fecha DESC, id DESC LIMIT 1`
	return scanMedicion(r.pool.QueryRow(ctx, query, pacienteID))
}
