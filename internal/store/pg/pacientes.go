package pg

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
)

type pacienteRepo struct{ pool *pgxpool.Pool }

const pacienteCols = `id, profesional_id, nombre, apellido, email, telefono, fecha_nacimiento,
	sexo, objetivo, activo, created_at, updated_at`

func scanPaciente(row pgx.Row) (*repository.Paciente, error) {
	var p repository.Paciente
	err := row.Scan(&p.ID, &p.ProfesionalID, &p.Nombre, &p.Apellido, &p.Email, &p.Telefono,
		&p.FechaNacimiento, &p.Sexo, &p.Objetivo, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// pacienteOrder traduce el orden pedido a un ORDER BY fijo.
func pacienteOrder(sort string) string {
	switch sort {
	case repository.OrdenApellido:
		return "apellido, nombre, id"
	case repository.OrdenReciente:
		return "created_at DESC, id DESC"
	default:
		return "nombre, apellido, id"
	}
}

func (r *pacienteRepo) List(ctx context.Context, profesionalID int64, f repository.ListPacientesFilter) ([]repository.Paciente, error) {
	query := `
		SELECT ` + pacienteCols + `
		FROM paciente
		WHERE profesional_id = $1
		  AND ($2 = '' OR nombre ILIKE '%' || $2 || '%' OR apellido ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR ($3 = 'activos' AND activo) OR ($3 = 'inactivos' AND NOT activo))
		ORDER BY ` + pacienteOrder(f.Sort)

	rows, err := r.pool.Query(ctx, query, profesionalID, strings.TrimSpace(f.Search), f.Filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.Paciente, 0)
	for rows.Next() {
		p, err := scanPaciente(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *pacienteRepo) GetByID(ctx context.Context, id int64) (*repository.Paciente, error) {
	const query = `SELECT ` + pacienteCols + ` FROM paciente WHERE id = $1`
	return scanPaciente(r.pool.QueryRow(ctx, query, id))
}

func (r *pacienteRepo) Create(ctx context.Context, in repository.CreatePacienteInput) (*repository.Paciente, error) {
	const query = `
		INSERT INTO paciente (profesional_id, nombre, apellido, email, telefono, fecha_nacimiento, sexo, objetivo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + pacienteCols
	return scanPaciente(r.pool.QueryRow(ctx, query,
		in.ProfesionalID, in.Nombre, in.Apellido, in.Email, in.Telefono, in.FechaNacimiento, in.Sexo, in.Objetivo))
}

func (r *pacienteRepo) Update(ctx context.Context, id int64, in repository.UpdatePacienteInput) (*repository.Paciente, error) {
	const query = `
		UPDATE paciente SET
			nombre           = COALESCE($2, nombre),
			apellido         = COALESCE($3, apellido),
			email            = COALESCE($4, email),
			telefono         = COALESCE($5, telefono),
			fecha_nacimiento = COALESCE($6, fecha_nacimiento),
			sexo             = COALESCE($7, sexo),
			objetivo         = COALESCE($8, objetivo),
			activo           = COALESCE($9, activo),
			updated_at       = NOW()
		WHERE id = $1
		RETURNING ` + pacienteCols
	return scanPaciente(r.pool.QueryRow(ctx, query, id,
		in.Nombre, in.Apellido, in.Email, in.Telefono, in.FechaNacimiento, in.Sexo, in.Objetivo, in.Activo))
}
