package pg

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// Migrate aplica los archivos *_up.sql (action "up", orden ascendente) o
// *_down.sql (action "down", orden inverso) de fsys. steps > 0 limita la
// cantidad de archivos. Retorna los archivos aplicados.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, action string, steps int) ([]string, error) {
	var suffix string
	switch strings.ToLower(action) {
	case "up":
		suffix = "_up.sql"
	case "down":
		suffix = "_down.sql"
	default:
		return nil, fmt.Errorf("unknown action %q. Use: up | down", action)
	}

	files, err := listSQL(fsys, suffix)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if suffix == "_down.sql" {
		reverseInPlace(files)
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}

	log := logger.From(ctx).With(logger.Component("migrate"))
	applied := make([]string, 0, len(files))
	for _, f := range files {
		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return applied, fmt.Errorf("read %s: %w", f, err)
		}
		start := time.Now()
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return applied, fmt.Errorf("exec %s: %w", f, err)
		}
		log.Info("migration applied", logger.String("file", f), logger.Duration(time.Since(start)))
		applied = append(applied, f)
	}
	return applied, nil
}

func listSQL(fsys fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func reverseInPlace(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}
