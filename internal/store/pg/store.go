// Package pg implementa los repositorios del consultorio sobre PostgreSQL
// (pgx/pgxpool).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
)

// PoolConfig tuning opcional del pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store implementa repository.DataAccess.
type Store struct{ pool *pgxpool.Pool }

var _ repository.DataAccess = (*Store)(nil)

// New crea el pool. No falla si la base no responde al arrancar: el ping
// inicial solo se loguea y /readyz refleja el estado.
func New(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	if dsn == "" {
		return nil, repository.ErrNoDatabase
	}
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	// Mapear MaxIdleConns → MinConns (pgxpool)
	if cfg.MaxIdleConns > 0 {
		pcfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
		pcfg.MaxConnIdleTime = cfg.ConnMaxLifetime
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 10
	}
	if pcfg.MinConns > pcfg.MaxConns {
		pcfg.MinConns = pcfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	log := logger.From(ctx).With(logger.Component("store.pg"))
	if err := pool.Ping(ctx); err != nil {
		log.Warn("pg pool startup ping failed", logger.Err(err))
	} else {
		log.Info("pg pool ready", logger.Int("max_conns", int(pcfg.MaxConns)))
	}

	return &Store{pool: pool}, nil
}

// NewFromPool envuelve un pool existente (tests de integración).
func NewFromPool(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Pool expone el pool interno (métricas, migraciones).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Pacientes() repository.PacienteRepository  { return &pacienteRepo{pool: s.pool} }
func (s *Store) Consultas() repository.ConsultaRepository  { return &consultaRepo{pool: s.pool} }
func (s *Store) Mediciones() repository.MedicionRepository { return &medicionRepo{pool: s.pool} }
func (s *Store) Comidas() repository.ComidaRepository      { return &comidaRepo{pool: s.pool} }
func (s *Store) Planes() repository.PlanRepository         { return &planRepo{pool: s.pool} }
func (s *Store) Stats() repository.StatsRepository         { return &statsRepo{pool: s.pool} }

// notFound mapea pgx.ErrNoRows a repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
