// Package cache provee el cache de lecturas agregadas (listados de pacientes,
// consultas, estadísticas) con TTL por entrada e invalidación por prefijo.
//
// Soporta:
//   - Memory (in-process, go-cache)
//   - Redis (compartido entre réplicas)
//
// El store se construye explícitamente con New() al arrancar el proceso y se
// inyecta en los services; no hay instancia global.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store define las operaciones del cache.
//
// Ninguna operación falla: un error del backend se degrada a miss (Get) o a
// no-op (Set/Delete) y queda registrado en el log.
type Store interface {
	// Get retorna el valor si existe y no expiró. Un miss sobre una entrada
	// expirada la elimina del store.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set guarda el valor sobreescribiendo cualquier entrada previa.
	// Un ttl <= 0 significa "no cachear": no se guarda nada y se elimina la
	// entrada previa, si la hubiera.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete elimina la key. No-op si no existe.
	Delete(ctx context.Context, key string)

	// InvalidatePrefix elimina todas las entradas cuya key empieza con prefix
	// y retorna cuántas eliminó. Un prefix vacío equivale a Clear.
	InvalidatePrefix(ctx context.Context, prefix string) int

	// Clear elimina todas las entradas.
	Clear(ctx context.Context)

	// Stats retorna estadísticas del cache. Keys cuenta solo entradas vivas.
	Stats(ctx context.Context) Stats

	// Close libera los recursos del backend.
	Close() error
}

// Stats contiene estadísticas del cache.
type Stats struct {
	Driver        string `json:"driver"`
	Keys          int64  `json:"keys"`
	Hits          int64  `json:"hits"`
	Misses        int64  `json:"misses"`
	Invalidations int64  `json:"invalidations"`
}

// Recorder recibe los eventos del cache (métricas).
type Recorder interface {
	Hit(driver string)
	Miss(driver string)
	Invalidated(driver string, removed int)
}

// NoopRecorder ignora todos los eventos.
type NoopRecorder struct{}

func (NoopRecorder) Hit(string)              {}
func (NoopRecorder) Miss(string)             {}
func (NoopRecorder) Invalidated(string, int) {}

// Drivers soportados.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config configuración para crear el store.
type Config struct {
	Driver string // "memory" | "redis"

	// SweepInterval es el intervalo del barrido periódico de entradas
	// expiradas (solo memory). 0 lo deshabilita; la purga sigue siendo lazy.
	SweepInterval time.Duration

	Redis RedisConfig

	Recorder Recorder
}

// RedisConfig configuración del backend redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Namespace se antepone a todas las keys (ej: "nutrigest:").
	Namespace string
}

// New crea el store según la configuración.
func New(cfg Config) (Store, error) {
	if cfg.Recorder == nil {
		cfg.Recorder = NoopRecorder{}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverRedis:
		return NewRedis(cfg.Redis, cfg.Recorder)
	case DriverMemory, "":
		return NewMemory(cfg.SweepInterval, cfg.Recorder), nil
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", cfg.Driver)
	}
}

// Pinger lo implementan los backends con conexión externa (redis).
type Pinger interface {
	Ping(ctx context.Context) error
}
