package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// scanBatch es el COUNT sugerido a SCAN y el tamaño de cada UNLINK.
const scanBatch = 500

// redisStore implementa Store usando Redis. Redis maneja la expiración: una
// key vencida nunca se devuelve y se purga sola.
type redisStore struct {
	client    *rdb.Client
	namespace string
	rec       Recorder

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
}

// NewRedis crea un store redis y verifica la conexión.
func NewRedis(cfg RedisConfig, rec Recorder) (Store, error) {
	if rec == nil {
		rec = NoopRecorder{}
	}
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client := rdb.NewClient(&rdb.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return &redisStore{client: client, namespace: cfg.Namespace, rec: rec}, nil
}

func (r *redisStore) key(k string) string { return r.namespace + k }

func (r *redisStore) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(logger.Component("cache.redis"), logger.Op(op))
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, rdb.Nil) {
			r.log(ctx, "Get").Warn("redis get failed, treating as miss", logger.CacheKey(key), logger.Err(err))
		}
		r.misses.Add(1)
		r.rec.Miss(DriverRedis)
		return nil, false
	}
	r.hits.Add(1)
	r.rec.Hit(DriverRedis)
	return b, true
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	var err error
	if ttl <= 0 {
		err = r.client.Del(ctx, r.key(key)).Err()
	} else {
		err = r.client.Set(ctx, r.key(key), value, ttl).Err()
	}
	if err != nil {
		r.log(ctx, "Set").Warn("redis set failed", logger.CacheKey(key), logger.Err(err))
	}
}

func (r *redisStore) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.log(ctx, "Delete").Warn("redis del failed", logger.CacheKey(key), logger.Err(err))
	}
}

func (r *redisStore) InvalidatePrefix(ctx context.Context, prefix string) int {
	removed := r.unlinkMatching(ctx, escapeGlob(r.key(prefix))+"*")
	r.invalidations.Add(1)
	r.rec.Invalidated(DriverRedis, removed)
	return removed
}

func (r *redisStore) Clear(ctx context.Context) {
	r.unlinkMatching(ctx, escapeGlob(r.namespace)+"*")
}

// unlinkMatching recorre el keyspace con SCAN y elimina por lotes.
func (r *redisStore) unlinkMatching(ctx context.Context, pattern string) int {
	removed := 0
	batch := make([]string, 0, scanBatch)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		n, err := r.client.Unlink(ctx, batch...).Result()
		if err != nil {
			r.log(ctx, "unlink").Warn("redis unlink failed", logger.Err(err))
		}
		removed += int(n)
		batch = batch[:0]
	}

	it := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for it.Next(ctx) {
		batch = append(batch, it.Val())
		if len(batch) == scanBatch {
			flush()
		}
	}
	flush()
	if err := it.Err(); err != nil {
		r.log(ctx, "scan").Warn("redis scan failed", logger.String("pattern", pattern), logger.Err(err))
	}
	return removed
}

func (r *redisStore) Stats(ctx context.Context) Stats {
	var keys int64
	it := r.client.Scan(ctx, 0, escapeGlob(r.namespace)+"*", scanBatch).Iterator()
	for it.Next(ctx) {
		keys++
	}
	if err := it.Err(); err != nil {
		r.log(ctx, "Stats").Warn("redis scan failed", logger.Err(err))
	}

	return Stats{
		Driver:        DriverRedis,
		Keys:          keys,
		Hits:          r.hits.Load(),
		Misses:        r.misses.Load(),
		Invalidations: r.invalidations.Load(),
	}
}

// Ping verifica la conexión (usado por el health check).
func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStore) Close() error {
	return r.client.Close()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob escapa los metacaracteres del patrón MATCH de SCAN.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
