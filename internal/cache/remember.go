package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	"golang.org/x/sync/singleflight"
)

// Memo combina un Store con la deduplicación de recálculos: si N requests
// fallan la misma key a la vez, solo uno ejecuta el loader.
type Memo struct {
	store Store
	group singleflight.Group
}

// NewMemo crea un Memo sobre el store dado.
func NewMemo(store Store) *Memo {
	return &Memo{store: store}
}

// Store retorna el store subyacente.
func (m *Memo) Store() Store { return m.store }

// GetJSON lee y decodifica una entrada. Una entrada que no decodifica se
// elimina y cuenta como miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var v T
	b, ok := s.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		logger.From(ctx).Warn("cache entry decode failed, dropping",
			logger.Component("cache"), logger.CacheKey(key), logger.Err(err))
		s.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return v, true
}

// SetJSON codifica y guarda una entrada. Un error de codificación deja la
// key sin cachear.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.From(ctx).Warn("cache entry encode failed, skipping",
			logger.Component("cache"), logger.CacheKey(key), logger.Err(err))
		return
	}
	s.Set(ctx, key, b, ttl)
}

// Remember retorna el valor cacheado en key o lo calcula con load y lo guarda
// con el ttl dado. cached indica si vino del cache. Los errores de load no se
// cachean.
//
// El loader compartido corre sin la cancelación del primer caller: si ese
// request se corta, los demás que esperan la misma key reciben el valor. Cada
// caller deja de esperar cuando se cancela su propio ctx.
func Remember[T any](ctx context.Context, m *Memo, key string, ttl time.Duration, load func(context.Context) (T, error)) (v T, cached bool, err error) {
	if hit, ok := GetJSON[T](ctx, m.store, key); ok {
		return hit, true, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		SetJSON(loadCtx, m.store, key, val, ttl)
		return val, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(T), false, nil
	}
}
