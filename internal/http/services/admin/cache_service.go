// Package admin contiene los services de administración del cache.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/nutrigest/internal/audit"
	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	dto "github.com/dropDatabas3/nutrigest/internal/http/dto/admin"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	"github.com/dropDatabas3/nutrigest/internal/validation"
)

// CacheService define las operaciones de administración del cache.
type CacheService interface {
	Stats(ctx context.Context) dto.CacheStatsResponse
	Clear(ctx context.Context)
	// Invalidate elimina las keys con el prefijo dado. El prefijo vacío se
	// rechaza: para vaciar el cache está Clear.
	Invalidate(ctx context.Context, prefix string) (dto.InvalidateResponse, error)
}

type cacheService struct {
	store cache.Store
}

// NewCacheService crea el service de administración del cache.
func NewCacheService(store cache.Store) CacheService {
	return &cacheService{store: store}
}

const componentCache = "admin.cache"

func (s *cacheService) Stats(ctx context.Context) dto.CacheStatsResponse {
	st := s.store.Stats(ctx)
	resp := dto.CacheStatsResponse{
		Driver:        st.Driver,
		Keys:          st.Keys,
		Hits:          st.Hits,
		Misses:        st.Misses,
		Invalidations: st.Invalidations,
	}
	if total := st.Hits + st.Misses; total > 0 {
		resp.HitRatio = float64(st.Hits) / float64(total)
	}
	return resp
}

func (s *cacheService) Clear(ctx context.Context) {
	s.store.Clear(ctx)
	logger.From(ctx).Info("cache cleared",
		logger.Layer("service"),
		logger.Component(componentCache),
		logger.Op("Clear"),
	)
	audit.Log(ctx, audit.CacheCleared)
}

func (s *cacheService) Invalidate(ctx context.Context, prefix string) (dto.InvalidateResponse, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return dto.InvalidateResponse{}, fmt.Errorf("%w: prefix es obligatorio", repository.ErrInvalidInput)
	}
	if !validation.ValidCachePrefix(prefix) {
		return dto.InvalidateResponse{}, fmt.Errorf("%w: prefix inválido: %q", repository.ErrInvalidInput, prefix)
	}

	removed := s.store.InvalidatePrefix(ctx, prefix)
	logger.From(ctx).Info("cache prefix invalidated",
		logger.Layer("service"),
		logger.Component(componentCache),
		logger.Op("Invalidate"),
		logger.CachePrefix(prefix),
		logger.Count(removed),
	)
	audit.Log(ctx, audit.CachePrefixInvalidated, logger.CachePrefix(prefix), logger.Count(removed))
	return dto.InvalidateResponse{Prefix: prefix, Removed: removed}, nil
}

// Services agrupa los services de administración.
type Services struct {
	Cache CacheService
}

// NewServices crea los services de administración.
func NewServices(store cache.Store) Services {
	return Services{Cache: NewCacheService(store)}
}
