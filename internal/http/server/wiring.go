// Package server arma el handler HTTP a partir de la configuración: store,
// cache, métricas, rate limiter, mailer, services, controllers y router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/config"
	"github.com/dropDatabas3/nutrigest/internal/domain/repository"
	"github.com/dropDatabas3/nutrigest/internal/email"
	"github.com/dropDatabas3/nutrigest/internal/http/controllers"
	mw "github.com/dropDatabas3/nutrigest/internal/http/middlewares"
	"github.com/dropDatabas3/nutrigest/internal/http/router"
	"github.com/dropDatabas3/nutrigest/internal/http/services"
	"github.com/dropDatabas3/nutrigest/internal/metrics"
	"github.com/dropDatabas3/nutrigest/internal/observability/logger"
	"github.com/dropDatabas3/nutrigest/internal/rate"
	"github.com/dropDatabas3/nutrigest/internal/store/pg"
	"github.com/dropDatabas3/nutrigest/internal/util"
	migrations "github.com/dropDatabas3/nutrigest/migrations/postgres"
)

// App es el resultado del wiring: el handler raíz y su cleanup.
type App struct {
	Handler http.Handler
	Store   *pg.Store   // nil sin base configurada
	Cache   cache.Store // cerrado por Close

	closers []func()
}

// Close libera los recursos en orden inverso a su creación.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build arma la aplicación. Sin DSN el servicio arranca igual pero /readyz
// informa "unavailable" y las rutas clínicas responden 503.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.L().With(logger.Component("wiring"))
	app := &App{}

	// 1. Métricas (opcional)
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		var err error
		if m, err = metrics.New(nil); err != nil {
			return nil, fmt.Errorf("metrics init: %w", err)
		}
	}

	// 2. Store
	var dal repository.DataAccess
	st, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	switch {
	case errors.Is(err, repository.ErrNoDatabase):
		log.Warn("storage.dsn not configured, clinical routes will respond 503")
		dal = noDatabase{}
	case err != nil:
		return nil, fmt.Errorf("store init: %w", err)
	default:
		app.Store = st
		app.closers = append(app.closers, st.Close)
		dal = st
		log.Info("store connected", logger.String("dsn", util.MaskDSN(cfg.Storage.DSN)))

		if cfg.Flags.Migrate {
			applied, err := pg.Migrate(ctx, st.Pool(), migrations.FS, "up", 0)
			if err != nil {
				app.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied", logger.Count(len(applied)))
		}
		if m != nil {
			if err := m.RegisterPool(func() *pgxpool.Pool { return st.Pool() }); err != nil {
				log.Warn("db pool metrics not registered", logger.Err(err))
			}
		}
	}

	// 3. Cache
	var rec cache.Recorder = cache.NoopRecorder{}
	if m != nil {
		rec = m
	}
	store, err := cache.New(cache.Config{
		Driver:        cfg.Cache.Kind,
		SweepInterval: cfg.SweepInterval(),
		Redis: cache.RedisConfig{
			Addr:      cfg.Cache.Redis.Addr,
			Password:  cfg.Cache.Redis.Password,
			DB:        cfg.Cache.Redis.DB,
			Namespace: cfg.CacheNamespace(),
		},
		Recorder: rec,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("cache init: %w", err)
	}
	app.Cache = store
	app.closers = append(app.closers, func() { _ = store.Close() })
	if m != nil {
		if err := m.RegisterCacheKeys(func() float64 {
			return float64(store.Stats(context.Background()).Keys)
		}); err != nil {
			log.Warn("cache keys gauge not registered", logger.Err(err))
		}
	}
	log.Info("cache ready", logger.String("driver", cfg.Cache.Kind),
		logger.Any("list_ttl", cfg.ListTTL()), logger.Any("stats_ttl", cfg.StatsTTL()))

	// 4. Rate limiter
	rl := mw.RateLimitConfig{}
	if cfg.Rate.Enabled {
		limiter, closeFn := newLimiter(cfg)
		rl.Limiter = limiter
		if closeFn != nil {
			app.closers = append(app.closers, closeFn)
		}
		if m != nil {
			rl.OnReject = m.RateRejected
		}
	}

	// 5. Mailer
	notifier, err := email.NewNotifier(email.NewSender(email.SMTPConfig{
		Host:               cfg.SMTP.Host,
		Port:               cfg.SMTP.Port,
		From:               cfg.SMTP.From,
		Username:           cfg.SMTP.Username,
		Password:           cfg.SMTP.Password,
		TLSMode:            cfg.SMTP.TLS,
		InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
	}), time.Local)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("email templates: %w", err)
	}
	if cfg.SMTP.Host == "" {
		log.Info("smtp.host not configured, consulta notifications disabled")
	}

	// 6. Services -> Controllers -> Router
	svcs := services.New(services.Deps{
		DAL:      dal,
		Cache:    store,
		Notifier: notifier,
		ListTTL:  cfg.ListTTL(),
		StatsTTL: cfg.StatsTTL(),
	})

	deps := router.Deps{
		Controllers: controllers.New(svcs),
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimit:   rl,
		MetricsPath: cfg.Metrics.Path,
	}
	if m != nil {
		deps.Metrics = m
	}
	app.Handler = router.New(deps)
	return app, nil
}

// newLimiter usa redis cuando el cache es redis (el límite se comparte entre
// réplicas) y memoria en otro caso. Los contadores redis viven en
// RateNamespace, fuera del keyspace del cache.
func newLimiter(cfg *config.Config) (rate.Limiter, func()) {
	if cfg.Cache.Kind == cache.DriverRedis {
		client := rdb.NewClient(&rdb.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		limiter := rate.NewRedisLimiter(client, cfg.RateNamespace(), cfg.Rate.MaxRequests, cfg.RateWindow())
		return limiter, func() { _ = client.Close() }
	}
	return rate.NewMemoryLimiter(cfg.Rate.MaxRequests, cfg.RateWindow()), nil
}
