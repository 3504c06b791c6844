package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/virtual-queue/internal/audit"
	"github.com/BruksfildServices01/virtual-queue/internal/auth"
	"github.com/BruksfildServices01/virtual-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/virtual-queue/internal/db"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/cache"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/memory"
	"github.com/BruksfildServices01/virtual-queue/internal/infra/repository"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
	"github.com/BruksfildServices01/virtual-queue/internal/metrics"
	"github.com/BruksfildServices01/virtual-queue/internal/middleware"
	"github.com/BruksfildServices01/virtual-queue/internal/routes"
	"github.com/BruksfildServices01/virtual-queue/internal/timezone"
)

const auditQueueSize = 1024

func main() {

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := routes.Dependencies{
		Config:   cfg,
		Metrics:  metrics.New(),
		Sessions: auth.NewJWTProvider(cfg.JWTSecret, cfg.JWTAudience),
		Clock:    timezone.Now,
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var db *gorm.DB
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.New(deps.Clock)
		deps.Projects = store.Projects()
		deps.Entrants = store.Entrants()
		deps.Stats = store.Stats()
		deps.AuditStore = store.Audit()
		logging.Warn().Msg("using in-memory storage, data is lost on restart")

	case config.StorageDriverPostgres:
		var err error
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("database unavailable")
		}
		deps.Projects = repository.NewProjectGormRepository(db, deps.Clock)
		deps.Entrants = repository.NewEntrantGormRepository(db)
		deps.Stats = repository.NewStatsGormRepository(db)
		deps.AuditStore = audit.NewGormStore(db)
		deps.Health = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}

	default:
		logging.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown STORAGE_DRIVER")
	}

	deps.Audit = audit.NewDispatcher(deps.AuditStore, auditQueueSize)

	// ======================================================
	// CACHE
	// ======================================================
	deps.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, public cache disabled")
		} else {
			redisCache := cache.NewRedisPublicProjects(client, cfg.PublicCacheTTL)
			defer redisCache.Close()
			deps.Cache = redisCache
		}
	}

	// ======================================================
	// RATE LIMIT
	// ======================================================
	deps.JoinLimiter = middleware.NewRateLimiter(cfg.JoinRateLimit, time.Minute)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				deps.JoinLimiter.Sweep()
			}
		}
	}()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", cfg.Addr()).Str("storage", cfg.StorageDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("forced shutdown")
	}

	deps.Audit.Close()
	if db != nil {
		dbpkg.Close(db)
	}
}
