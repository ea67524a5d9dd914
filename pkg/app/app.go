// Package app boots the vault: config, observability, storage, the gin
// engine with its middleware chain, routes and the background scheduler.
package app

import (
	contextPkg "context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appcache "github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/configs"
	"github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/jobs"
	"github.com/artvault/artvault/pkg/internal/model"
	"github.com/artvault/artvault/pkg/internal/router"
	"github.com/artvault/artvault/pkg/internal/storage"
	"github.com/artvault/artvault/pkg/log"
	"github.com/artvault/artvault/pkg/metrics"
	"github.com/artvault/artvault/pkg/middleware"
	"github.com/artvault/artvault/pkg/scheduler"
	"github.com/artvault/artvault/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	if err := model.Migrate(manager.GetDBClient().GetDB()); err != nil {
		fmt.Printf("Error migrating schema: %v\n", err)
		os.Exit(1)
	}

	ctx = context.WithStorageManager(ctx, manager)

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error creating scheduler: %v\n", err)
		os.Exit(1)
	}

	if config.Sweep.Enabled {
		if err := jobs.RegisterSweepJob(sched, ctx, config.Sweep); err != nil {
			fmt.Printf("Error registering sweep job: %v\n", err)
			os.Exit(1)
		}
	}

	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.GinLoggerMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.AuthMiddleware(config.Auth),
		middleware.RoleMiddleware(config.Auth),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
	)

	respCache := appcache.NewCache(manager.GetKVClient().KVStore)
	router.Register(engine.Group("/api/v1"),
		middleware.CacheMiddleware(middleware.DefaultCacheConfig(respCache)))
	router.RegisterSwaggerRoute(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:    engine,
		config:    config,
		manager:   manager,
		scheduler: sched,
	}
}

// Run starts the scheduler and the HTTP server, then shuts both down
// cleanly on SIGINT or SIGTERM.
func (a *App) Run() error {
	a.scheduler.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Logger().Info().Str("addr", srv.Addr).Msg("vault server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Logger().Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := contextPkg.WithTimeout(contextPkg.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Logger().Error().Err(err).Msg("http shutdown failed")
	}

	if err := a.scheduler.Stop(); err != nil {
		log.Logger().Error().Err(err).Msg("scheduler shutdown failed")
	}

	if err := a.manager.Close(); err != nil {
		log.Logger().Error().Err(err).Msg("storage shutdown failed")
	}

	if err := tracing.ShutdownTracer(ctx); err != nil {
		log.Logger().Error().Err(err).Msg("tracer shutdown failed")
	}

	return nil
}
