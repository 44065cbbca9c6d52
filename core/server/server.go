package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"creator-ledger/core/cache"
	"creator-ledger/core/config"
	"creator-ledger/core/controller"
	"creator-ledger/core/database"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/middleware"
	"creator-ledger/core/policy"
	"creator-ledger/core/queue"
	"creator-ledger/modules/activity"
	"creator-ledger/modules/availability"
	"creator-ledger/modules/booking"
	"creator-ledger/modules/commerce"
	"creator-ledger/modules/earnings"
	"creator-ledger/modules/notification"
	"creator-ledger/modules/points"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Run boots the HTTP API and, when enabled, the point-credit worker, and blocks until
// SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup("creator-ledger", cfg.Env, cfg.LogLevel)

	p, err := policy.FromConfig(cfg.Policy)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	store := newStore(ctx, cfg)
	q := queue.NewClient(cfg.Redis)
	defer q.Close()

	mw := middleware.NewMiddleware(cfg.Auth.ServiceTokenSecret)
	e := newEcho(mw)
	v1 := e.Group("/api/v1")

	notifications := notification.Init(v1, db)
	settings := availability.Init(v1, db, p)
	bookings := booking.Init(v1, db, cfg, mw, p, settings, notifications)
	ledger := points.Init(v1, db, store, p)
	earnings.Init(v1, db, p)
	activity.Init(v1, db, ledger.Repo, bookings, store, p, cfg.Cache.ActivityTTL)
	commerce.Init(v1, db, q)

	var worker *asynq.Server
	if cfg.Server.Worker {
		worker = queue.NewServer(cfg.Redis)
		mux := asynq.NewServeMux()
		ledger.Tasks.Register(mux)
		if err := worker.Start(mux); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
		logger.Info("Server:Run:WorkerStarted")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Server:Run:ShuttingDown")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if worker != nil {
		worker.Shutdown()
	}
	return e.Shutdown(shutdownCtx)
}

func newEcho(mw *middleware.Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = controller.HTTPErrorHandler

	e.Use(echoMiddleware.Recover())
	e.Use(mw.RequestID())
	e.Use(mw.Observe())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	return e
}

// newStore prefers Redis and falls back to process memory when Redis does not answer.
func newStore(ctx context.Context, cfg *config.Config) cache.Store {
	client := cache.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Server:NewStore:RedisUnavailable", "addr", cfg.Redis.Addr, "error", err)
		_ = client.Close()
		return cache.NewMemoryStore(time.Now)
	}
	return cache.NewRedisStore(client)
}
