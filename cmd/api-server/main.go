package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"vibelink/database"
	"vibelink/internal/cache"
	"vibelink/internal/config"
	"vibelink/internal/logger"
	"vibelink/internal/microservices/http-api/middleware"
	"vibelink/internal/microservices/http-api/server"
	"vibelink/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer appLog.Sync()

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("api server stopped", "error", err)
	}
}

func run(cfg *config.Config, appLog *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Warn("database close failed", "error", err)
		}
	}()
	if err := database.Migrate(db, appLog); err != nil {
		return err
	}

	var recCache *cache.RecommendationCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			// The cache is optional; recommendations are computed from the store.
			appLog.Warn("redis unavailable, recommendation cache disabled", "error", err)
		} else {
			defer client.Close()
			recCache = cache.New(client, cfg.CacheExpiry(), appLog)
		}
	}

	shutdownTracing := observability.InitTracing(ctx, appLog, observability.TracingConfig{
		Enabled:     cfg.TracingEnabled,
		Environment: cfg.GoEnv,
	})
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			appLog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	router, err := server.New(server.Deps{
		DB:          db,
		Config:      cfg,
		Cache:       recCache,
		Logger:      appLog,
		RateLimiter: limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("http server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("shutting down http server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
