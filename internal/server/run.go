package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rgehrsitz/mortgo/internal/cache"
	"github.com/rgehrsitz/mortgo/internal/calculation"
	"github.com/rgehrsitz/mortgo/internal/config"
	"github.com/rgehrsitz/mortgo/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.ServiceConfig, logger *zap.Logger, version string) error {
	scheduleCache, err := cache.New(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create schedule cache: %w", err)
	}
	if rc, ok := scheduleCache.(*cache.RedisCache); ok {
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis cache unreachable, continuing without it",
				zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
			scheduleCache = nil
		}
		defer rc.Close()
	}

	provider, err := tracing.Init(ctx, cfg.ServiceName, version, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	engine := calculation.NewEngine()
	engine.SetLogger(logger.Sugar())
	engine.SetCache(scheduleCache)

	handler := NewHandler(Options{
		Logger:      logger,
		Engine:      engine,
		Tracer:      provider.Tracer,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		MaxBodySize: cfg.MaxBodySize,
		Version:     version,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	cacheBackend := cache.BackendNone
	if scheduleCache != nil {
		cacheBackend = scheduleCache.Backend()
	}
	logger.Info("server listening",
		zap.String("address", cfg.Address),
		zap.String("cache", cacheBackend),
		zap.String("tracing", provider.Exporter),
		zap.Float64("rateLimit", cfg.RateLimit),
	)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
