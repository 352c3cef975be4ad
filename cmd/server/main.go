package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AlexandForests/lolvsfriends/internal/config"
	"github.com/AlexandForests/lolvsfriends/internal/handlers"
	"github.com/AlexandForests/lolvsfriends/internal/ingest"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
	"github.com/AlexandForests/lolvsfriends/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to create postgres pool", "error", err)
	}
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		sugar.Fatalw("Failed to reach postgres", "error", err)
	}

	st := store.New(pg, logger)
	if err := st.Migrate(ctx); err != nil {
		sugar.Fatalw("Failed to run migrations", "error", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid redis url", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sugar.Warnw("Redis unreachable, derived views will be recomputed per request", "error", err)
	}

	riotClient := riot.New(riot.Config{
		APIKey:           cfg.RiotAPIKey,
		BaseURL:          cfg.RiotBaseURL,
		RegionalURL:      cfg.RiotRegionalURL,
		Timeout:          cfg.RequestTimeout,
		RetryBudget:      cfg.RetryBudget,
		TransientBackoff: cfg.TransientBackoff,
		FetchInterval:    cfg.FetchInterval,
		Logger:           logger,
	})

	ingester := ingest.New(riotClient, st, logger, ingest.Config{
		FetchConcurrency:  cfg.FetchConcurrency,
		DefaultMatchCount: cfg.DefaultMatchCount,
	})

	handler := handlers.New(handlers.Config{
		Store:    st,
		Ingester: ingester,
		Cache:    handlers.NewRedisCache(rdb),
		Logger:   logger,
		CacheTTL: cfg.CacheTTL,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: handler.Router(handlers.RouterConfig{
			AllowedOrigins:    cfg.AllowedOrigins,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalw("Forced shutdown", "error", err)
	}

	sugar.Info("Server stopped")
}
