package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"digestease/internal/ai"
	"digestease/internal/config"
	"digestease/internal/handlers"
	"digestease/internal/logger"
	"digestease/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("journal service stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run serves until ctx is cancelled. Every resource it opens is released
// before it returns.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.AI.APIKey == "" {
		return errors.New("couldnt find OPENAI_API_KEY")
	}

	pool, err := storage.Connect(ctx, cfg.Server.PostgresDSN)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer pool.Close()

	if err := storage.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("unable to migrate db: %w", err)
	}
	log.Info("connected to db successfully")

	var cache handlers.RapportCache
	if cfg.CacheEnabled() {
		redisClient := storage.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()

		rc := storage.NewRapportCache(redisClient, cfg.Redis.TTL)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, serving rapports without cache", zap.Error(err))
		} else {
			cache = rc
		}
	}

	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout)
	logStorage := storage.NewLogStorage(pool)
	rapportStorage := storage.NewRapportStorage(pool)

	mux := http.NewServeMux()
	handlers.Routes(mux,
		handlers.NewLogHandler(logStorage, log),
		handlers.NewRapportHandler(rapportStorage, logStorage, aiClient, cache, cfg.Server.RapportLogWindow, log),
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("journal service listening", zap.String("addr", cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fail listen and serve: %w", err)
	}
	<-shutdownDone
	return nil
}
