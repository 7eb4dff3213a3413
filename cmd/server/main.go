package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/festive-table/config"
	"github.com/d60-Lab/festive-table/internal/api"
	"github.com/d60-Lab/festive-table/internal/api/handler"
	"github.com/d60-Lab/festive-table/internal/policy"
	"github.com/d60-Lab/festive-table/internal/repository"
	"github.com/d60-Lab/festive-table/internal/service"
	"github.com/d60-Lab/festive-table/pkg/database"
	"github.com/d60-Lab/festive-table/pkg/logger"
	"github.com/d60-Lab/festive-table/pkg/tracing"
)

// @title Festive Table API
// @version 1.0
// @description Shared holiday table: post one dish per browser session.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Server.Mode}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		logger.Fatal("redis unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	cancel()
	defer rdb.Close()

	pol := policy.New(cfg.Moderation.Denylist, cfg.Moderation.Icons)
	postRepo := repository.NewPostRepository(db)
	sessionRepo := repository.NewSessionRepository(rdb, cfg.Session.TTL)
	listCache := repository.NewListCache(rdb, cfg.Cache.ListTTL)

	svc := service.NewPostService(postRepo, sessionRepo, listCache, pol)
	h := handler.NewHandler(svc, pol)
	router := api.NewRouter(cfg, h)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}
