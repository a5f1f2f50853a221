package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pmboard/internal/auth"
	"pmboard/internal/config"
	"pmboard/internal/server"
	"pmboard/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(2)
	}

	store, err := storage.Open(storage.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN()}, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.Seed {
		hash, err := auth.HashPassword(storage.SeedAdminPassword)
		if err == nil {
			err = store.Seed(context.Background(), hash)
		}
		if err != nil {
			logger.Error("unable to seed database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Duration)
	srv := server.New(store, tokens, logger, server.Options{
		StaticDir:   cfg.StaticDir,
		RequireAuth: cfg.RequireAuth,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("driver", cfg.Database.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
