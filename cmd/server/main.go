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

	"github.com/joho/godotenv"

	"github.com/hongminglow/bookshop-be/internal/checkout"
	"github.com/hongminglow/bookshop-be/internal/config"
	"github.com/hongminglow/bookshop-be/internal/server"
	"github.com/hongminglow/bookshop-be/internal/storage"
	"github.com/hongminglow/bookshop-be/internal/storage/file"
	"github.com/hongminglow/bookshop-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("init user store", slog.String("driver", cfg.StoreDriver), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	payments := checkout.NewStripeSessionCreator(cfg.StripeSecretKey, nil)
	srv := server.New(cfg, store, payments, logger)

	go func() {
		logger.Info("bookshop backend listening", slog.String("addr", cfg.HTTPAddress()), slog.String("store", cfg.StoreDriver))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", slog.Any("error", err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.UserStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		s, err := postgres.NewUserStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := file.NewUserStore(ctx, cfg.UsersFile)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
