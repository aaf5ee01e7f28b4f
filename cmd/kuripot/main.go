package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kuripot/internal/budget"
	"kuripot/internal/config"
	apphttp "kuripot/internal/http"
	"kuripot/internal/kv"
	kvmem "kuripot/internal/kv/memory"
	kvsqlite "kuripot/internal/kv/sqlite"
	applog "kuripot/internal/log"
	"kuripot/internal/services"
	"kuripot/internal/store"
)

func main() {
	// Load .env if present; real env vars still win.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backend kv.Store
	switch cfg.DataBackend {
	case "sqlite":
		s, err := kvsqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", applog.FieldError, err, "db_path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		backend = s
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
	default:
		backend = kvmem.New()
		logger.Info("Initialized memory backend")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("Failed to close store", applog.FieldError, err)
		}
	}()

	expenses, err := store.NewExpenseStore(ctx, backend)
	if err != nil {
		logger.Error("Failed to load expenses", applog.FieldError, err)
		os.Exit(1)
	}
	trips, err := store.NewTripStore(ctx, backend)
	if err != nil {
		logger.Error("Failed to load transport logs", applog.FieldError, err)
		os.Exit(1)
	}
	timeLogs, err := store.NewTimeLogStore(ctx, backend)
	if err != nil {
		logger.Error("Failed to load time logs", applog.FieldError, err)
		os.Exit(1)
	}
	budgets, err := budget.NewManager(ctx, backend, expenses, trips, timeLogs)
	if err != nil {
		logger.Error("Failed to load budget periods", applog.FieldError, err)
		os.Exit(1)
	}
	tripSvc := services.NewTripService(trips, expenses)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, trips, timeLogs, budgets, tripSvc, cfg.DefaultDiscountPercent, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting kuripot server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
