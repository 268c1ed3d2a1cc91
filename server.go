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

	"github.com/moneymanager/money_manager/api"
	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/internal/storage"
	"github.com/moneymanager/money_manager/internal/tracker"
	"github.com/moneymanager/money_manager/logging"
)

const shutdownTimeout = 10 * time.Second

// openStorage migrates and opens the configured backend. The returned closer releases it.
func openStorage(ctx context.Context, cfg *config.Config) (tracker.Storage, func() error, error) {
	switch cfg.Storage {
	case config.StorageMySQL:
		dsnConfig, err := storage.MySQLConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		db, err := storage.OpenMySQL(ctx, dsnConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := storage.MigrateMySQL(dsnConfig); err != nil {
			db.Close()
			return nil, nil, err
		}
		store := storage.NewMySQLStorage(db)
		return store, store.Close, nil

	case config.StorageSQLite:
		if err := storage.MigrateSQLite(cfg.SQLiteDBPath); err != nil {
			return nil, nil, err
		}
		db, err := storage.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store := storage.NewSQLiteStorage(db)
		return store, store.Close, nil

	case config.StorageMemory:
		logging.Logger.Warn("using in-memory storage, data will be lost on restart")
		return storage.NewInMemoryStorage(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage '%s'", cfg.Storage)
	}
}

func migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage {
	case config.StorageMySQL:
		dsnConfig, err := storage.MySQLConfig(cfg)
		if err != nil {
			return err
		}
		// OpenMySQL creates the database when it does not exist yet.
		db, err := storage.OpenMySQL(ctx, dsnConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db.Close()
		return storage.MigrateMySQL(dsnConfig)
	case config.StorageSQLite:
		return storage.MigrateSQLite(cfg.SQLiteDBPath)
	default:
		logging.Logger.Infof("storage '%s' has no schema, nothing to migrate", cfg.Storage)
		return nil
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("application starting...")

	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		logging.Logger.Errorf("failed to initialize storage: %v", err)
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Logger.Errorf("failed to close storage: %v", err)
		}
	}()

	mt := tracker.NewMoneyTracker(store)
	handler := api.NewRouter(api.NewApi(mt), cfg.CORSAllowedOrigin)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Starting server on port %s with %s storage", cfg.Port, mt.StorageType)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logging.Logger.Errorf("failed to start server: %v", err)
		return err
	case <-ctx.Done():
		logging.Logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
