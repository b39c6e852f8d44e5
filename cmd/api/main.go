// @title Sheep Management API
// @version 1.0
// @description Fichas de animales y registro de actividades (vacunación, parto, descarte, venta).
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"sheep-management/internal/adapters/storage"
	"sheep-management/internal/config"
	"sheep-management/internal/platform/logger"
	"sheep-management/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	err = run(cfg, log)
	if err != nil {
		log.Error("server error", map[string]any{"err": err})
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		_ = zl.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

// run levanta el storage y el servidor; los defers corren antes de que main salga.
func run(cfg config.Config, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repos, err := storage.Open(ctx, cfg.Storage)
	cancel()
	if err != nil {
		return fmt.Errorf("open storage %q: %w", cfg.Storage.Driver, err)
	}
	defer func() { _ = repos.Close() }()

	r := router.NewRouter(router.Options{Logger: log, Repos: repos})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr(), "storage": repos.Driver})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
