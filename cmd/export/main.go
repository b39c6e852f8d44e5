// Command export escribe el join de animales y actividades a sheep_data.csv
// (o .xlsx con -format xlsx) usando el mismo storage que la API.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"sheep-management/internal/adapters/storage"
	"sheep-management/internal/config"
	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
	"sheep-management/internal/platform/logger"
)

func main() {
	format := flag.String("format", "csv", "csv | xlsx")
	dir := flag.String("dir", ".", "directorio de salida")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, cfg, *format, *dir, log); err != nil {
		log.Error("export failed", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, format, dir string, log logger.Logger) error {
	repos, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = repos.Close() }()

	svc := records.NewService(repos.Records,
		animals.NewService(repos.Animals),
		activities.NewService(repos.Activities),
	)

	var (
		b   []byte
		n   int
		ext string
	)
	switch format {
	case "xlsx":
		b, n, err = svc.ExportXLSX(ctx)
		ext = ".xlsx"
	default:
		b, n, err = svc.ExportCSV(ctx)
		ext = ".csv"
	}
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("no data to export", map[string]any{"storage": repos.Driver})
		return nil
	}

	path := filepath.Join(dir, records.ExportFileName+ext)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	log.Info("data exported", map[string]any{"path": path, "rows": n})
	return nil
}
