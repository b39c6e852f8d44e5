// Package storage elige el backend según la configuración y devuelve los repos
// de los tres módulos listos para usar.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"sheep-management/internal/adapters/storage/hosted"
	"sheep-management/internal/adapters/storage/memory"
	"sheep-management/internal/adapters/storage/postgres"
	"sheep-management/internal/adapters/storage/sqlite"
	"sheep-management/internal/config"
	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
)

type Repos struct {
	Driver     string
	Animals    animals.Repository
	Activities activities.Repository
	Records    records.Repository

	close func() error
}

// Close libera la conexión del backend (no-op para memory/hosted).
func (r *Repos) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}

func Memory() *Repos {
	s := memory.NewStore()
	return &Repos{
		Driver:     config.DriverMemory,
		Animals:    memory.NewAnimalRepo(s),
		Activities: memory.NewActivityRepo(s),
		Records:    memory.NewRecordRepo(s),
	}
}

// FromDB arma repos sobre una *sql.DB ya abierta (sqlite o postgres).
func FromDB(driver string, db *sql.DB) *Repos {
	r := &Repos{Driver: driver, close: db.Close}
	switch driver {
	case config.DriverSQLite:
		r.Animals = sqlite.NewAnimalsRepo(db)
		r.Activities = sqlite.NewActivitiesRepo(db)
		r.Records = sqlite.NewRecordsRepo(db)
	default:
		r.Driver = config.DriverPostgres
		r.Animals = postgres.NewAnimalsRepo(db)
		r.Activities = postgres.NewActivitiesRepo(db)
		r.Records = postgres.NewRecordsRepo(db)
	}
	return r
}

func Open(ctx context.Context, cfg config.StorageConfig) (*Repos, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return Memory(), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return FromDB(config.DriverSQLite, db), nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return FromDB(config.DriverPostgres, db), nil

	case config.DriverHosted:
		c, err := hosted.NewClient(hosted.Config{
			BaseURL: cfg.Hosted.URL,
			APIKey:  cfg.Hosted.APIKey,
			Timeout: cfg.Hosted.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &Repos{
			Driver:     config.DriverHosted,
			Animals:    hosted.NewAnimalsRepo(c),
			Activities: hosted.NewActivitiesRepo(c),
			Records:    hosted.NewRecordsRepo(c),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Driver)
	}
}
