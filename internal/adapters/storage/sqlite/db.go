// Package sqlite guarda animales y actividades en un archivo SQLite local
// (driver pure-Go modernc.org/sqlite).
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sheep-management/internal/adapters/storage/sqlutil"
	"sheep-management/internal/domain/animals"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath es el archivo que se usa si no se configura otro.
const DefaultPath = "sheep_management.db"

//go:embed schema.sql
var schema string

// Open abre (o crea) la base y aplica el schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite admite un solo escritor; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := sqlutil.ApplySchema(ctx, db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return animals.FormatDate(t)
}
