package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"sheep-management/internal/adapters/storage/sqlutil"
	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

// SaveRecord hace upsert del animal e insert de la actividad en una transacción.
func (r *RecordsRepo) SaveRecord(ctx context.Context, a animals.Animal, act activities.Activity) (_ activities.Activity, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return activities.Activity{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if err := upsertAnimal(ctx, tx, a); err != nil {
		return activities.Activity{}, fmt.Errorf("upsert animal: %w", err)
	}
	saved, err := insertActivity(ctx, tx, act)
	if err != nil {
		return activities.Activity{}, fmt.Errorf("insert activity: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return activities.Activity{}, fmt.Errorf("commit: %w", err)
	}
	return saved, nil
}

func (r *RecordsRepo) ListWithActivities(ctx context.Context) ([]records.Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqlutil.JoinedColumns+`
		FROM animals s
		LEFT JOIN activities a ON s.tag_id = a.tag_id
		ORDER BY s.tag_id, a.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.Row, 0)
	for rows.Next() {
		row, err := sqlutil.ScanJoined(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
