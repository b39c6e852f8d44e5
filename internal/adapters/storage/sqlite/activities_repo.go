package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sheep-management/internal/adapters/storage/sqlutil"
	"sheep-management/internal/domain/activities"
)

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

func (r *ActivitiesRepo) Insert(ctx context.Context, a activities.Activity) (activities.Activity, error) {
	return insertActivity(ctx, r.db, a)
}

func insertActivity(ctx context.Context, q sqlutil.Querier, a activities.Activity) (activities.Activity, error) {
	details, err := activities.EncodeDetails(a.Details)
	if err != nil {
		return activities.Activity{}, err
	}

	err = q.QueryRowContext(ctx, `
		INSERT INTO activities (tag_id, activity, details, ref, recorded_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(ref) DO NOTHING
		RETURNING id
	`,
		a.TagID,
		string(a.Kind),
		details,
		a.Ref,
		formatTime(a.RecordedAt),
	).Scan(&a.ID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return activities.Activity{}, err
	}

	existing, err := sqlutil.ScanActivity(q.QueryRowContext(ctx, `
		SELECT `+sqlutil.ActivityColumns+`
		FROM activities
		WHERE ref = ?
	`, a.Ref))
	if err != nil {
		return activities.Activity{}, fmt.Errorf("load activity by ref: %w", err)
	}
	if err := activities.SameRef(existing, a); err != nil {
		return activities.Activity{}, err
	}
	return existing, nil
}

func (r *ActivitiesRepo) ListByAnimal(ctx context.Context, tagID string) ([]activities.Activity, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqlutil.ActivityColumns+`
		FROM activities
		WHERE tag_id = ?
		ORDER BY id ASC
	`, tagID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activities.Activity, 0)
	for rows.Next() {
		a, err := sqlutil.ScanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
