package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"sheep-management/internal/adapters/storage/sqlutil"
	"sheep-management/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const upsertAnimalSQL = `
	INSERT INTO animals (
		tag_id, dob_purchase, sex,
		approx_age, weight, body_score,
		feed_type, notes, pregnant,
		updated_at
	) VALUES (?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(tag_id) DO UPDATE SET
		dob_purchase = excluded.dob_purchase,
		sex = excluded.sex,
		approx_age = excluded.approx_age,
		weight = excluded.weight,
		body_score = excluded.body_score,
		feed_type = excluded.feed_type,
		notes = excluded.notes,
		pregnant = excluded.pregnant,
		updated_at = excluded.updated_at
`

func (r *AnimalsRepo) Upsert(ctx context.Context, a animals.Animal) error {
	return upsertAnimal(ctx, r.db, a)
}

func upsertAnimal(ctx context.Context, q sqlutil.Querier, a animals.Animal) error {
	_, err := q.ExecContext(ctx, upsertAnimalSQL,
		a.TagID,
		nullDate(a.AcquiredOn),
		string(a.Sex),
		a.ApproxAgeMonths,
		a.WeightKg,
		a.BodyScore,
		string(a.FeedType),
		a.Notes,
		a.Pregnant,
		formatTime(a.UpdatedAt),
	)
	return err
}

func (r *AnimalsRepo) GetByTagID(ctx context.Context, tagID string) (animals.Animal, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	a, err := sqlutil.ScanAnimal(r.db.QueryRowContext(ctx, `
		SELECT `+sqlutil.AnimalColumns+`
		FROM animals
		WHERE tag_id = ?
	`, tagID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}
