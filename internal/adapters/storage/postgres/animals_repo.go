package postgres

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
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (tag_id) DO UPDATE SET
		dob_purchase = EXCLUDED.dob_purchase,
		sex = EXCLUDED.sex,
		approx_age = EXCLUDED.approx_age,
		weight = EXCLUDED.weight,
		body_score = EXCLUDED.body_score,
		feed_type = EXCLUDED.feed_type,
		notes = EXCLUDED.notes,
		pregnant = EXCLUDED.pregnant,
		updated_at = EXCLUDED.updated_at
`

func (r *AnimalsRepo) Upsert(ctx context.Context, a animals.Animal) error {
	return upsertAnimal(ctx, r.db, a)
}

func upsertAnimal(ctx context.Context, q sqlutil.Querier, a animals.Animal) error {
	_, err := q.ExecContext(ctx, upsertAnimalSQL,
		a.TagID,
		toNullDate(a.AcquiredOn),
		string(a.Sex),
		a.ApproxAgeMonths,
		a.WeightKg,
		a.BodyScore,
		string(a.FeedType),
		a.Notes,
		a.Pregnant,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByTagID(ctx context.Context, tagID string) (animals.Animal, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+sqlutil.AnimalColumns+`
		FROM animals
		WHERE tag_id = $1
	`, tagID)

	a, err := sqlutil.ScanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}
