// Package sqlutil reúne lo que comparten los adapters database/sql (sqlite y postgres):
// escaneo de filas, conversión de fechas y aplicación del schema.
package sqlutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
)

// Querier lo cumplen *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Scanner interface {
	Scan(dest ...any) error
}

// Columnas en el orden que esperan ScanAnimal / ScanActivity / ScanJoined.
const (
	AnimalColumns   = "tag_id, dob_purchase, sex, approx_age, weight, body_score, feed_type, notes, pregnant, updated_at"
	ActivityColumns = "id, tag_id, activity, details, ref, recorded_at"
	JoinedColumns   = "s.tag_id, s.dob_purchase, s.sex, s.approx_age, s.weight, s.body_score, s.feed_type, s.notes, s.pregnant, s.updated_at, " +
		"a.id, a.activity, a.details, a.ref, a.recorded_at"
)

// ApplySchema ejecuta cada sentencia del schema por separado.
func ApplySchema(ctx context.Context, db *sql.DB, schema string) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func ScanAnimal(s Scanner) (animals.Animal, error) {
	var (
		a         animals.Animal
		sex, feed string
		dob, upd  any
	)
	if err := s.Scan(
		&a.TagID,
		&dob,
		&sex,
		&a.ApproxAgeMonths,
		&a.WeightKg,
		&a.BodyScore,
		&feed,
		&a.Notes,
		&a.Pregnant,
		&upd,
	); err != nil {
		return animals.Animal{}, err
	}
	return finishAnimal(a, sex, feed, dob, upd)
}

func ScanActivity(s Scanner) (activities.Activity, error) {
	var (
		a             activities.Activity
		kind, details string
		recorded      any
	)
	if err := s.Scan(&a.ID, &a.TagID, &kind, &details, &a.Ref, &recorded); err != nil {
		return activities.Activity{}, err
	}
	return finishActivity(a, kind, details, recorded)
}

// ScanJoined lee una fila del left join; columnas de actividad nulas => Activity nil.
func ScanJoined(s Scanner) (records.Row, error) {
	var (
		a         animals.Animal
		sex, feed string
		dob, upd  any

		id            sql.NullInt64
		kind, details sql.NullString
		ref           sql.NullString
		recorded      any
	)
	if err := s.Scan(
		&a.TagID,
		&dob,
		&sex,
		&a.ApproxAgeMonths,
		&a.WeightKg,
		&a.BodyScore,
		&feed,
		&a.Notes,
		&a.Pregnant,
		&upd,
		&id,
		&kind,
		&details,
		&ref,
		&recorded,
	); err != nil {
		return records.Row{}, err
	}

	animal, err := finishAnimal(a, sex, feed, dob, upd)
	if err != nil {
		return records.Row{}, err
	}
	row := records.Row{Animal: animal}
	if !id.Valid {
		return row, nil
	}

	act, err := finishActivity(activities.Activity{
		ID:    id.Int64,
		TagID: animal.TagID,
		Ref:   ref.String,
	}, kind.String, details.String, recorded)
	if err != nil {
		return records.Row{}, err
	}
	row.Activity = &act
	return row, nil
}

func finishAnimal(a animals.Animal, sex, feed string, dob, upd any) (animals.Animal, error) {
	a.Sex = animals.Sex(sex)
	a.FeedType = animals.FeedType(feed)

	d, err := TimeFromDB(dob)
	if err != nil {
		return animals.Animal{}, fmt.Errorf("dob_purchase: %w", err)
	}
	a.AcquiredOn = d

	u, err := TimeFromDB(upd)
	if err != nil {
		return animals.Animal{}, fmt.Errorf("updated_at: %w", err)
	}
	if u != nil {
		a.UpdatedAt = u.UTC()
	}
	return a, nil
}

func finishActivity(a activities.Activity, kind, details string, recorded any) (activities.Activity, error) {
	a.Kind = activities.Kind(kind)
	p, err := activities.DecodeDetails(a.Kind, []byte(details))
	if err != nil {
		return activities.Activity{}, fmt.Errorf("activity %d: %w", a.ID, err)
	}
	a.Details = p

	t, err := TimeFromDB(recorded)
	if err != nil {
		return activities.Activity{}, fmt.Errorf("recorded_at: %w", err)
	}
	if t != nil {
		a.RecordedAt = t.UTC()
	}
	return a, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	animals.DateLayout,
}

// TimeFromDB normaliza lo que devuelve cada driver: time.Time (pgx) o texto (sqlite).
func TimeFromDB(v any) (*time.Time, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return nil, fmt.Errorf("unsupported time value %T", v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable time %q", s)
}
