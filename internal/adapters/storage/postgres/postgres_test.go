package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sheep-management/internal/adapters/storage/storagetest"
	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/activities/details"
	"sheep-management/internal/domain/animals"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var (
	animalCols   = []string{"tag_id", "dob_purchase", "sex", "approx_age", "weight", "body_score", "feed_type", "notes", "pregnant", "updated_at"}
	activityCols = []string{"id", "tag_id", "activity", "details", "ref", "recorded_at"}
	joinedCols   = append(append([]string{}, animalCols...), "id", "activity", "details", "ref", "recorded_at")
)

const testRef = "00000000-0000-4000-8000-000000000501"

func TestSaveRecord_Commits(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO animals`).
		WithArgs("A1", sqlmock.AnyArg(), "Female", 26, 40.0, 3, "Both", "ear notch", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO activities .* ON CONFLICT \(ref\) DO NOTHING`).
		WithArgs("A1", "Culling", `{"reason":"old age","date":"2024-05-01"}`, testRef, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	saved, err := NewRecordsRepo(db).SaveRecord(context.Background(), storagetest.Sheep("A1", 40), storagetest.Culling("A1", testRef))
	require.NoError(t, err)
	assert.Equal(t, int64(9), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecord_RollsBackWhenActivityFails(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO animals`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO activities`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := NewRecordsRepo(db).SaveRecord(context.Background(), storagetest.Sheep("A1", 40), storagetest.Culling("A1", testRef))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert activity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_RepeatedRefLoadsExisting(t *testing.T) {
	db, mock := setupMockDB(t)
	recorded := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO activities`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM activities\s+WHERE ref = \$1`).
		WithArgs(testRef).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow(int64(3), "A1", "Culling", `{"reason":"old age","date":"2024-05-01"}`, testRef, recorded))

	got, err := NewActivitiesRepo(db).Insert(context.Background(), storagetest.Culling("A1", testRef))
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, details.Culling{Reason: "old age", Date: "2024-05-01"}, got.Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecord_RefOfAnotherAnimalRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	recorded := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO animals`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO activities`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM activities\s+WHERE ref = \$1`).
		WithArgs(testRef).
		WillReturnRows(sqlmock.NewRows(activityCols).
			AddRow(int64(1), "A1", "Culling", `{"reason":"old age","date":"2024-05-01"}`, testRef, recorded))
	mock.ExpectRollback()

	_, err := NewRecordsRepo(db).SaveRecord(context.Background(), storagetest.Sheep("B2", 30), storagetest.Culling("B2", testRef))
	assert.ErrorIs(t, err, activities.ErrRefConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByTagID(t *testing.T) {
	db, mock := setupMockDB(t)
	dob := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	upd := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM animals\s+WHERE tag_id = \$1`).
		WithArgs("A1").
		WillReturnRows(sqlmock.NewRows(animalCols).
			AddRow("A1", dob, "Female", 26, 40.0, 3, "Both", "", true, upd))
	mock.ExpectQuery(`SELECT .* FROM animals`).
		WithArgs("ZZ").
		WillReturnRows(sqlmock.NewRows(animalCols))

	repo := NewAnimalsRepo(db)
	a, err := repo.GetByTagID(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "2022-03-15", animals.FormatDate(a.AcquiredOn))
	assert.True(t, a.Pregnant)
	assert.True(t, a.UpdatedAt.Equal(upd))

	_, err = repo.GetByTagID(context.Background(), "ZZ")
	assert.ErrorIs(t, err, animals.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithActivities_LeftJoin(t *testing.T) {
	db, mock := setupMockDB(t)
	upd := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`LEFT JOIN activities a ON s.tag_id = a.tag_id`).
		WillReturnRows(sqlmock.NewRows(joinedCols).
			AddRow("A1", nil, "Male", 10, 30.0, 2, "", "", false, upd,
				int64(1), "Sale", `{"sale_date":"2024-05-01","sale_weight":30,"sale_price":25000,"currency":"PKR"}`, testRef, upd).
			AddRow("B2", nil, "Female", 12, 28.0, 3, "Grain", "", false, upd,
				nil, nil, nil, nil, nil))

	rows, err := NewRecordsRepo(db).ListWithActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Activity)
	assert.Equal(t, activities.KindSale, rows[0].Activity.Kind)
	assert.Equal(t, "A1", rows[0].Activity.TagID)
	assert.Nil(t, rows[1].Activity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithActivities_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(joinedCols))

	rows, err := NewRecordsRepo(db).ListWithActivities(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_AppliesEachStatement(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS animals`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS activities`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS activities_tag_id_idx`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
