// Package storagetest tiene las pruebas que todo backend de storage debe pasar.
// Cada adapter las corre desde su propio _test.go con repos recién creados.
package storagetest

import (
	"context"
	"testing"
	"time"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/activities/details"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Repos struct {
	Animals    animals.Repository
	Activities activities.Repository
	Records    records.Repository
}

// Factory devuelve repos sobre un storage vacío.
type Factory func(t *testing.T) Repos

func Run(t *testing.T, newRepos Factory) {
	t.Run("upsert is idempotent", func(t *testing.T) { upsertIdempotent(t, newRepos(t)) })
	t.Run("upsert overwrites", func(t *testing.T) { upsertOverwrites(t, newRepos(t)) })
	t.Run("activities append", func(t *testing.T) { activitiesAppend(t, newRepos(t)) })
	t.Run("repeated ref", func(t *testing.T) { repeatedRef(t, newRepos(t)) })
	t.Run("ref reused for another animal is rejected", func(t *testing.T) { refReusedElsewhere(t, newRepos(t)) })
	t.Run("left join", func(t *testing.T) { leftJoin(t, newRepos(t)) })
	t.Run("empty store", func(t *testing.T) { emptyStore(t, newRepos(t)) })
	t.Run("lambing round trip", func(t *testing.T) { lambingRoundTrip(t, newRepos(t)) })
}

var baseTime = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

func Sheep(tag string, weight float64) animals.Animal {
	dob := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	return animals.Animal{
		TagID:           tag,
		AcquiredOn:      &dob,
		Sex:             animals.SexFemale,
		ApproxAgeMonths: 26,
		WeightKg:        weight,
		BodyScore:       3,
		FeedType:        animals.FeedBoth,
		Notes:           "ear notch",
		UpdatedAt:       baseTime,
	}
}

func Culling(tag, ref string) activities.Activity {
	return activities.Activity{
		TagID:      tag,
		Kind:       activities.KindCulling,
		Details:    details.Culling{Reason: "old age", Date: "2024-05-01"},
		Ref:        ref,
		RecordedAt: baseTime,
	}
}

func upsertIdempotent(t *testing.T, r Repos) {
	ctx := context.Background()
	a := Sheep("A1", 40)

	require.NoError(t, r.Animals.Upsert(ctx, a))
	require.NoError(t, r.Animals.Upsert(ctx, a))

	got, err := r.Animals.GetByTagID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", got.TagID)
	assert.Equal(t, 40.0, got.WeightKg)
	assert.Equal(t, "2022-03-15", animals.FormatDate(got.AcquiredOn))
	assert.True(t, got.UpdatedAt.Equal(baseTime))

	rows, err := r.Records.ListWithActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func upsertOverwrites(t *testing.T, r Repos) {
	ctx := context.Background()
	require.NoError(t, r.Animals.Upsert(ctx, Sheep("A1", 40.0)))

	second := Sheep("A1", 42.5)
	second.AcquiredOn = nil
	second.Pregnant = true
	second.FeedType = ""
	require.NoError(t, r.Animals.Upsert(ctx, second))

	got, err := r.Animals.GetByTagID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.WeightKg)
	assert.Nil(t, got.AcquiredOn)
	assert.True(t, got.Pregnant)
	assert.Equal(t, animals.FeedType(""), got.FeedType)

	_, err = r.Animals.GetByTagID(ctx, "missing")
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func activitiesAppend(t *testing.T, r Repos) {
	ctx := context.Background()
	require.NoError(t, r.Animals.Upsert(ctx, Sheep("A1", 40)))

	refs := []string{
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000003",
	}
	ids := map[int64]bool{}
	for _, ref := range refs {
		a, err := r.Activities.Insert(ctx, Culling("A1", ref))
		require.NoError(t, err)
		assert.NotZero(t, a.ID)
		ids[a.ID] = true
	}
	assert.Len(t, ids, 3)

	list, err := r.Activities.ListByAnimal(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, a := range list {
		assert.Equal(t, refs[i], a.Ref)
		assert.Equal(t, activities.KindCulling, a.Kind)
		assert.True(t, a.RecordedAt.Equal(baseTime))
	}
}

func repeatedRef(t *testing.T, r Repos) {
	ctx := context.Background()
	ref := "00000000-0000-4000-8000-0000000000aa"

	first, err := r.Records.SaveRecord(ctx, Sheep("A1", 40), Culling("A1", ref))
	require.NoError(t, err)
	again, err := r.Records.SaveRecord(ctx, Sheep("A1", 41), Culling("A1", ref))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	list, err := r.Activities.ListByAnimal(ctx, "A1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := r.Animals.GetByTagID(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, 41.0, got.WeightKg)
}

func refReusedElsewhere(t *testing.T, r Repos) {
	ctx := context.Background()
	ref := "00000000-0000-4000-8000-0000000000bb"

	_, err := r.Records.SaveRecord(ctx, Sheep("A1", 40), Culling("A1", ref))
	require.NoError(t, err)

	_, err = r.Records.SaveRecord(ctx, Sheep("B2", 30), Culling("B2", ref))
	assert.ErrorIs(t, err, activities.ErrRefConflict)
	assert.ErrorIs(t, err, activities.ErrInvalidInput)

	// la ficha de B2 no quedó guardada
	_, err = r.Animals.GetByTagID(ctx, "B2")
	assert.ErrorIs(t, err, animals.ErrNotFound)

	// mismo animal, otro tipo de actividad
	sale := Culling("A1", ref)
	sale.Kind = activities.KindSale
	sale.Details = details.Sale{Price: 100}
	_, err = r.Activities.Insert(ctx, sale)
	assert.ErrorIs(t, err, activities.ErrRefConflict)

	list, err := r.Activities.ListByAnimal(ctx, "A1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, activities.KindCulling, list[0].Kind)
}

func leftJoin(t *testing.T, r Repos) {
	ctx := context.Background()
	_, err := r.Records.SaveRecord(ctx, Sheep("A1", 40), Culling("A1", "00000000-0000-4000-8000-000000000101"))
	require.NoError(t, err)
	_, err = r.Activities.Insert(ctx, Culling("A1", "00000000-0000-4000-8000-000000000102"))
	require.NoError(t, err)
	require.NoError(t, r.Animals.Upsert(ctx, Sheep("B2", 30)))

	rows, err := r.Records.ListWithActivities(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	perTag := map[string]int{}
	var withoutActivity []string
	for _, row := range rows {
		perTag[row.Animal.TagID]++
		if row.Activity == nil {
			withoutActivity = append(withoutActivity, row.Animal.TagID)
			continue
		}
		assert.Equal(t, row.Animal.TagID, row.Activity.TagID)
	}
	assert.Equal(t, map[string]int{"A1": 2, "B2": 1}, perTag)
	assert.Equal(t, []string{"B2"}, withoutActivity)
}

func emptyStore(t *testing.T, r Repos) {
	rows, err := r.Records.ListWithActivities(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func lambingRoundTrip(t *testing.T, r Repos) {
	ctx := context.Background()
	want := details.Lambing{
		LambingNumber: 2,
		Babies: []details.Offspring{
			{Sex: "Male", DOB: "2024-01-01"},
			{Sex: "Female", DOB: "2024-01-02"},
		},
	}
	_, err := r.Records.SaveRecord(ctx, Sheep("L1", 55), activities.Activity{
		TagID:      "L1",
		Kind:       activities.KindLambing,
		Details:    want,
		Ref:        "00000000-0000-4000-8000-000000000201",
		RecordedAt: baseTime,
	})
	require.NoError(t, err)

	list, err := r.Activities.ListByAnimal(ctx, "L1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want, list[0].Details)
}
