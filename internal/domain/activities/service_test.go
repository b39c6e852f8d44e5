package activities

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sheep-management/internal/domain/activities/details"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Activity
}

func (r *testRepo) Insert(ctx context.Context, a Activity) (Activity, error) {
	a.ID = int64(len(r.items) + 1)
	r.items = append(r.items, a)
	return a, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, tagID string) ([]Activity, error) {
	out := make([]Activity, 0)
	for _, a := range r.items {
		if a.TagID == tagID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService() (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 1, 5, 8, 0, 0, 0, time.FixedZone("PKT", 5*3600)) }
	svc.newRef = func() string { return "generated-ref" }
	return svc, repo
}

func TestPrepare_Defaults(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Prepare(CreateInput{
		TagID:   "  A1 ",
		Details: details.Lambing{LambingNumber: 1, Babies: []details.Offspring{{Sex: "Male"}, {Sex: "Female"}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "A1", a.TagID)
	assert.Equal(t, KindLambing, a.Kind)
	assert.Equal(t, "generated-ref", a.Ref)
	assert.Equal(t, time.UTC, a.RecordedAt.Location())
	l := a.Details.(details.Lambing)
	assert.Zero(t, l.BabiesBorn)
	assert.Equal(t, 2, l.Born())

	s, err := svc.Prepare(CreateInput{TagID: "A1", Details: details.Sale{Price: 100}})
	require.NoError(t, err)
	assert.Equal(t, details.DefaultCurrency, s.Details.(details.Sale).Currency)
}

func TestPrepare_Rejects(t *testing.T) {
	svc, _ := newTestService()

	cases := map[string]CreateInput{
		"blank tag":      {TagID: " ", Details: details.Culling{Reason: "old"}},
		"no details":     {TagID: "A1"},
		"kind mismatch":  {TagID: "A1", Kind: KindSale, Details: details.Culling{Reason: "old"}},
		"bad ref":        {TagID: "A1", Details: details.Culling{}, Ref: "not-a-uuid"},
		"lambing zero":   {TagID: "A1", Details: details.Lambing{}},
		"too few born":   {TagID: "A1", Details: details.Lambing{LambingNumber: 1, BabiesBorn: 1, Babies: []details.Offspring{{Sex: "Male"}, {Sex: "Male"}}}},
		"bad baby sex":   {TagID: "A1", Details: details.Lambing{LambingNumber: 1, Babies: []details.Offspring{{Sex: "x"}}}},
		"negative price": {TagID: "A1", Details: details.Sale{Price: -1}},
		"bad sale date":  {TagID: "A1", Details: details.Sale{Date: "01/02/2024"}},
		"empty vaccine":  {TagID: "A1", Details: details.Vaccination{}},
		"bad dose date":  {TagID: "A1", Details: details.Vaccination{Schedules: map[string]details.DoseSchedule{"A": {Dose1: "tomorrow"}}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Prepare(in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestPrepare_KeepsValidRef(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Prepare(CreateInput{
		TagID:   "A1",
		Details: details.Vaccination{Type: "PPR", DoseSequence: "1st"},
		Ref:     "6f1c1f5e-3d0a-4f44-9a53-9d0f0c4c2a10",
	})
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f5e-3d0a-4f44-9a53-9d0f0c4c2a10", a.Ref)
}

func TestRecord_AppendsAndLists(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, CreateInput{TagID: "A1", Details: details.Culling{Reason: "check"}})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, CreateInput{TagID: "B2", Details: details.Culling{}})
	require.NoError(t, err)

	items, err := svc.ListByAnimal(ctx, "A1")
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Len(t, repo.items, 4)

	_, err = svc.ListByAnimal(ctx, "  ")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestLambingDetails_RoundTrip(t *testing.T) {
	in := details.Lambing{
		LambingNumber: 2,
		Babies: []details.Offspring{
			{Sex: "Male", DOB: "2024-01-01"},
			{Sex: "Female", DOB: "2024-01-02"},
		},
	}

	raw, err := EncodeDetails(in)
	require.NoError(t, err)

	out, err := DecodeDetails(KindLambing, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLambingDetails_StoredAsSent(t *testing.T) {
	svc, _ := newTestService()
	literal := `{"lambing_number":2,"babies":[{"sex":"Male","dob":"2024-01-01"},{"sex":"Female","dob":"2024-01-02"}]}`

	_, p, err := DecodeInput("Lambing", json.RawMessage(literal))
	require.NoError(t, err)
	a, err := svc.Prepare(CreateInput{TagID: "A1", Details: p})
	require.NoError(t, err)

	raw, err := EncodeDetails(a.Details)
	require.NoError(t, err)
	assert.JSONEq(t, literal, raw)
}

func TestDecodeInput(t *testing.T) {
	k, p, err := DecodeInput("culling", json.RawMessage(`{"reason":"lame","date":"2024-02-01"}`))
	require.NoError(t, err)
	assert.Equal(t, KindCulling, k)
	assert.Equal(t, details.Culling{Reason: "lame", Date: "2024-02-01"}, p)

	_, _, err = DecodeInput("Shearing", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DecodeInput("Sale", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DecodeInput("Sale", json.RawMessage(`{"sale_price":"cheap"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeInput_FlatVaccinationSchedule(t *testing.T) {
	_, p, err := DecodeInput("Vaccination", json.RawMessage(`{"A":{"dose1":"2024-01-01","dose2":"2024-02-01"},"B":{},"notes":"spring"}`))
	require.NoError(t, err)

	v := p.(details.Vaccination)
	assert.Equal(t, map[string]details.DoseSchedule{
		"A": {Dose1: "2024-01-01", Dose2: "2024-02-01"},
		"B": {},
	}, v.Schedules)
	assert.Equal(t, "spring", v.Notes)
	assert.NoError(t, v.Validate())

	_, p, err = DecodeInput("Vaccination", json.RawMessage(`{"schedules":{"C":{"dose1":"2024-03-01"}}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]details.DoseSchedule{"C": {Dose1: "2024-03-01"}}, p.(details.Vaccination).Schedules)

	_, _, err = DecodeInput("Vaccination", json.RawMessage(`{"A":"2024-01-01"}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestKindOf_CoversEveryKind(t *testing.T) {
	payloads := []details.Payload{details.Vaccination{}, details.Lambing{}, details.Culling{}, details.Sale{}}
	for i, p := range payloads {
		k, err := KindOf(p)
		require.NoError(t, err)
		assert.Equal(t, Kinds[i], k)
	}
}
