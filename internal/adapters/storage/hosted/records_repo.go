package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
)

type RecordsRepo struct {
	c *Client
}

func NewRecordsRepo(c *Client) *RecordsRepo {
	return &RecordsRepo{c: c}
}

// SaveRecord son dos requests: el backend no ofrece una transacción que los abarque.
// Si falla la actividad, devuelve *records.PartialSaveError con el ref a reenviar.
// Un ref de otro animal se rechaza antes de guardar la ficha.
func (r *RecordsRepo) SaveRecord(ctx context.Context, a animals.Animal, act activities.Activity) (activities.Activity, error) {
	if _, _, err := r.c.activityByRef(ctx, act); err != nil {
		return activities.Activity{}, err
	}
	if err := r.c.upsertAnimal(ctx, a); err != nil {
		return activities.Activity{}, err
	}
	saved, err := r.c.insertActivity(ctx, act)
	if err != nil {
		if errors.Is(err, activities.ErrRefConflict) {
			return activities.Activity{}, err
		}
		return activities.Activity{}, &records.PartialSaveError{TagID: a.TagID, Ref: act.Ref, Err: err}
	}
	return saved, nil
}

// ListWithActivities pide animals con el recurso embebido activities y lo aplana
// como un left join.
func (r *RecordsRepo) ListWithActivities(ctx context.Context) ([]records.Row, error) {
	var rows []animalRow
	err := r.c.http.DoJSON(ctx, http.MethodGet,
		query(animalsPath, url.Values{"select": {"*,activities(*)"}, "order": {"tag_id.asc"}}),
		nil, nil, &rows,
	)
	if err != nil {
		return nil, fmt.Errorf("hosted: list records: %w", err)
	}

	out := make([]records.Row, 0)
	for _, row := range rows {
		a, err := row.toAnimal()
		if err != nil {
			return nil, err
		}
		if len(row.Activities) == 0 {
			out = append(out, records.Row{Animal: a})
			continue
		}
		acts := row.Activities
		sort.Slice(acts, func(i, j int) bool { return acts[i].ID < acts[j].ID })
		for _, ar := range acts {
			act, err := ar.toActivity()
			if err != nil {
				return nil, err
			}
			out = append(out, records.Row{Animal: a, Activity: &act})
		}
	}
	return out, nil
}
