package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/platform/httpclient"
)

type ActivitiesRepo struct {
	c *Client
}

func NewActivitiesRepo(c *Client) *ActivitiesRepo {
	return &ActivitiesRepo{c: c}
}

func (r *ActivitiesRepo) Insert(ctx context.Context, a activities.Activity) (activities.Activity, error) {
	return r.c.insertActivity(ctx, a)
}

// insertActivity usa ref como clave de conflicto: reenviar el mismo ref no duplica.
// Si el backend no aplica ignore-duplicates responde 409; se trata igual.
func (c *Client) insertActivity(ctx context.Context, a activities.Activity) (activities.Activity, error) {
	row, err := toActivityRow(a)
	if err != nil {
		return activities.Activity{}, err
	}

	var out []activityRow
	err = c.http.DoJSON(ctx, http.MethodPost,
		query(activitiesPath, url.Values{"on_conflict": {"ref"}}),
		map[string]string{"Prefer": "resolution=ignore-duplicates,return=representation"},
		[]activityRow{row},
		&out,
	)
	if err != nil && !httpclient.IsStatus(err, http.StatusConflict) {
		return activities.Activity{}, fmt.Errorf("hosted: insert activity: %w", err)
	}
	if err == nil && len(out) > 0 {
		return out[0].toActivity()
	}

	// duplicado: leer la fila existente
	existing, found, err := c.activityByRef(ctx, a)
	if err != nil {
		return activities.Activity{}, err
	}
	if !found {
		return activities.Activity{}, errors.New("hosted: activity not returned after insert")
	}
	return existing, nil
}

// activityByRef busca la actividad guardada con el ref de a y verifica que sea la misma.
func (c *Client) activityByRef(ctx context.Context, a activities.Activity) (activities.Activity, bool, error) {
	if a.Ref == "" {
		return activities.Activity{}, false, nil
	}
	existing, err := c.listActivities(ctx, url.Values{"select": {"*"}, "ref": {"eq." + a.Ref}})
	if err != nil {
		return activities.Activity{}, false, err
	}
	if len(existing) == 0 {
		return activities.Activity{}, false, nil
	}
	if err := activities.SameRef(existing[0], a); err != nil {
		return activities.Activity{}, false, err
	}
	return existing[0], true, nil
}

func (r *ActivitiesRepo) ListByAnimal(ctx context.Context, tagID string) ([]activities.Activity, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, nil
	}
	return r.c.listActivities(ctx, url.Values{
		"select": {"*"},
		"tag_id": {"eq." + tagID},
		"order":  {"id.asc"},
	})
}

func (c *Client) listActivities(ctx context.Context, v url.Values) ([]activities.Activity, error) {
	var rows []activityRow
	if err := c.http.DoJSON(ctx, http.MethodGet, query(activitiesPath, v), nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("hosted: list activities: %w", err)
	}
	out := make([]activities.Activity, 0, len(rows))
	for _, row := range rows {
		a, err := row.toActivity()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
