package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sheep-management/internal/domain/animals"
)

type AnimalsRepo struct {
	c *Client
}

func NewAnimalsRepo(c *Client) *AnimalsRepo {
	return &AnimalsRepo{c: c}
}

func (r *AnimalsRepo) Upsert(ctx context.Context, a animals.Animal) error {
	return r.c.upsertAnimal(ctx, a)
}

func (c *Client) upsertAnimal(ctx context.Context, a animals.Animal) error {
	err := c.http.DoJSON(ctx, http.MethodPost,
		query(animalsPath, url.Values{"on_conflict": {"tag_id"}}),
		map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"},
		[]animalRow{toAnimalRow(a)},
		nil,
	)
	if err != nil {
		return fmt.Errorf("hosted: upsert animal: %w", err)
	}
	return nil
}

func (r *AnimalsRepo) GetByTagID(ctx context.Context, tagID string) (animals.Animal, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	var out []animalRow
	err := r.c.http.DoJSON(ctx, http.MethodGet,
		query(animalsPath, url.Values{"select": {"*"}, "tag_id": {"eq." + tagID}}),
		nil, nil, &out,
	)
	if err != nil {
		return animals.Animal{}, fmt.Errorf("hosted: get animal: %w", err)
	}
	if len(out) == 0 {
		return animals.Animal{}, animals.ErrNotFound
	}
	return out[0].toAnimal()
}
