package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
	"sheep-management/internal/domain/records"
)

type recordRepo struct {
	s *Store
}

func NewRecordRepo(s *Store) records.Repository {
	return &recordRepo{s: s}
}

func (r *recordRepo) SaveRecord(ctx context.Context, a animals.Animal, act activities.Activity) (activities.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.TagID) == "" {
		return activities.Activity{}, errors.New("tag id required")
	}
	// conflicto de ref antes de tocar el animal: nada queda a medias
	if _, _, err := r.s.storedByRefLocked(act); err != nil {
		return activities.Activity{}, err
	}
	r.s.animals[a.TagID] = a
	return r.s.insertLocked(act)
}

func (r *recordRepo) ListWithActivities(ctx context.Context) ([]records.Row, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tags := make([]string, 0, len(r.s.animals))
	for tag := range r.s.animals {
		tags = append(tags, tag)
	}
	// Orden estable por tag (solo para consistencia en dev)
	sort.Strings(tags)

	byTag := make(map[string][]activities.Activity, len(tags))
	for _, act := range r.s.activities {
		byTag[act.TagID] = append(byTag[act.TagID], act)
	}

	out := make([]records.Row, 0)
	for _, tag := range tags {
		acts := byTag[tag]
		if len(acts) == 0 {
			out = append(out, records.Row{Animal: r.s.animals[tag]})
			continue
		}
		for i := range acts {
			act := acts[i]
			out = append(out, records.Row{Animal: r.s.animals[tag], Activity: &act})
		}
	}
	return out, nil
}
