package memory

import (
	"context"
	"errors"
	"strings"

	"sheep-management/internal/domain/activities"
)

type activityRepo struct {
	s *Store
}

func NewActivityRepo(s *Store) activities.Repository {
	return &activityRepo{s: s}
}

// Insert no valida que el animal exista (igual que la FK sin enforcement de SQLite).
func (r *activityRepo) Insert(ctx context.Context, a activities.Activity) (activities.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.TagID) == "" {
		return activities.Activity{}, errors.New("tag id required")
	}
	return r.s.insertLocked(a)
}

func (r *activityRepo) ListByAnimal(ctx context.Context, tagID string) ([]activities.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]activities.Activity, 0)
	for _, a := range r.s.activities {
		if a.TagID == tagID {
			out = append(out, a)
		}
	}
	return out, nil
}
