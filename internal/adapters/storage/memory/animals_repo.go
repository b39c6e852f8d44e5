package memory

import (
	"context"
	"errors"
	"strings"

	"sheep-management/internal/domain/animals"
)

type animalRepo struct {
	s *Store
}

func NewAnimalRepo(s *Store) animals.Repository {
	return &animalRepo{s: s}
}

func (r *animalRepo) Upsert(ctx context.Context, a animals.Animal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.TagID) == "" {
		return errors.New("tag id required")
	}
	r.s.animals[a.TagID] = a
	return nil
}

func (r *animalRepo) GetByTagID(ctx context.Context, tagID string) (animals.Animal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.animals[tagID]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}
