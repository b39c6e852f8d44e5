package animals

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Normalize recorta textos y sella UpdatedAt. Lo usan también otros módulos
// que guardan el animal por su cuenta (records).
func (s *Service) Normalize(a Animal) (Animal, error) {
	a.TagID = strings.TrimSpace(a.TagID)
	a.Notes = strings.TrimSpace(a.Notes)
	if err := a.Validate(); err != nil {
		return Animal{}, err
	}
	a.UpdatedAt = s.now().UTC()
	return a, nil
}

func (s *Service) Save(ctx context.Context, a Animal) (Animal, error) {
	a, err := s.Normalize(a)
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Get devuelve ErrNotFound si el tag no existe; el que llama decide si eso
// es un error o una ficha vacía.
func (s *Service) Get(ctx context.Context, tagID string) (Animal, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByTagID(ctx, tagID)
}
