package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo       Repository
	animals    *animals.Service
	activities *activities.Service
}

func NewService(repo Repository, animalsSvc *animals.Service, activitiesSvc *activities.Service) *Service {
	return &Service{
		repo:       repo,
		animals:    animalsSvc,
		activities: activitiesSvc,
	}
}

type SaveResult struct {
	Animal   animals.Animal
	Activity activities.Activity
}

// Save valida el formulario completo antes de tocar storage y luego guarda
// animal + actividad juntos.
func (s *Service) Save(ctx context.Context, f Form) (SaveResult, error) {
	if strings.TrimSpace(f.TagID) == "" {
		return SaveResult{}, fmt.Errorf("%w: tag_id is required", ErrInvalidInput)
	}

	a, err := f.Animal()
	if err != nil {
		return SaveResult{}, err
	}
	a, err = s.animals.Normalize(a)
	if err != nil {
		return SaveResult{}, err
	}

	kind, payload, err := f.Payload()
	if err != nil {
		return SaveResult{}, err
	}
	act, err := s.activities.Prepare(activities.CreateInput{
		TagID:   a.TagID,
		Kind:    kind,
		Details: payload,
		Ref:     f.Ref,
	})
	if err != nil {
		return SaveResult{}, err
	}

	saved, err := s.repo.SaveRecord(ctx, a, act)
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Animal: a, Activity: saved}, nil
}

// Load devuelve el formulario precargado. Si el tag no existe devuelve los
// valores por defecto y found=false; no es un error.
func (s *Service) Load(ctx context.Context, tagID string) (Form, bool, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return Form{}, false, fmt.Errorf("%w: tag_id is required", ErrInvalidInput)
	}
	a, err := s.animals.Get(ctx, tagID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return NewForm(tagID), false, nil
		}
		return Form{}, false, err
	}
	return FormFromAnimal(a), true, nil
}

func (s *Service) List(ctx context.Context) ([]Row, error) {
	rows, err := s.repo.ListWithActivities(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// IsInvalidInput agrupa los errores de validación de los tres módulos.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, animals.ErrInvalidInput) ||
		errors.Is(err, activities.ErrInvalidInput)
}
