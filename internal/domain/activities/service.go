package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheep-management/internal/domain/activities/details"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo   Repository
	now    func() time.Time
	newRef func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		newRef: uuid.NewString,
	}
}

type CreateInput struct {
	TagID   string
	Kind    Kind
	Details details.Payload
	Ref     string
}

// Prepare valida y arma la actividad sin tocar storage.
func (s *Service) Prepare(in CreateInput) (Activity, error) {
	tagID := strings.TrimSpace(in.TagID)
	if tagID == "" {
		return Activity{}, fmt.Errorf("%w: tag_id is required", ErrInvalidInput)
	}
	if in.Details == nil {
		return Activity{}, fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	kind, err := KindOf(in.Details)
	if err != nil {
		return Activity{}, err
	}
	if in.Kind != "" && in.Kind != kind {
		return Activity{}, fmt.Errorf("%w: activity %q does not match %s details", ErrInvalidInput, in.Kind, kind)
	}

	// el payload se guarda como llegó; solo Sale completa la moneda
	p := in.Details
	if v, ok := p.(details.Sale); ok {
		p = v.Normalized()
	}
	if err := p.Validate(); err != nil {
		return Activity{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ref := strings.TrimSpace(in.Ref)
	if ref == "" {
		ref = s.newRef()
	} else if _, err := uuid.Parse(ref); err != nil {
		return Activity{}, fmt.Errorf("%w: ref must be a uuid", ErrInvalidInput)
	}

	return Activity{
		TagID:      tagID,
		Kind:       kind,
		Details:    p,
		Ref:        ref,
		RecordedAt: s.now().UTC(),
	}, nil
}

func (s *Service) Record(ctx context.Context, in CreateInput) (Activity, error) {
	a, err := s.Prepare(in)
	if err != nil {
		return Activity{}, err
	}
	return s.repo.Insert(ctx, a)
}

func (s *Service) ListByAnimal(ctx context.Context, tagID string) ([]Activity, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, tagID)
}
