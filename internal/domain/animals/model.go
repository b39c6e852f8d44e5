package animals

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout es el formato de fecha usado en todo el sistema (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Sex define el sexo del animal.
// @Enum Male, Female
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// FeedType clasifica la alimentación de los últimos 20 días.
// @Enum Pasture, Grain, Both
type FeedType string

const (
	FeedPasture FeedType = "Pasture"
	FeedGrain   FeedType = "Grain"
	FeedBoth    FeedType = "Both"
)

const (
	MinBodyScore = 1
	MaxBodyScore = 5
)

// Animal es la ficha de un animal, identificada por su caravana (tag).
// TagID es inmutable: volver a guardar el mismo tag reemplaza el resto de campos.
type Animal struct {
	TagID string

	// Fecha de nacimiento o de compra (opcional).
	AcquiredOn *time.Time

	Sex             Sex
	ApproxAgeMonths int
	WeightKg        float64
	BodyScore       int

	FeedType FeedType
	Notes    string
	Pregnant bool

	UpdatedAt time.Time
}

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	default:
		return "", fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, s)
	}
}

// ParseFeedType acepta vacío (variante sin clasificación de alimento).
func ParseFeedType(s string) (FeedType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "pasture":
		return FeedPasture, nil
	case "grain":
		return FeedGrain, nil
	case "both":
		return FeedBoth, nil
	default:
		return "", fmt.Errorf("%w: unknown feed type %q", ErrInvalidInput, s)
	}
}

// Validate revisa las reglas de la ficha. No toca storage.
func (a Animal) Validate() error {
	if strings.TrimSpace(a.TagID) == "" {
		return fmt.Errorf("%w: tag_id is required", ErrInvalidInput)
	}
	if a.Sex != SexMale && a.Sex != SexFemale {
		return fmt.Errorf("%w: sex must be Male or Female", ErrInvalidInput)
	}
	if a.ApproxAgeMonths < 0 {
		return fmt.Errorf("%w: approx_age must be >= 0", ErrInvalidInput)
	}
	if a.WeightKg < 0 {
		return fmt.Errorf("%w: weight must be >= 0", ErrInvalidInput)
	}
	if a.BodyScore < MinBodyScore || a.BodyScore > MaxBodyScore {
		return fmt.Errorf("%w: body_score must be between %d and %d", ErrInvalidInput, MinBodyScore, MaxBodyScore)
	}
	if _, err := ParseFeedType(string(a.FeedType)); err != nil {
		return err
	}
	return nil
}

// FormatDate devuelve "" para fechas nulas.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate acepta "" como fecha nula.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &t, nil
}
