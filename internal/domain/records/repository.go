package records

import (
	"context"
	"fmt"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
)

type Repository interface {
	// SaveRecord guarda el animal (upsert) y agrega la actividad como una sola unidad.
	SaveRecord(ctx context.Context, a animals.Animal, act activities.Activity) (activities.Activity, error)
	// ListWithActivities devuelve el left join; sin animales devuelve un slice vacío.
	ListWithActivities(ctx context.Context) ([]Row, error)
}

// PartialSaveError indica que el animal quedó guardado pero la actividad no.
// Solo lo devuelven backends sin transacciones; reenviar el mismo Ref es seguro.
type PartialSaveError struct {
	TagID string
	Ref   string
	Err   error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("animal %s saved but activity %s was not recorded: %v", e.TagID, e.Ref, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }
