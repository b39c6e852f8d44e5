package activities

import (
	"fmt"
	"time"

	"sheep-management/internal/domain/activities/details"
)

// Activity es un evento inmutable asociado a un animal. Solo se agregan filas.
type Activity struct {
	ID    int64
	TagID string

	Kind    Kind
	Details details.Payload

	// Ref hace idempotente el insert: reenviar el mismo Ref no duplica la fila.
	Ref string

	RecordedAt time.Time
}

// ErrRefConflict: el ref ya pertenece a una actividad de otro animal o de otro tipo.
var ErrRefConflict = fmt.Errorf("%w: ref already used by another activity", ErrInvalidInput)

// SameRef verifica que stored (la fila ya guardada con ese ref) sea la misma
// actividad que a; si no, devuelve ErrRefConflict.
func SameRef(stored, a Activity) error {
	if stored.TagID != a.TagID || stored.Kind != a.Kind {
		return fmt.Errorf("%w: %s belongs to %s/%s", ErrRefConflict, a.Ref, stored.TagID, stored.Kind)
	}
	return nil
}
