package records

import (
	"strconv"
	"time"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
)

// Row es una fila del left join animales x actividades.
// Activity es nil cuando el animal no tiene actividades.
type Row struct {
	Animal   animals.Animal
	Activity *activities.Activity
}

// Columns son los encabezados del export; coinciden con las columnas de storage.
var Columns = []string{
	"tag_id",
	"dob_purchase",
	"sex",
	"approx_age",
	"weight",
	"body_score",
	"feed_type",
	"notes",
	"pregnant",
	"activity_id",
	"activity",
	"details",
	"recorded_at",
}

// Values devuelve la fila en el orden de Columns. Los campos de actividad nulos quedan vacíos.
func (r Row) Values() ([]string, error) {
	a := r.Animal
	out := []string{
		a.TagID,
		animals.FormatDate(a.AcquiredOn),
		string(a.Sex),
		strconv.Itoa(a.ApproxAgeMonths),
		strconv.FormatFloat(a.WeightKg, 'f', -1, 64),
		strconv.Itoa(a.BodyScore),
		string(a.FeedType),
		a.Notes,
		strconv.FormatBool(a.Pregnant),
		"", "", "", "",
	}
	if r.Activity == nil {
		return out, nil
	}

	d, err := activities.EncodeDetails(r.Activity.Details)
	if err != nil {
		return nil, err
	}
	out[9] = strconv.FormatInt(r.Activity.ID, 10)
	out[10] = string(r.Activity.Kind)
	out[11] = d
	out[12] = r.Activity.RecordedAt.UTC().Format(time.RFC3339)
	return out, nil
}
