package records

import (
	"encoding/json"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/activities/details"
	"sheep-management/internal/domain/animals"
)

// Form es el estado de edición del operador. Lo arma la UI y viaja completo
// en cada comando; el servidor no guarda estado entre pedidos.
type Form struct {
	TagID       string  `json:"tag_id"`
	DOBPurchase string  `json:"dob_purchase"` // YYYY-MM-DD opcional
	Sex         string  `json:"sex" enums:"Male,Female"`
	ApproxAge   int     `json:"approx_age"` // meses
	Weight      float64 `json:"weight"`     // kg
	BodyScore   int     `json:"body_score"` // 1-5
	FeedType    string  `json:"feed_type" enums:"Pasture,Grain,Both"`
	Notes       string  `json:"notes"`
	Pregnant    bool    `json:"pregnant"`

	Activity string          `json:"activity" enums:"Vaccination,Lambing,Culling,Sale"`
	Details  json.RawMessage `json:"details" swaggertype:"object"`

	// Ref se reenvía tal cual para reintentar un guardado sin duplicar la actividad.
	Ref string `json:"ref,omitempty"`
}

// NewForm devuelve los valores por defecto del formulario para un tag.
func NewForm(tagID string) Form {
	return Form{
		TagID:     tagID,
		Sex:       string(animals.SexMale),
		BodyScore: animals.MinBodyScore,
		FeedType:  string(animals.FeedPasture),
		Activity:  string(activities.KindVaccination),
	}
}

// FormFromAnimal precarga el formulario con la ficha guardada (editar = recargar y reenviar).
func FormFromAnimal(a animals.Animal) Form {
	f := NewForm(a.TagID)
	f.DOBPurchase = animals.FormatDate(a.AcquiredOn)
	f.Sex = string(a.Sex)
	f.ApproxAge = a.ApproxAgeMonths
	f.Weight = a.WeightKg
	f.BodyScore = a.BodyScore
	f.FeedType = string(a.FeedType)
	f.Notes = a.Notes
	f.Pregnant = a.Pregnant
	return f
}

func (f Form) Animal() (animals.Animal, error) {
	sex, err := animals.ParseSex(f.Sex)
	if err != nil {
		return animals.Animal{}, err
	}
	feed, err := animals.ParseFeedType(f.FeedType)
	if err != nil {
		return animals.Animal{}, err
	}
	dob, err := animals.ParseDate(f.DOBPurchase)
	if err != nil {
		return animals.Animal{}, err
	}
	return animals.Animal{
		TagID:           f.TagID,
		AcquiredOn:      dob,
		Sex:             sex,
		ApproxAgeMonths: f.ApproxAge,
		WeightKg:        f.Weight,
		BodyScore:       f.BodyScore,
		FeedType:        feed,
		Notes:           f.Notes,
		Pregnant:        f.Pregnant,
	}, nil
}

func (f Form) Payload() (activities.Kind, details.Payload, error) {
	return activities.DecodeInput(f.Activity, f.Details)
}
