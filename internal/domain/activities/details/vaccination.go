package details

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxDoses es la cantidad de dosis que se registran por vacuna.
const MaxDoses = 5

// DoseSchedule guarda hasta cinco fechas de dosis; vacías si no se aplicaron.
type DoseSchedule struct {
	Dose1 string `json:"dose1"`
	Dose2 string `json:"dose2"`
	Dose3 string `json:"dose3"`
	Dose4 string `json:"dose4"`
	Dose5 string `json:"dose5"`
}

func (d DoseSchedule) Doses() [MaxDoses]string {
	return [MaxDoses]string{d.Dose1, d.Dose2, d.Dose3, d.Dose4, d.Dose5}
}

// Vaccination admite las dos formas de registro: calendario por vacuna
// (A, B, C, D...) o un tipo de vacuna con su secuencia de dosis y notas.
type Vaccination struct {
	Schedules map[string]DoseSchedule `json:"schedules,omitempty"`

	Type         string `json:"type,omitempty"`
	DoseSequence string `json:"dose_sequence,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func (Vaccination) payload() {}

// UnmarshalJSON acepta también el calendario plano, con cada vacuna como
// clave de primer nivel: {"A":{"dose1":"2024-01-01"},"B":{}}.
func (v *Vaccination) UnmarshalJSON(b []byte) error {
	type plain Vaccination
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for code, raw := range fields {
		switch code {
		case "schedules", "type", "dose_sequence", "notes":
			continue
		}
		var s DoseSchedule
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("vaccine %s: %w", code, err)
		}
		if p.Schedules == nil {
			p.Schedules = map[string]DoseSchedule{}
		}
		p.Schedules[code] = s
	}
	*v = Vaccination(p)
	return nil
}

func (v Vaccination) Validate() error {
	if len(v.Schedules) == 0 && strings.TrimSpace(v.Type) == "" {
		return fmt.Errorf("%w: vaccination needs schedules or a type", ErrInvalid)
	}
	for code, s := range v.Schedules {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("%w: vaccine code is required", ErrInvalid)
		}
		for i, d := range s.Doses() {
			if err := checkDate(fmt.Sprintf("%s dose%d", code, i+1), d); err != nil {
				return err
			}
		}
	}
	return nil
}
