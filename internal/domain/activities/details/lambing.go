package details

import (
	"fmt"
	"strings"
)

// Offspring es una cría nacida en el parto.
type Offspring struct {
	Sex      string  `json:"sex"`
	DOB      string  `json:"dob,omitempty"`
	WeightKg float64 `json:"weight,omitempty"`
}

type Lambing struct {
	LambingNumber int         `json:"lambing_number"`
	BabiesBorn    int         `json:"babies_born,omitempty"`
	Babies        []Offspring `json:"babies"`
}

func (Lambing) payload() {}

func (l Lambing) Validate() error {
	if l.LambingNumber < 1 {
		return fmt.Errorf("%w: lambing_number must be >= 1", ErrInvalid)
	}
	if l.BabiesBorn < 0 {
		return fmt.Errorf("%w: babies_born must be >= 0", ErrInvalid)
	}
	if l.Born() < len(l.Babies) {
		return fmt.Errorf("%w: babies_born is lower than the babies listed", ErrInvalid)
	}
	for i, b := range l.Babies {
		switch strings.ToLower(strings.TrimSpace(b.Sex)) {
		case "male", "female":
		default:
			return fmt.Errorf("%w: baby %d sex must be Male or Female", ErrInvalid, i+1)
		}
		if err := checkDate(fmt.Sprintf("baby %d dob", i+1), b.DOB); err != nil {
			return err
		}
		if b.WeightKg < 0 {
			return fmt.Errorf("%w: baby %d weight must be >= 0", ErrInvalid, i+1)
		}
	}
	return nil
}

// Born es la cantidad de nacidos: babies_born si se informó, si no las crías listadas.
// No se escribe en el payload guardado.
func (l Lambing) Born() int {
	if l.BabiesBorn == 0 {
		return len(l.Babies)
	}
	return l.BabiesBorn
}
