// Package details define el payload de cada tipo de actividad.
// Cada tipo se guarda como un objeto JSON en la columna details.
package details

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid details")

// Payload es la unión de los detalles por tipo de actividad:
// Vaccination, Lambing, Culling o Sale.
type Payload interface {
	Validate() error
	payload()
}

const dateLayout = "2006-01-02"

func checkDate(field, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalid, field)
	}
	return nil
}
