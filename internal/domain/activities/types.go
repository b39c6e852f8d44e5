package activities

import (
	"fmt"
	"strings"
)

// Kind es el tipo de actividad registrada sobre un animal.
// @Enum Vaccination, Lambing, Culling, Sale
type Kind string

const (
	KindVaccination Kind = "Vaccination"
	KindLambing     Kind = "Lambing"
	KindCulling     Kind = "Culling"
	KindSale        Kind = "Sale"
)

// Kinds en el orden en que se ofrecen al operador.
var Kinds = []Kind{KindVaccination, KindLambing, KindCulling, KindSale}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity %q", ErrInvalidInput, s)
}
