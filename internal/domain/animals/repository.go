package animals

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todos los adapters cuando el tag no existe.
var ErrNotFound = errors.New("animal not found")

type Repository interface {
	// Upsert inserta o reemplaza todos los campos no clave del animal.
	Upsert(ctx context.Context, a Animal) error
	GetByTagID(ctx context.Context, tagID string) (Animal, error)
}
