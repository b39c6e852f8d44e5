package activities

import "context"

type Repository interface {
	// Insert agrega una fila nueva y devuelve la actividad con ID asignado.
	// Si ya existe una fila con el mismo Ref, devuelve esa fila sin duplicar.
	Insert(ctx context.Context, a Activity) (Activity, error)
	ListByAnimal(ctx context.Context, tagID string) ([]Activity, error)
}
