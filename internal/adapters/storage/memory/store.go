package memory

import (
	"sync"

	"sheep-management/internal/domain/activities"
	"sheep-management/internal/domain/animals"
)

// Store es el estado compartido por los repos in-memory.
// Un solo mutex hace atómico el guardado animal + actividad.
type Store struct {
	mu sync.RWMutex

	animals    map[string]animals.Animal
	activities []activities.Activity
	byRef      map[string]int // ref -> índice en activities
	nextID     int64
}

func NewStore() *Store {
	return &Store{
		animals: make(map[string]animals.Animal),
		byRef:   make(map[string]int),
	}
}

// storedByRefLocked devuelve la actividad ya guardada con ese ref, si existe.
// Falla con ErrRefConflict si el ref es de otro animal o de otro tipo.
func (s *Store) storedByRefLocked(a activities.Activity) (activities.Activity, bool, error) {
	if a.Ref == "" {
		return activities.Activity{}, false, nil
	}
	i, ok := s.byRef[a.Ref]
	if !ok {
		return activities.Activity{}, false, nil
	}
	stored := s.activities[i]
	if err := activities.SameRef(stored, a); err != nil {
		return activities.Activity{}, false, err
	}
	return stored, true, nil
}

// insertLocked asume s.mu tomado en escritura.
func (s *Store) insertLocked(a activities.Activity) (activities.Activity, error) {
	stored, ok, err := s.storedByRefLocked(a)
	if err != nil || ok {
		return stored, err
	}
	s.nextID++
	a.ID = s.nextID
	s.activities = append(s.activities, a)
	if a.Ref != "" {
		s.byRef[a.Ref] = len(s.activities) - 1
	}
	return a, nil
}
