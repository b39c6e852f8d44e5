package memory

import (
	"testing"

	"sheep-management/internal/adapters/storage/storagetest"
)

func TestMemoryRepos(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Repos {
		s := NewStore()
		return storagetest.Repos{
			Animals:    NewAnimalRepo(s),
			Activities: NewActivityRepo(s),
			Records:    NewRecordRepo(s),
		}
	})
}
