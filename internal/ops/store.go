package ops

import (
	"github.com/jacksmith/todo/internal/model"
)

// Persister defines the persistence interface required by a Session.
// The concrete implementation is storage.Gateway, but this interface allows
// alternative backends (in-memory, HTTP, etc.) for testing.
//
// Implementations contain their own failures: Load returns an empty list
// when nothing usable is stored, and Save reports errors out of band.
type Persister interface {
	Load() []model.Task
	Save(tasks []model.Task)
}
