// Package store holds the authoritative in-memory task list.
package store

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/jacksmith/todo/internal/model"
)

// ErrAlreadyInitialized is returned by Initialize when it has already run.
var ErrAlreadyInitialized = errors.New("store already initialized")

// Observer is called with a fresh snapshot after every successful mutation.
type Observer func(tasks []model.Task)

// Store owns the ordered task list and the next-ID counter.
//
// A Store starts uninitialized: until Initialize runs, mutations are
// ignored and observers are never called, so nothing can persist an empty
// list over state that has not been loaded yet.
type Store struct {
	mu        sync.Mutex
	tasks     []model.Task
	nextID    int
	ready     bool
	observers []Observer

	// notifyMu serializes observer calls so they see mutations in order.
	notifyMu sync.Mutex
}

// New returns an uninitialized Store.
func New() *Store {
	return &Store{nextID: 1}
}

// Initialize replaces the task list with loaded, preserving order, and sets
// the next ID to one past the largest loaded ID (or 1 when loaded is empty).
// When the largest loaded ID is math.MaxInt no further IDs are available.
// It must be called exactly once; later calls return ErrAlreadyInitialized.
func (s *Store) Initialize(loaded []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return ErrAlreadyInitialized
	}

	s.tasks = model.CloneTasks(loaded)
	s.nextID = successor(model.MaxID(loaded))
	s.ready = true
	return nil
}

// Initialized reports whether Initialize has run.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Subscribe registers fn to be called after every successful mutation.
// Observers run synchronously, in registration order, and must not call
// back into the Store's mutation methods.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Add appends a new open task named name (trimmed) and returns it.
// Blank names are ignored and report false, as are adds once every
// positive ID has been assigned.
func (s *Store) Add(name string) (model.Task, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, false
	}

	var task model.Task
	ok := s.mutate(func() bool {
		if s.nextID == 0 {
			return false
		}
		task = model.Task{ID: s.nextID, Name: name, Done: false}
		s.tasks = append(s.tasks, task)
		s.nextID = successor(s.nextID)
		return true
	})
	if !ok {
		return model.Task{}, false
	}
	return task, true
}

// Toggle sets the done flag of the task with the given ID.
// Unknown IDs are ignored and report false.
func (s *Store) Toggle(id int, done bool) bool {
	return s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		t := s.tasks[i]
		t.Done = done
		s.tasks[i] = t
		return true
	})
}

// Remove deletes the task with the given ID, keeping the order of the rest.
// The next-ID counter is never decremented. Unknown IDs report false.
func (s *Store) Remove(id int) bool {
	return s.mutate(func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		return true
	})
}

// Snapshot returns a copy of the current task list.
func (s *Store) Snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTasks(s.tasks)
}

// NextID returns the ID the next Add will assign, or 0 when IDs are
// exhausted.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// mutate runs fn under the lock and, if it reports a change, notifies
// observers with the resulting snapshot.
func (s *Store) mutate(fn func() bool) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if !s.ready || !fn() {
		s.mu.Unlock()
		return false
	}
	observers := append([]Observer(nil), s.observers...)
	tasks := model.CloneTasks(s.tasks)
	s.mu.Unlock()

	for _, obs := range observers {
		obs(model.CloneTasks(tasks))
	}
	return true
}

// indexOf returns the position of id in s.tasks, or -1. Caller holds s.mu.
func (s *Store) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// successor returns the ID after id, or 0 when id is the largest int.
func successor(id int) int {
	if id == math.MaxInt {
		return 0
	}
	return id + 1
}
