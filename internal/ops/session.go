// Package ops wires the task store to its persistence for one run of the
// application.
package ops

import (
	"context"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/storage"
	"github.com/jacksmith/todo/internal/store"
)

// SessionOptions controls how a Session persists changes.
type SessionOptions struct {
	// Async moves saves to a background storage.Writer. Saves are still
	// applied in mutation order; Close waits for them.
	Async bool
}

// Session pairs a store with its persister.
type Session struct {
	store  *store.Store
	writer *storage.Writer
}

// Open loads the persisted tasks, initializes a new store with them and
// only then subscribes the persister to changes. Nothing is saved until a
// mutation succeeds.
func Open(p Persister, opts SessionOptions) *Session {
	s := store.New()

	// A fresh store cannot already be initialized.
	_ = s.Initialize(p.Load())

	sess := &Session{store: s}
	if opts.Async {
		sess.writer = storage.NewWriter(p)
		s.Subscribe(sess.writer.Enqueue)
	} else {
		s.Subscribe(p.Save)
	}
	return sess
}

// Store returns the underlying store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Add creates a task named name. Blank names report false.
func (s *Session) Add(name string) (model.Task, bool) {
	return s.store.Add(name)
}

// Toggle sets the done flag of task id. Unknown IDs report false.
func (s *Session) Toggle(id int, done bool) bool {
	return s.store.Toggle(id, done)
}

// Remove deletes task id. Unknown IDs report false.
func (s *Session) Remove(id int) bool {
	return s.store.Remove(id)
}

// Snapshot returns a copy of the current task list.
func (s *Session) Snapshot() []model.Task {
	return s.store.Snapshot()
}

// Flush waits until every change made so far has been handed to the
// persister. It is a no-op for synchronous sessions.
func (s *Session) Flush(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Flush(ctx)
}

// Close waits for pending saves and stops background work.
func (s *Session) Close(ctx context.Context) error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Shutdown(ctx)
}
