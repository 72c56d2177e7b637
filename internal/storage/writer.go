package storage

import (
	"context"
	"sync"

	"github.com/jacksmith/todo/internal/model"
)

// Saver persists a full task list. *Gateway implements it.
type Saver interface {
	Save(tasks []model.Task)
}

// Writer applies saves on a background goroutine, in enqueue order.
//
// Only the newest pending snapshot is kept: when several snapshots arrive
// while a save is in flight, the older ones are skipped. An older state is
// therefore never written after a newer one, and once enqueues stop the
// file ends up holding the last enqueued snapshot.
type Writer struct {
	saver Saver

	mu         sync.Mutex
	pending    []model.Task
	hasPending bool
	enqueued   uint64 // sequence number of the last Enqueue
	written    uint64 // sequence number of the last completed save
	progress   chan struct{}
	closed     bool

	// syncMu orders saves made after Shutdown.
	syncMu sync.Mutex

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewWriter starts a Writer that hands snapshots to s.
func NewWriter(s Saver) *Writer {
	w := &Writer{
		saver:    s,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue schedules tasks to be saved and returns without waiting for I/O.
// After Shutdown, the save happens synchronously instead.
func (w *Writer) Enqueue(tasks []model.Task) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.saveAfterShutdown(tasks)
		return
	}
	w.pending = model.CloneTasks(tasks)
	w.hasPending = true
	w.enqueued++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every snapshot enqueued before the call is on disk,
// or ctx is done.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.enqueued
	w.mu.Unlock()

	for {
		w.mu.Lock()
		if w.written >= target {
			w.mu.Unlock()
			return nil
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Shutdown writes any pending snapshot and stops the background goroutine.
// It returns ctx.Err() if ctx is done first; the pending save still
// completes in the background.
func (w *Writer) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.quit)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) run() {
	defer close(w.done)

	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.quit:
			w.drain()
			return
		}
	}
}

// drain saves the pending snapshot, if any, until none is left.
func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if !w.hasPending {
			w.mu.Unlock()
			return
		}
		tasks, seq := w.pending, w.enqueued
		w.pending, w.hasPending = nil, false
		w.mu.Unlock()

		w.saver.Save(tasks)
		w.markWritten(seq)
	}
}

func (w *Writer) saveAfterShutdown(tasks []model.Task) {
	<-w.done

	w.syncMu.Lock()
	defer w.syncMu.Unlock()

	w.mu.Lock()
	w.enqueued++
	seq := w.enqueued
	w.mu.Unlock()

	w.saver.Save(model.CloneTasks(tasks))
	w.markWritten(seq)
}

func (w *Writer) markWritten(seq uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq > w.written {
		w.written = seq
	}
	close(w.progress)
	w.progress = make(chan struct{})
}
