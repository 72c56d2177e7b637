package ops

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/storage"
)

// memPersister is an in-memory Persister that records every save.
type memPersister struct {
	mu     sync.Mutex
	loaded []model.Task
	saves  [][]model.Task
}

func (m *memPersister) Load() []model.Task {
	return model.CloneTasks(m.loaded)
}

func (m *memPersister) Save(tasks []model.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, tasks)
}

func (m *memPersister) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *memPersister) lastSave() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil
	}
	return m.saves[len(m.saves)-1]
}

// setupTestGateway returns a gateway for a task file in a temp dir.
func setupTestGateway(t *testing.T) (*storage.Gateway, *bytes.Buffer) {
	t.Helper()
	var diag bytes.Buffer
	path := filepath.Join(t.TempDir(), "tasks.json")
	return storage.New(path, storage.WithDiagnostics(&diag)), &diag
}

// TestOpenDoesNotSave checks that startup never writes the file.
func TestOpenDoesNotSave(t *testing.T) {
	p := &memPersister{loaded: []model.Task{{ID: 2, Name: "existing"}}}

	sess := Open(p, SessionOptions{})
	if got := p.saveCount(); got != 0 {
		t.Fatalf("expected no saves after Open, got %d", got)
	}
	if !sess.Store().Initialized() {
		t.Fatal("expected store to be initialized")
	}
	if got := sess.Snapshot(); !reflect.DeepEqual(got, p.loaded) {
		t.Errorf("expected snapshot %v, got %v", p.loaded, got)
	}
}

// TestOpenRejectsSecondInitialize checks the store refuses a second load.
func TestOpenRejectsSecondInitialize(t *testing.T) {
	sess := Open(&memPersister{}, SessionOptions{})
	if err := sess.Store().Initialize([]model.Task{{ID: 1, Name: "dup"}}); err == nil {
		t.Fatal("expected error on second Initialize")
	}
	if got := len(sess.Snapshot()); got != 0 {
		t.Errorf("expected empty store, got %d tasks", got)
	}
}

// TestSessionSavesEveryMutation checks each successful mutation saves once.
func TestSessionSavesEveryMutation(t *testing.T) {
	p := &memPersister{}
	sess := Open(p, SessionOptions{})

	sess.Add("buy milk")
	sess.Add("   ")
	sess.Toggle(1, true)
	sess.Toggle(99, true)
	sess.Remove(42)
	sess.Remove(1)

	if got := p.saveCount(); got != 3 {
		t.Fatalf("expected 3 saves, got %d", got)
	}
	if got := p.lastSave(); len(got) != 0 {
		t.Errorf("expected last save to be empty, got %v", got)
	}
}

// TestSessionNextIDAfterLoad checks ids continue after the loaded maximum.
func TestSessionNextIDAfterLoad(t *testing.T) {
	g, _ := setupTestGateway(t)
	g.Save([]model.Task{
		{ID: 3, Name: "a"},
		{ID: 7, Name: "b"},
		{ID: 5, Name: "c"},
	})

	sess := Open(g, SessionOptions{})
	task, ok := sess.Add("d")
	if !ok {
		t.Fatal("expected Add to succeed")
	}
	if task.ID != 8 {
		t.Errorf("expected id 8, got %d", task.ID)
	}
}

// TestSessionKeepsFileLoadableAtLargestID checks that a file holding the
// largest possible id is never followed by an unloadable save.
func TestSessionKeepsFileLoadableAtLargestID(t *testing.T) {
	g, _ := setupTestGateway(t)
	g.Save([]model.Task{{ID: math.MaxInt, Name: "big"}})

	sess := Open(g, SessionOptions{})
	if _, ok := sess.Add("next"); ok {
		t.Fatal("expected Add to be refused")
	}

	tasks, err := g.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := []model.Task{{ID: math.MaxInt, Name: "big"}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("expected %v, got %v", want, tasks)
	}
}

// TestSessionMissingFile checks a missing file gives an empty store.
func TestSessionMissingFile(t *testing.T) {
	g, diag := setupTestGateway(t)

	sess := Open(g, SessionOptions{})
	if got := len(sess.Snapshot()); got != 0 {
		t.Errorf("expected empty store, got %d tasks", got)
	}
	if got := sess.Store().NextID(); got != 1 {
		t.Errorf("expected next id 1, got %d", got)
	}
	if diag.Len() != 0 {
		t.Errorf("expected no diagnostic, got %q", diag.String())
	}
	if _, err := os.Stat(g.Path()); !os.IsNotExist(err) {
		t.Errorf("expected Open not to create %s", g.Path())
	}
}

// TestSessionCorruptFile checks a corrupt file gives an empty store and is
// only replaced by the next mutation.
func TestSessionCorruptFile(t *testing.T) {
	g, diag := setupTestGateway(t)
	if err := os.WriteFile(g.Path(), []byte(`[{"id":1,"name":"a"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	sess := Open(g, SessionOptions{})
	if got := len(sess.Snapshot()); got != 0 {
		t.Errorf("expected empty store, got %d tasks", got)
	}
	if diag.Len() == 0 {
		t.Error("expected a diagnostic for the corrupt file")
	}

	data, err := os.ReadFile(g.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"id":1,"name":"a"}]` {
		t.Errorf("expected corrupt file untouched before any mutation, got %q", data)
	}

	sess.Add("fresh start")
	tasks, err := g.Read()
	if err != nil {
		t.Fatalf("expected readable file after save: %v", err)
	}
	if want := []model.Task{{ID: 1, Name: "fresh start"}}; !reflect.DeepEqual(tasks, want) {
		t.Errorf("expected %v, got %v", want, tasks)
	}
}

// TestSessionScenario walks the add/add/toggle/remove example end to end.
func TestSessionScenario(t *testing.T) {
	for _, async := range []bool{false, true} {
		name := "sync"
		if async {
			name = "async"
		}
		t.Run(name, func(t *testing.T) {
			g, diag := setupTestGateway(t)
			sess := Open(g, SessionOptions{Async: async})

			milk, _ := sess.Add("buy milk")
			mom, _ := sess.Add("call mom")
			if milk.ID != 1 || milk.Done || mom.ID != 2 || mom.Done {
				t.Fatalf("unexpected tasks %v %v", milk, mom)
			}

			sess.Toggle(1, true)
			snap := sess.Snapshot()
			if !snap[0].Done || snap[1].Done {
				t.Fatalf("unexpected snapshot after toggle: %v", snap)
			}

			sess.Remove(2)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := sess.Close(ctx); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			tasks, err := g.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			want := []model.Task{{ID: 1, Name: "buy milk", Done: true}}
			if !reflect.DeepEqual(tasks, want) {
				t.Errorf("expected persisted %v, got %v", want, tasks)
			}
			if diag.Len() != 0 {
				t.Errorf("unexpected diagnostic %q", diag.String())
			}

			// A new session sees the same state.
			next := Open(g, SessionOptions{})
			if got := next.Snapshot(); !reflect.DeepEqual(got, want) {
				t.Errorf("expected reloaded %v, got %v", want, got)
			}
			if got := next.Store().NextID(); got != 3 {
				t.Errorf("expected next id 3 after reload, got %d", got)
			}
		})
	}
}

// TestSessionSaveFailureKeepsState checks a failing save leaves the store usable.
func TestSessionSaveFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	var diag bytes.Buffer
	g := storage.New(filepath.Join(blocker, "tasks.json"), storage.WithDiagnostics(&diag))

	sess := Open(g, SessionOptions{})
	if _, ok := sess.Add("survives"); !ok {
		t.Fatal("expected Add to succeed despite save failure")
	}
	if !sess.Toggle(1, true) {
		t.Fatal("expected Toggle to succeed despite save failure")
	}

	want := []model.Task{{ID: 1, Name: "survives", Done: true}}
	if got := sess.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !strings.Contains(diag.String(), "changes not saved") {
		t.Errorf("expected a save diagnostic, got %q", diag.String())
	}
}

// TestAsyncSessionFlush checks Flush makes pending changes visible on disk.
func TestAsyncSessionFlush(t *testing.T) {
	g, _ := setupTestGateway(t)
	sess := Open(g, SessionOptions{Async: true})
	defer sess.Close(context.Background())

	for i := 0; i < 10; i++ {
		sess.Add("task")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sess.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	tasks, err := g.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(tasks) != 10 {
		t.Errorf("expected 10 persisted tasks, got %d", len(tasks))
	}
}

// TestSyncSessionFlushIsNoop checks Flush and Close on a sync session.
func TestSyncSessionFlushIsNoop(t *testing.T) {
	sess := Open(&memPersister{}, SessionOptions{})
	if err := sess.Flush(context.Background()); err != nil {
		t.Errorf("unexpected Flush error: %v", err)
	}
	if err := sess.Close(context.Background()); err != nil {
		t.Errorf("unexpected Close error: %v", err)
	}
}
