// Package storage provides file system operations for the task file.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jacksmith/todo/internal/model"
)

// DefaultFile is the backing file name used when none is configured.
const DefaultFile = "tasks.json"

// Gateway is the only reader and writer of the backing task file.
//
// Read and Write report errors. Load and Save contain them: failures are
// written to the diagnostics writer and never reach the caller.
type Gateway struct {
	path    string
	indent  bool
	diag    io.Writer
	perm    os.FileMode
	dirPerm os.FileMode
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDiagnostics sets where load and save failures are reported.
func WithDiagnostics(w io.Writer) Option {
	return func(g *Gateway) {
		g.diag = w
	}
}

// WithCompact writes the task file on a single line instead of indented.
func WithCompact() Option {
	return func(g *Gateway) {
		g.indent = false
	}
}

// New returns a Gateway for the file at path.
// An empty path means DefaultFile in the working directory.
func New(path string, opts ...Option) *Gateway {
	if path == "" {
		path = DefaultFile
	}
	g := &Gateway{
		path:    path,
		indent:  true,
		diag:    os.Stderr,
		perm:    0644,
		dirPerm: 0755,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Path returns the path of the backing file.
func (g *Gateway) Path() string {
	return g.path
}

// Read loads the task list from disk.
// A missing file is not an error and yields (nil, nil).
func (g *Gateway) Read() ([]model.Task, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read task file %s: %w", g.path, err)
	}

	tasks, err := model.DecodeTasks(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", g.path, err)
	}

	return tasks, nil
}

// Write replaces the task file with tasks, in their given order.
// The new content is written to a temporary file in the same directory and
// renamed over the old one, so readers never see a partial file.
func (g *Gateway) Write(tasks []model.Task) error {
	data, err := model.EncodeTasks(tasks, g.indent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, g.dirPerm); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(g.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, g.perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if err := os.Rename(tmpPath, g.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write task file %s: %w", g.path, err)
	}

	return nil
}

// Load returns the persisted task list, or an empty list if there is none.
// Unreadable or malformed files are reported as a diagnostic and treated
// as no prior state.
func (g *Gateway) Load() []model.Task {
	tasks, err := g.Read()
	if err != nil {
		g.warnf("starting with an empty list: %v", err)
		return []model.Task{}
	}
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

// Save persists tasks, reporting any failure as a diagnostic.
func (g *Gateway) Save(tasks []model.Task) {
	if err := g.Write(tasks); err != nil {
		g.warnf("changes not saved: %v", err)
	}
}

func (g *Gateway) warnf(format string, args ...interface{}) {
	if g.diag == nil {
		return
	}
	fmt.Fprintf(g.diag, "warning: "+format+"\n", args...)
}
