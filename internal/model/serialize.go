package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidEncoding is returned when task data cannot be decoded.
var ErrInvalidEncoding = errors.New("invalid task encoding")

// taskKeys lists the keys of a task record in encoding order.
var taskKeys = []string{"id", "name", "done"}

// EncodeTasks serializes tasks as a JSON array in their given order.
// When indent is true the output is indented with two spaces.
// The result always ends with a newline.
func EncodeTasks(tasks []Task, indent bool) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(tasks, "", "  ")
	} else {
		data, err = json.Marshal(tasks)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}

	return append(data, '\n'), nil
}

// DecodeTasks parses a JSON array of task records.
// Every record must have exactly the keys id, name and done, spelled in
// lower case, with the right types. IDs must be positive and unique, names
// must not be blank. All failures wrap ErrInvalidEncoding.
func DecodeTasks(data []byte) ([]Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var records []map[string]json.RawMessage
	if err := dec.Decode(&records); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected a list of tasks", ErrInvalidEncoding)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after task list", ErrInvalidEncoding)
	}

	tasks := make([]Task, 0, len(records))
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		task, err := decodeRecord(i, r)
		if err != nil {
			return nil, err
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidEncoding, task.ID)
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// decodeRecord converts the i-th record of a task list into a Task.
func decodeRecord(i int, r map[string]json.RawMessage) (Task, error) {
	if r == nil {
		return Task{}, fmt.Errorf("%w: record %d is null", ErrInvalidEncoding, i)
	}
	for _, key := range taskKeys {
		raw, ok := r[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return Task{}, fmt.Errorf("%w: record %d is missing %q", ErrInvalidEncoding, i, key)
		}
	}
	if len(r) != len(taskKeys) {
		for key := range r {
			if !isTaskKey(key) {
				return Task{}, fmt.Errorf("%w: record %d has unknown field %q", ErrInvalidEncoding, i, key)
			}
		}
	}

	var task Task
	if err := json.Unmarshal(r["id"], &task.ID); err != nil {
		return Task{}, fmt.Errorf("%w: record %d field %q: %v", ErrInvalidEncoding, i, "id", err)
	}
	if err := json.Unmarshal(r["name"], &task.Name); err != nil {
		return Task{}, fmt.Errorf("%w: record %d field %q: %v", ErrInvalidEncoding, i, "name", err)
	}
	if err := json.Unmarshal(r["done"], &task.Done); err != nil {
		return Task{}, fmt.Errorf("%w: record %d field %q: %v", ErrInvalidEncoding, i, "done", err)
	}

	if task.ID <= 0 {
		return Task{}, fmt.Errorf("%w: record %d has non-positive id %d", ErrInvalidEncoding, i, task.ID)
	}
	if strings.TrimSpace(task.Name) == "" {
		return Task{}, fmt.Errorf("%w: record %d has an empty name", ErrInvalidEncoding, i)
	}
	return task, nil
}

func isTaskKey(key string) bool {
	for _, k := range taskKeys {
		if k == key {
			return true
		}
	}
	return false
}
