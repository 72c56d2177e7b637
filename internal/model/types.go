// Package model defines the core data structures for todo.
package model

// Task is a single entry in the task list.
// ID and Name never change after creation; Done is the only mutable field.
type Task struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// MaxID returns the largest ID in tasks, or 0 if tasks is empty.
func MaxID(tasks []Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}

// CloneTasks returns a copy of tasks that shares no backing array with it.
// A nil or empty input yields an empty, non-nil slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
