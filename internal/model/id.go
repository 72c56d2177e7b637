package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// taskIDRegex matches task IDs like 7, #7, 007
	taskIDRegex = regexp.MustCompile(`^#?(\d+)$`)
)

// ParseTaskID parses a task ID as typed by a user.
// Accepts various formats: 7, 07, #7 all parse to 7.
// Returns ErrInvalidID if the format is invalid.
func ParseTaskID(s string) (int, error) {
	matches := taskIDRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q is not a valid task ID", ErrInvalidID, s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil || num <= 0 {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}

	return num, nil
}

// FormatTaskID formats a task ID for display, e.g. "#7".
func FormatTaskID(id int) string {
	return fmt.Sprintf("#%d", id)
}
