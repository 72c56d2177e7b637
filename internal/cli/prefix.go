// Package cli provides CLI infrastructure for todo.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned when no command matches a prefix.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrAmbiguousCommand is returned when several commands match a prefix.
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

// MatchCommand finds a unique command from a prefix.
// Returns the matched command or an error if ambiguous or no match.
func MatchCommand(prefix string, commands []string) (string, error) {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, prefix)
	}

	// First check for exact match
	for _, cmd := range commands {
		if strings.ToLower(cmd) == prefix {
			return cmd, nil
		}
	}

	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd), prefix) {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w %q matches: %s", ErrAmbiguousCommand, prefix, strings.Join(matches, ", "))
	}
}
