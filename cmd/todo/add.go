package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add a new task",
	Long: `Add a new task to the list.

All arguments are joined with spaces to form the task name, so quoting
is optional. Leading and trailing whitespace is trimmed; a blank name
adds nothing.

Use --editor to write the name in $VISUAL or $EDITOR instead.

Examples:
  todo add buy milk
  todo add "call mom"
  todo add -e`,
	RunE: runAdd,
}

var addEditor bool

func init() {
	addCmd.Flags().BoolVarP(&addEditor, "editor", "e", false, "compose the task name in $EDITOR")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var name string
	switch {
	case addEditor:
		composed, err := cli.ComposeTaskName()
		if err != nil {
			return err
		}
		name = composed
	case len(args) == 0:
		return &cli.ValidationError{Message: "a task name is required (or use --editor)"}
	default:
		name = strings.Join(args, " ")
	}

	sess, err := openSession(ops.SessionOptions{})
	if err != nil {
		return err
	}

	task, ok := sess.Add(name)
	if !ok {
		fmt.Println("Nothing to add.")
		return nil
	}

	fmt.Printf("%s %s\n", model.FormatTaskID(task.ID), task.Name)
	return nil
}
