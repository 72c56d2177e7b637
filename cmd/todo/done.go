package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark task(s) as done",
	Long: `Mark one or more tasks as done.

IDs may be written with or without a leading '#'. Unknown IDs are
reported and skipped.

Examples:
  todo done 3
  todo done 3 5 '#8'`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runDone,
	ValidArgsFunction: completeOpenTaskIDs,
}

var undoCmd = &cobra.Command{
	Use:   "undo <id>...",
	Short: "Mark task(s) as not done",
	Long: `Mark one or more done tasks as not done again.

Examples:
  todo undo 3`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runUndo,
	ValidArgsFunction: completeDoneTaskIDs,
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	return setDone(args, true)
}

func runUndo(cmd *cobra.Command, args []string) error {
	return setDone(args, false)
}

func setDone(args []string, done bool) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	sess, err := openSession(ops.SessionOptions{})
	if err != nil {
		return err
	}

	verb := "reopened"
	if done {
		verb = "done"
	}

	for _, id := range ids {
		if !sess.Toggle(id, done) {
			fmt.Printf("No task %s.\n", model.FormatTaskID(id))
			continue
		}
		fmt.Printf("%s %s.\n", model.FormatTaskID(id), verb)
	}

	return nil
}
