package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove task(s)",
	Long: `Remove one or more tasks from the list.

Removed IDs are not handed out again within one run.

Examples:
  todo rm 2
  todo rm 2 4`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runRemove,
	ValidArgsFunction: completeAllTaskIDs,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	sess, err := openSession(ops.SessionOptions{})
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !sess.Remove(id) {
			fmt.Printf("No task %s.\n", model.FormatTaskID(id))
			continue
		}
		fmt.Printf("%s removed.\n", model.FormatTaskID(id))
	}

	return nil
}
