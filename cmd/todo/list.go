package main

import (
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List all tasks in the order they were added.

Use --json to print the list in the task file format.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print tasks as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession(ops.SessionOptions{})
	if err != nil {
		return err
	}

	tasks := sess.Snapshot()

	if listJSON {
		data, err := model.EncodeTasks(tasks, true)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	cli.RenderTasks(os.Stdout, tasks)
	return nil
}
