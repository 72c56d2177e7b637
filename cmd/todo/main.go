// Package main is the entry point for the todo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a small personal task list",
	Long: `todo keeps a list of short tasks in a local file.

Add tasks, tick them off, remove them. Every change is written to the
task file (tasks.json in the current directory by default) so the list
survives between runs.

Settings are read from .todoconfig.yaml in the current directory:

  file: tasks.json   # path of the task file
  compact: false     # write the task file on one line
  color: auto        # auto, always or never`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// fileFlag overrides the task file from .todoconfig.yaml.
var fileFlag string

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "task file (overrides .todoconfig.yaml)")

	rootCmd.SetVersionTemplate("todo version {{.Version}}\n")
}

// openGateway resolves the config and returns the gateway for the task file.
func openGateway() (*storage.Gateway, error) {
	cfg, err := storage.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	if err := cli.ConfigureColor(cfg.Color, os.Stdout); err != nil {
		return nil, err
	}

	path := cfg.TaskPath(".")
	if fileFlag != "" {
		path = fileFlag
	}
	return storage.New(path, cfg.GatewayOptions()...), nil
}

// openSession loads the task file and returns a session ready for changes.
func openSession(opts ops.SessionOptions) (*ops.Session, error) {
	g, err := openGateway()
	if err != nil {
		return nil, err
	}
	return ops.Open(g, opts), nil
}

// parseTaskIDs parses every argument as a task ID before anything changes.
func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := model.ParseTaskID(arg)
		if err != nil {
			return nil, &cli.ValidationError{Field: "task ID", Message: fmt.Sprintf("%q is not a task number", arg)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
