package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Work on the list interactively",
	Long: `Open the list and keep it open, reading commands from standard input.

The list is shown after every change. Changes are saved in the
background, in order, and any pending save finishes before the shell
exits.

Commands (any unique prefix works):
  add <name>   add a task
  done <id>    mark a task as done
  undo <id>    mark a task as not done
  rm <id>      remove a task
  list         show the list
  help         show this help
  quit         leave the shell (end of input works too)`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// shellCloseTimeout bounds how long the shell waits for the last save.
const shellCloseTimeout = 10 * time.Second

var shellCommands = []string{"add", "done", "undo", "rm", "list", "help", "quit"}

const shellHelp = `add <name>   add a task
done <id>    mark a task as done
undo <id>    mark a task as not done
rm <id>      remove a task
list         show the list
help         show this help
quit         leave the shell`

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	sess, err := openSession(ops.SessionOptions{Async: true})
	if err != nil {
		return err
	}

	loopErr := shellLoop(sess, os.Stdin, os.Stdout, cli.IsInteractive(os.Stdin))

	ctx, cancel := context.WithTimeout(context.Background(), shellCloseTimeout)
	defer cancel()
	if err := sess.Close(ctx); err != nil {
		return fmt.Errorf("failed to finish saving: %w", err)
	}

	return loopErr
}

// shellLoop reads commands from in until quit or end of input.
// A prompt is written before each command when prompt is true.
func shellLoop(sess *ops.Session, in io.Reader, out io.Writer, prompt bool) error {
	cli.RenderTasks(out, sess.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, rest := splitCommand(line)
		name, err := cli.MatchCommand(word, shellCommands)
		if err != nil {
			fmt.Fprintln(out, cli.FormatError(err))
			continue
		}

		if name == "quit" {
			return nil
		}
		runShellCommand(sess, out, name, rest)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// runShellCommand executes one matched shell command.
func runShellCommand(sess *ops.Session, out io.Writer, name, arg string) {
	switch name {
	case "help":
		fmt.Fprintln(out, shellHelp)
		return
	case "list":
		cli.RenderTasks(out, sess.Snapshot())
		return
	case "add":
		if _, ok := sess.Add(arg); !ok {
			fmt.Fprintln(out, "Nothing to add.")
			return
		}
	case "done", "undo", "rm":
		id, err := model.ParseTaskID(arg)
		if err != nil {
			fmt.Fprintln(out, cli.FormatError(&cli.ValidationError{
				Field:   "task ID",
				Message: fmt.Sprintf("%q is not a task number", arg),
			}))
			return
		}

		var ok bool
		if name == "rm" {
			ok = sess.Remove(id)
		} else {
			ok = sess.Toggle(id, name == "done")
		}
		if !ok {
			fmt.Fprintf(out, "No task %s.\n", model.FormatTaskID(id))
			return
		}
	}

	cli.RenderTasks(out, sess.Snapshot())
}

// splitCommand splits a line into its first word and the trimmed rest.
func splitCommand(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
