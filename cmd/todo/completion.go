package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for todo.

To load completions:

Bash:
  $ source <(todo completion bash)

Zsh:
  $ todo completion zsh > "${fpath[1]}/_todo"

Fish:
  $ todo completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	// Replace cobra's default completion command with ours
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeOpenTaskIDs completes IDs of tasks that are not done.
func completeOpenTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(t model.Task) bool { return !t.Done })
}

// completeDoneTaskIDs completes IDs of done tasks.
func completeDoneTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(t model.Task) bool { return t.Done })
}

// completeAllTaskIDs completes every task ID.
func completeAllTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return completeIDs(toComplete, func(model.Task) bool { return true })
}

// completeIDs reads the task file without reporting problems; completion
// must stay quiet and must never write.
func completeIDs(toComplete string, keep func(model.Task) bool) ([]string, cobra.ShellCompDirective) {
	g, err := openGateway()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tasks, err := g.Read()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	toComplete = strings.TrimPrefix(toComplete, "#")
	var completions []string
	for _, t := range tasks {
		if !keep(t) {
			continue
		}
		id := strconv.Itoa(t.ID)
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+truncate(t.Name, 40))
		}
	}

	return completions, cobra.ShellCompDirectiveNoFileComp
}

// truncate shortens a string to the given number of runes, adding "..." if
// truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
