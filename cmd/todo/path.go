package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the task file path",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	g, err := openGateway()
	if err != nil {
		return err
	}
	fmt.Println(g.Path())
	return nil
}
