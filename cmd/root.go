// Package cmd assembles the todometer command tree
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/checklist"
	"github.com/thenoetrevino/todometer/internal/cli/task"
	"github.com/thenoetrevino/todometer/internal/cli/tasklist"
	"github.com/thenoetrevino/todometer/internal/cli/watch"
)

// NewRootCmd builds the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todometer",
		Short: "Todometer - task lists that stay in sync",
		Long: `Todometer manages task lists, tasks and their checklists.

Every change is announced to the todometer daemon when it is running, so
other open clients (the CLI watch view, the HTTP backend) update live.

Exit codes:
  0  success
  1  general error
  2  usage error
  3  not found
  4  invalid data
  5  validation error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.Exit(cli.ExitUsage, err)
	})

	rootCmd.AddCommand(tasklist.TaskListCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(checklist.ChecklistCmd())
	rootCmd.AddCommand(watch.WatchCmd())

	return rootCmd
}
