// Package task implements the task command group
package task

import (
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(ReopenCmd())
	cmd.AddCommand(StartCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}
