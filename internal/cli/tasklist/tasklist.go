// Package tasklist implements the tasklist command group
package tasklist

import (
	"github.com/spf13/cobra"
)

// TaskListCmd returns the tasklist parent command
func TaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasklist",
		Aliases: []string{"list", "tl"},
		Short:   "Manage task lists",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(SelectCmd())

	return cmd
}
