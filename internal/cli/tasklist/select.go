package tasklist

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
)

// SelectCmd returns the tasklist select subcommand
func SelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "select <id|name>",
		Aliases: []string{"use"},
		Short:   "Select the task list new tasks go to",
		Long: `Select a task list. Commands that take an optional --list default to
the selected list, and every client sees the new selection.`,
		Args: cli.ExactArgs(1),
		RunE: handler.Command("TASK_LIST_SELECT_ERROR", runSelect),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runSelect(ctx context.Context, env *handler.Env) error {
	list, err := cli.ResolveTaskList(ctx, env.CLI, env.Args[0])
	if err != nil {
		return handler.Suggest(err, "Run 'todometer tasklist ls' to see available task lists")
	}

	if err := env.CLI.App.UseCases.SetTaskListSelected.Execute(ctx, list.ID).Err(); err != nil {
		return err
	}

	return env.Formatter.Success(cli.NewTaskListView(list, list.ID), func(w io.Writer) {
		fmt.Fprintf(w, "%s Selected task list %s\n", styles.SuccessStyle.Render("✓"), list.Name)
	})
}
