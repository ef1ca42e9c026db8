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

// DeleteCmd returns the tasklist delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a task list and all of its tasks",
		Long: `Delete a task list together with its tasks and their checklists.
If the deleted list was selected, another list becomes selected.`,
		Args: cli.ExactArgs(1),
		RunE: handler.Command("TASK_LIST_DELETE_ERROR", runDelete),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	list, err := cli.ResolveTaskList(ctx, env.CLI, env.Args[0])
	if err != nil {
		return handler.Suggest(err, "Run 'todometer tasklist ls' to see available task lists")
	}

	if err := env.CLI.App.UseCases.DeleteTaskList.Execute(ctx, list.ID).Err(); err != nil {
		return err
	}

	return env.Formatter.Success(cli.IDView{ID: list.ID.String()}, func(w io.Writer) {
		fmt.Fprintf(w, "%s Deleted task list %s\n", styles.SuccessStyle.Render("✓"), list.Name)
	})
}
