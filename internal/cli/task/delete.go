package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/types"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and its checklist",
		Args:  cli.ExactArgs(1),
		RunE:  handler.Command("TASK_DELETE_ERROR", runDelete),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, env *handler.Env) error {
	id := types.TaskID(env.Args[0])
	if err := env.CLI.App.UseCases.DeleteTask.Execute(ctx, id).Err(); err != nil {
		return handler.Suggest(err, "Run 'todometer task ls' to see available tasks")
	}

	return env.Formatter.Success(cli.IDView{ID: id.String()}, func(w io.Writer) {
		fmt.Fprintf(w, "%s Deleted task %s\n", styles.SuccessStyle.Render("✓"), id)
	})
}
