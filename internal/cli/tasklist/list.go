package tasklist

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/repository"
)

// ListCmd returns the tasklist list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List task lists",
		Long:    "List every task list. The selected list is marked with *.",
		Args:    cli.ExactArgs(0),
		RunE:    handler.Command("TASK_LIST_LIST_ERROR", runList),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	uc := env.CLI.App.UseCases
	lists, err := repository.Once(ctx, uc.GetTaskLists.Execute).Unwrap()
	if err != nil {
		return err
	}
	// with no lists there is no selection
	selected, err := repository.Once(ctx, uc.GetTaskListSelected.Execute).Unwrap()
	if err != nil && !repository.IsNotFound(err) {
		return err
	}

	views := make([]cli.TaskListView, 0, len(lists))
	for _, l := range lists {
		views = append(views, cli.NewTaskListView(l, selected.ID))
	}

	if env.Formatter.Quiet {
		for _, v := range views {
			fmt.Fprintln(env.Formatter.Out, v.ID)
		}
		return nil
	}

	return env.Formatter.Success(views, func(w io.Writer) {
		if len(views) == 0 {
			fmt.Fprintln(w, "No task lists found")
			return
		}
		fmt.Fprintf(w, "Found %d task lists:\n\n", len(views))
		for _, v := range views {
			marker := " "
			if v.Selected {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s  %s\n", marker, styles.TitleStyle.Render(v.Name), styles.SubtitleStyle.Render(v.ID))
		}
	})
}
