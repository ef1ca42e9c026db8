package task

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long: `List the tasks of the selected task list, or of the list named by --list.

Examples:
  todometer task ls
  todometer task ls --list Work --state open
`,
		Args: cli.ExactArgs(0),
		RunE: handler.Command("TASK_LIST_ERROR", runList),
	}

	cmd.Flags().String("list", "", "Task list id or name (defaults to the selected list)")
	cmd.Flags().String("state", "", "Only show tasks in this state (open, in_progress, done)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	flags := handler.NewFlagParser(env.Cmd)
	listRef, err := flags.String("list")
	if err != nil {
		return err
	}

	var filter models.TaskState
	if flags.Changed("state") {
		value, err := flags.String("state")
		if err != nil {
			return err
		}
		if filter, err = cli.ParseState(value); err != nil {
			return err
		}
	}

	var tasks []models.Task
	if listRef == "" {
		tasks, err = repository.Once(ctx, env.CLI.App.UseCases.GetTaskListSelectedTasks.Execute).Unwrap()
	} else {
		list, lookupErr := cli.ResolveTaskList(ctx, env.CLI, listRef)
		if lookupErr != nil {
			return handler.Suggest(lookupErr, "Run 'todometer tasklist ls' to see available task lists")
		}
		tasks, err = repository.Once(ctx, func(ctx context.Context) <-chan result.Result[[]models.Task] {
			return env.CLI.App.UseCases.GetTasks.Execute(ctx, list.ID)
		}).Unwrap()
	}
	if err != nil {
		return err
	}

	if filter != "" {
		kept := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.State == filter {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	views := cli.NewTaskViews(tasks)
	if env.Formatter.Quiet {
		for _, v := range views {
			fmt.Fprintln(env.Formatter.Out, v.ID)
		}
		return nil
	}

	return env.Formatter.Success(views, func(w io.Writer) {
		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks found")
			return
		}
		fmt.Fprintf(w, "Found %d tasks:\n\n", len(tasks))
		now := time.Now()
		for _, t := range tasks {
			fmt.Fprintln(w, styles.RenderTaskLine(t, now))
		}
	})
}
