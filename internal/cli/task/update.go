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

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update a task. Only the flags given are changed.

Examples:
  todometer task update <id> --title "Buy oat milk"
  todometer task update <id> --due ""        # clear the due date
`,
		Args: cli.ExactArgs(1),
		RunE: handler.Command("TASK_UPDATE_ERROR", runUpdate),
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (use - to read from stdin, empty to clear)")
	cmd.Flags().String("tag", "", "New tag")
	cmd.Flags().String("due", "", "New due date (empty to clear)")
	cmd.Flags().String("state", "", "New state (open, in_progress, done)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := handler.NewFlagParser(env.Cmd)
	changed := false
	for _, name := range []string{"title", "description", "tag", "due", "state"} {
		changed = changed || flags.Changed(name)
	}
	if !changed {
		return handler.Suggest(
			cli.Exit(cli.ExitUsage, fmt.Errorf("nothing to update")),
			"Pass at least one of --title, --description, --tag, --due, --state",
		)
	}

	detail, err := cli.GetTaskDetail(ctx, env.CLI, types.TaskID(env.Args[0]))
	if err != nil {
		return handler.Suggest(err, "Run 'todometer task ls' to see available tasks")
	}
	task := detail.Task

	if flags.Changed("title") {
		if task.Title, err = flags.Title("title"); err != nil {
			return err
		}
	}
	if flags.Changed("description") {
		description, err := flags.Description("description")
		if err != nil {
			return err
		}
		task.Description = cli.OptionalString(description)
	}
	if flags.Changed("tag") {
		if task.Tag, err = flags.Tag("tag", task.Tag); err != nil {
			return err
		}
	}
	if flags.Changed("due") {
		if task.DueDate, err = flags.Due("due"); err != nil {
			return err
		}
	}
	if flags.Changed("state") {
		value, err := flags.String("state")
		if err != nil {
			return err
		}
		if task.State, err = cli.ParseState(value); err != nil {
			return err
		}
	}

	if err := env.CLI.App.UseCases.UpdateTask.Execute(ctx, task).Err(); err != nil {
		return err
	}

	return env.Formatter.Success(cli.NewTaskView(task), func(w io.Writer) {
		fmt.Fprintf(w, "%s Updated task %s\n", styles.SuccessStyle.Render("✓"), task.Title)
	})
}
