package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in the selected task list, or in the list named by --list.

Examples:
  todometer task create --title "Buy milk"

  # With a checklist and a due date
  todometer task create --title "Pack" --item socks --item charger --due 2026-06-01

  # Description from stdin
  cat notes.md | todometer task create --title "Write up" --description -

  # Capture the new id
  TASK_ID=$(todometer task create --title "Call mom" --tag pink --quiet)
`,
		Args: cli.ExactArgs(0),
		RunE: handler.Command("TASK_CREATE_ERROR", runCreate),
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Markdown description (use - to read from stdin)")
	cmd.Flags().String("tag", "", "Tag color (defaults to the configured tag)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM, UTC)")
	cmd.Flags().String("list", "", "Task list id or name (defaults to the selected list)")
	cmd.Flags().StringArray("item", nil, "Checklist item (repeatable)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := handler.NewFlagParser(env.Cmd)

	title, err := flags.Title("title")
	if err != nil {
		return handler.Suggest(err, `Pass a title with --title "Buy milk"`)
	}
	description, err := flags.Description("description")
	if err != nil {
		return err
	}
	tag, err := flags.Tag("tag", env.CLI.Config.DefaultTag())
	if err != nil {
		return err
	}
	due, err := flags.Due("due")
	if err != nil {
		return err
	}
	items, err := flags.Strings("item")
	if err != nil {
		return err
	}
	listRef, err := flags.String("list")
	if err != nil {
		return err
	}

	var id types.TaskID
	if listRef == "" {
		id, err = env.CLI.App.UseCases.InsertTaskInTaskListSelected.
			Execute(ctx, title, tag, cli.OptionalString(description), due, items).Unwrap()
	} else {
		list, lookupErr := cli.ResolveTaskList(ctx, env.CLI, listRef)
		if lookupErr != nil {
			return handler.Suggest(lookupErr, "Run 'todometer tasklist ls' to see available task lists")
		}
		id, err = env.CLI.App.UseCases.InsertTaskWithChecklist.Execute(ctx, repository.TaskInput{
			Title:       title,
			Tag:         tag,
			Description: cli.OptionalString(description),
			DueDate:     due,
			TaskListID:  list.ID,
			Checklist:   items,
		}).Unwrap()
	}
	if err != nil {
		return err
	}

	return env.Formatter.Success(cli.IDView{ID: id.String()}, func(w io.Writer) {
		fmt.Fprintf(w, "%s Created task %s (%s)\n", styles.SuccessStyle.Render("✓"), title, id)
	})
}
