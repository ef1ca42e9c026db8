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

// UpdateCmd returns the tasklist update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Rename a task list or change its description",
		Long: `Update a task list. Only the flags given are changed.

Examples:
  todometer tasklist update Groceries --name "Shopping"
  todometer tasklist update Work --description "Day job"
`,
		Args: cli.ExactArgs(1),
		RunE: handler.Command("TASK_LIST_UPDATE_ERROR", runUpdate),
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description (use - to read from stdin)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(ctx context.Context, env *handler.Env) error {
	flags := handler.NewFlagParser(env.Cmd)
	if !flags.Changed("name") && !flags.Changed("description") {
		return handler.Suggest(
			cli.Exit(cli.ExitUsage, fmt.Errorf("nothing to update")),
			"Pass --name or --description",
		)
	}

	list, err := cli.ResolveTaskList(ctx, env.CLI, env.Args[0])
	if err != nil {
		return handler.Suggest(err, "Run 'todometer tasklist ls' to see available task lists")
	}

	if flags.Changed("name") {
		if list.Name, err = flags.Name("name"); err != nil {
			return err
		}
	}
	if flags.Changed("description") {
		if list.Description, err = flags.Description("description"); err != nil {
			return err
		}
	}

	if err := env.CLI.App.UseCases.UpdateTaskList.Execute(ctx, list).Err(); err != nil {
		return err
	}

	return env.Formatter.Success(cli.NewTaskListView(list, ""), func(w io.Writer) {
		fmt.Fprintf(w, "%s Updated task list %s\n", styles.SuccessStyle.Render("✓"), list.Name)
	})
}
