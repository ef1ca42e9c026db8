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

// CreateCmd returns the tasklist create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task list",
		Long: `Create a new task list.

Examples:
  todometer tasklist create --name "Groceries"

  # Capture the new id in a script
  LIST_ID=$(todometer tasklist create --name "Work" --quiet)
`,
		Args: cli.ExactArgs(0),
		RunE: handler.Command("TASK_LIST_CREATE_ERROR", runCreate),
	}

	cmd.Flags().String("name", "", "Task list name (required)")
	cmd.Flags().String("description", "", "Task list description (use - to read from stdin)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, env *handler.Env) error {
	flags := handler.NewFlagParser(env.Cmd)
	name, err := flags.Name("name")
	if err != nil {
		return handler.Suggest(err, `Pass a name with --name "Groceries"`)
	}
	description, err := flags.Description("description")
	if err != nil {
		return err
	}

	id, err := env.CLI.App.UseCases.InsertTaskList.Execute(ctx, name, description).Unwrap()
	if err != nil {
		return err
	}

	return env.Formatter.Success(cli.IDView{ID: id.String()}, func(w io.Writer) {
		fmt.Fprintf(w, "%s Created task list %s (%s)\n", styles.SuccessStyle.Render("✓"), name, id)
	})
}
