package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	return stateCmd("done <id>", "Mark a task as done", "TASK_DONE_ERROR", models.TaskStateDone,
		func(env *handler.Env) stateSetter { return env.CLI.App.UseCases.SetTaskDone.Execute })
}

// ReopenCmd returns the task reopen subcommand
func ReopenCmd() *cobra.Command {
	return stateCmd("reopen <id>", "Mark a task as open again", "TASK_REOPEN_ERROR", models.TaskStateOpen,
		func(env *handler.Env) stateSetter { return env.CLI.App.UseCases.SetTaskOpen.Execute })
}

// StartCmd returns the task start subcommand
func StartCmd() *cobra.Command {
	return stateCmd("start <id>", "Mark a task as in progress", "TASK_START_ERROR", models.TaskStateInProgress,
		func(env *handler.Env) stateSetter { return env.CLI.App.UseCases.SetTaskInProgress.Execute })
}

type stateSetter func(ctx context.Context, id types.TaskID) result.Result[result.Unit]

func stateCmd(use, short, errCode string, state models.TaskState, setter func(*handler.Env) stateSetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cli.ExactArgs(1),
		RunE: handler.Command(errCode, func(ctx context.Context, env *handler.Env) error {
			id := types.TaskID(env.Args[0])
			if err := setter(env)(ctx, id).Err(); err != nil {
				return handler.Suggest(err, "Run 'todometer task ls' to see available tasks")
			}
			return env.Formatter.Success(cli.IDView{ID: id.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "%s Task %s is now %s\n", styles.SuccessStyle.Render("✓"), id, state)
			})
		}),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}
