// Package checklist implements the checklist command group
package checklist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
	"github.com/thenoetrevino/todometer/internal/types"
)

const taskHint = "Run 'todometer task ls' to see available tasks"

const itemHint = "Run 'todometer checklist ls <task-id>' to see the item ids"

// ChecklistCmd returns the checklist parent command
func ChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage the checklist of a task",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(UncheckCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// AddCmd returns the checklist add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <task-id> <text>...",
		Short: "Append items to a task's checklist",
		Long: `Append one item per argument to the end of a task's checklist.

Examples:
  todometer checklist add <task-id> socks charger "travel adapter"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return cli.Exit(cli.ExitUsage, err)
			}
			return nil
		},
		RunE: handler.Command("CHECKLIST_ADD_ERROR", runAdd),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(ctx context.Context, env *handler.Env) error {
	taskID := types.TaskID(env.Args[0])
	texts := env.Args[1:]
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return cli.Exit(cli.ExitValidation, fmt.Errorf("checklist item text must not be empty"))
		}
	}

	ids, err := env.CLI.App.UseCases.InsertTaskChecklistItems.Execute(ctx, taskID, texts...).Unwrap()
	if err != nil {
		return handler.Suggest(err, taskHint)
	}

	views := make([]cli.IDView, 0, len(ids))
	for _, id := range ids {
		views = append(views, cli.IDView{ID: id.String()})
	}

	if env.Formatter.Quiet {
		for _, v := range views {
			fmt.Fprintln(env.Formatter.Out, v.ID)
		}
		return nil
	}

	return env.Formatter.Success(views, func(w io.Writer) {
		fmt.Fprintf(w, "%s Added %d checklist items to task %s\n", styles.SuccessStyle.Render("✓"), len(ids), taskID)
	})
}

// ListCmd returns the checklist ls subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls <task-id>",
		Aliases: []string{"list"},
		Short:   "List a task's checklist",
		Args:    cli.ExactArgs(1),
		RunE:    handler.Command("CHECKLIST_LIST_ERROR", runList),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, env *handler.Env) error {
	taskID := types.TaskID(env.Args[0])
	// an unknown task has an empty checklist, so look the task up first
	if _, err := cli.GetTaskDetail(ctx, env.CLI, taskID); err != nil {
		return handler.Suggest(err, taskHint)
	}

	items, err := repository.Once(ctx, func(ctx context.Context) <-chan result.Result[[]models.TaskChecklistItem] {
		return env.CLI.App.UseCases.GetTaskChecklistItems.Execute(ctx, taskID)
	}).Unwrap()
	if err != nil {
		return err
	}

	views := cli.NewChecklistItemViews(items)
	if env.Formatter.Quiet {
		for _, v := range views {
			fmt.Fprintln(env.Formatter.Out, v.ID)
		}
		return nil
	}

	return env.Formatter.Success(views, func(w io.Writer) {
		if len(views) == 0 {
			fmt.Fprintln(w, "Checklist is empty")
			return
		}
		for _, v := range views {
			box := "[ ]"
			text := v.Text
			if v.Checked {
				box = "[x]"
				text = styles.DoneStyle.Render(v.Text)
			}
			fmt.Fprintf(w, "%s %s  %s\n", box, text, styles.SubtitleStyle.Render(v.ID))
		}
	})
}

type itemAction func(ctx context.Context, id types.ChecklistItemID) result.Result[result.Unit]

// itemCmd builds a command that applies action to one checklist item
func itemCmd(use, short, errCode, verb string, action func(*handler.Env) itemAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cli.ExactArgs(1),
		RunE: handler.Command(errCode, func(ctx context.Context, env *handler.Env) error {
			id := types.ChecklistItemID(env.Args[0])
			if err := action(env)(ctx, id).Err(); err != nil {
				return handler.Suggest(err, itemHint)
			}
			return env.Formatter.Success(cli.IDView{ID: id.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s checklist item %s\n", styles.SuccessStyle.Render("✓"), verb, id)
			})
		}),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

// CheckCmd returns the checklist check subcommand
func CheckCmd() *cobra.Command {
	return itemCmd("check <item-id>", "Check off a checklist item", "CHECKLIST_CHECK_ERROR", "Checked",
		func(env *handler.Env) itemAction { return env.CLI.App.UseCases.SetTaskChecklistItemChecked.Execute })
}

// UncheckCmd returns the checklist uncheck subcommand
func UncheckCmd() *cobra.Command {
	return itemCmd("uncheck <item-id>", "Uncheck a checklist item", "CHECKLIST_UNCHECK_ERROR", "Unchecked",
		func(env *handler.Env) itemAction { return env.CLI.App.UseCases.SetTaskChecklistItemUnchecked.Execute })
}

// DeleteCmd returns the checklist delete subcommand
func DeleteCmd() *cobra.Command {
	return itemCmd("delete <item-id>", "Delete a checklist item", "CHECKLIST_DELETE_ERROR", "Deleted",
		func(env *handler.Env) itemAction { return env.CLI.App.UseCases.DeleteTaskChecklistItem.Execute })
}
