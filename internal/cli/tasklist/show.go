package tasklist

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/repository"
	"github.com/thenoetrevino/todometer/internal/result"
)

// showView is a task list together with its tasks
type showView struct {
	cli.TaskListView
	Tasks []cli.TaskView `json:"tasks"`
}

// ShowCmd returns the tasklist show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id|name]",
		Short: "Show a task list and its tasks",
		Long:  "Show a task list and its tasks. Without an argument the selected list is shown.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  handler.Command("TASK_LIST_SHOW_ERROR", runShow),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	ref := ""
	if len(env.Args) > 0 {
		ref = env.Args[0]
	}
	list, err := cli.ResolveTaskList(ctx, env.CLI, ref)
	if err != nil {
		return handler.Suggest(err, "Run 'todometer tasklist ls' to see available task lists")
	}

	getTasks := env.CLI.App.UseCases.GetTasks
	tasks, err := repository.Once(ctx, func(ctx context.Context) <-chan result.Result[[]models.Task] {
		return getTasks.Execute(ctx, list.ID)
	}).Unwrap()
	if err != nil {
		return err
	}
	selected, err := repository.Once(ctx, env.CLI.App.UseCases.GetTaskListSelected.Execute).Unwrap()
	if err != nil {
		return err
	}

	view := showView{TaskListView: cli.NewTaskListView(list, selected.ID), Tasks: cli.NewTaskViews(tasks)}
	return env.Formatter.Success(view, func(w io.Writer) {
		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render(list.Name))
		if view.Selected {
			b.WriteString(" " + styles.SubtitleStyle.Render("(selected)"))
		}
		b.WriteString("\n" + styles.SubtitleStyle.Render(list.ID.String()) + "\n")
		if list.Description != "" {
			b.WriteString("\n" + list.Description + "\n")
		}
		b.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))) + "\n")
		now := time.Now()
		for _, t := range tasks {
			b.WriteString(styles.RenderTaskLine(t, now) + "\n")
		}
		if len(tasks) == 0 {
			b.WriteString(styles.SubtitleStyle.Render("No tasks") + "\n")
		}
		fmt.Fprint(w, styles.CardStyle.Render(strings.TrimRight(b.String(), "\n"))+"\n")
	})
}
