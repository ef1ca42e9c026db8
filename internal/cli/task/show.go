package task

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
	"github.com/thenoetrevino/todometer/internal/types"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Long:  "Display a task with its rendered description and checklist.",
		Args:  cli.ExactArgs(1),
		RunE:  handler.Command("TASK_SHOW_ERROR", runShow),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, env *handler.Env) error {
	detail, err := cli.GetTaskDetail(ctx, env.CLI, types.TaskID(env.Args[0]))
	if err != nil {
		return handler.Suggest(err, "Run 'todometer task ls' to see available tasks")
	}

	return env.Formatter.Success(cli.NewTaskDetailView(detail), func(w io.Writer) {
		fmt.Fprintln(w, renderCard(detail, time.Now()))
	})
}

// renderCard renders a task detail as a bordered card
func renderCard(detail models.TaskDetail, now time.Time) string {
	task := detail.Task
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(task.Title) + "\n")
	b.WriteString(styles.SubtitleStyle.Render(task.ID.String()) + "\n\n")

	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label) + " " + value + "\n")
	}
	field("State:", styles.ValueStyle.Render(detail.EffectiveState().String()))
	field("Tag:", styles.RenderTag(task.Tag))
	if task.DueDate != nil {
		due := styles.ValueStyle.Render(styles.FormatDue(*task.DueDate))
		if task.IsOverdue(now) {
			due = styles.OverdueStyle.Render(styles.FormatDue(*task.DueDate) + " (overdue)")
		}
		field("Due:", due)
	}

	if task.Description != nil && *task.Description != "" {
		b.WriteString(styles.SectionStyle.Render("Description") + "\n")
		b.WriteString(strings.TrimSpace(styles.RenderMarkdown(*task.Description, styles.CardWidth-6)) + "\n")
	}

	if len(detail.Checklist) > 0 {
		checked, total := detail.Progress()
		b.WriteString(styles.SectionStyle.Render(fmt.Sprintf("Checklist (%d/%d)", checked, total)) + "\n")
		for _, item := range detail.Checklist {
			box := "[ ]"
			text := styles.ValueStyle.Render(item.Text)
			if item.State == models.ChecklistItemChecked {
				box = "[x]"
				text = styles.DoneStyle.Render(item.Text)
			}
			fmt.Fprintf(&b, "%s %s  %s\n", box, text, styles.SubtitleStyle.Render(item.ID.String()))
		}
	}

	return styles.CardStyle.Render(strings.TrimRight(b.String(), "\n"))
}
