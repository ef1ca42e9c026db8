// Package watch implements the watch command, a live view of the selected
// task list that redraws whenever any client changes the data
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todometer/internal/cli"
	"github.com/thenoetrevino/todometer/internal/cli/handler"
	"github.com/thenoetrevino/todometer/internal/cli/styles"
	"github.com/thenoetrevino/todometer/internal/models"
	"github.com/thenoetrevino/todometer/internal/viewmodel"
)

// snapshot is the JSON shape of one watch frame
type snapshot struct {
	TaskLists []cli.TaskListView `json:"task_lists"`
	Selected  *cli.TaskListView  `json:"selected,omitempty"`
	Tasks     []cli.TaskView     `json:"tasks"`
	Error     string             `json:"error,omitempty"`
}

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the selected task list and follow changes live",
		Long: `Print the task lists and the tasks of the selected list, then print them
again every time they change. Changes made by other clients arrive through
the daemon when it is running.

With --json every frame is printed as one JSON object per line.

Examples:
  todometer watch
  todometer watch --json | jq .tasks
  todometer watch --once
`,
		Args: cli.ExactArgs(0),
		RunE: handler.Command("WATCH_ERROR", runWatch),
	}

	cmd.Flags().Bool("once", false, "Print the current state and exit")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runWatch(ctx context.Context, env *handler.Env) error {
	once, _ := env.Cmd.Flags().GetBool("once")

	home := viewmodel.NewHome(ctx, env.CLI.App.UseCases)
	defer home.Close()

	last := ""
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-home.Changes():
		}

		state := home.State()
		if !ready(state) {
			continue
		}

		frame, err := render(env.Formatter, state, time.Now())
		if err != nil {
			return err
		}
		if frame != last {
			if _, err := io.WriteString(env.Formatter.Out, frame); err != nil {
				return err
			}
			last = frame
		}
		if once {
			return nil
		}
	}
}

// ready reports whether every stream has produced its first snapshot
func ready(s viewmodel.HomeState) bool {
	return !s.TaskLists.IsLoading() && !s.Selected.IsLoading() && !s.Tasks.IsLoading()
}

func newSnapshot(s viewmodel.HomeState) snapshot {
	var snap snapshot
	selected, hasSelection := s.Selected.Value()

	lists, _ := s.TaskLists.Value()
	snap.TaskLists = make([]cli.TaskListView, 0, len(lists))
	for _, l := range lists {
		snap.TaskLists = append(snap.TaskLists, cli.NewTaskListView(l, selected.ID))
	}
	if hasSelection {
		v := cli.NewTaskListView(selected, selected.ID)
		snap.Selected = &v
	}

	tasks, _ := s.Tasks.Value()
	snap.Tasks = cli.NewTaskViews(tasks)

	for _, err := range []error{s.TaskLists.Err(), s.Tasks.Err()} {
		if err != nil {
			snap.Error = viewmodel.ErrorMessage(err)
			break
		}
	}
	return snap
}

// render formats one frame according to the output mode
func render(f *cli.OutputFormatter, s viewmodel.HomeState, now time.Time) (string, error) {
	if f.JSON {
		data, err := json.Marshal(newSnapshot(s))
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	tasks, _ := s.Tasks.Value()
	if f.Quiet {
		var b strings.Builder
		for _, t := range tasks {
			b.WriteString(t.ID.String() + "\n")
		}
		return b.String(), nil
	}

	return renderHuman(s, tasks, now), nil
}

func renderHuman(s viewmodel.HomeState, tasks []models.Task, now time.Time) string {
	var b strings.Builder
	selected, hasSelection := s.Selected.Value()

	lists, _ := s.TaskLists.Value()
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		if hasSelection && l.ID == selected.ID {
			names = append(names, styles.TitleStyle.Render("["+l.Name+"]"))
			continue
		}
		names = append(names, styles.SubtitleStyle.Render(l.Name))
	}
	b.WriteString(strings.Join(names, "  ") + "\n\n")

	if !hasSelection {
		b.WriteString(styles.SubtitleStyle.Render("No task list selected") + "\n")
		return b.String()
	}
	if err := s.Tasks.Err(); err != nil {
		b.WriteString(styles.ErrorStyle.Render(viewmodel.ErrorMessage(err)) + "\n")
		return b.String()
	}

	done := 0
	for _, t := range tasks {
		if t.State == models.TaskStateDone {
			done++
		}
		b.WriteString(styles.RenderTaskLine(t, now) + "\n")
	}
	if len(tasks) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("No tasks") + "\n")
	}
	fmt.Fprintf(&b, "\n%s\n", styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d done", done, len(tasks))))
	return b.String()
}
