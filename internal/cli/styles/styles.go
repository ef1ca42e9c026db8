package styles

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/todometer/internal/config"
	"github.com/thenoetrevino/todometer/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Tag:", "Due:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "Checklist"

	// State styles
	DoneStyle    lipgloss.Style
	OverdueStyle lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	DoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Done)).
		Strikethrough(true)

	OverdueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Overdue))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// RenderTag renders a tag as a colored dot followed by its name
func RenderTag(tag models.Tag) string {
	if tag.Hex() == "" {
		return SubtitleStyle.Render(tag.String())
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Hex())).Render("●")
	return dot + " " + ValueStyle.Render(tag.String())
}

// RenderCheckbox renders the state marker of a task line
func RenderCheckbox(state models.TaskState) string {
	switch state {
	case models.TaskStateDone:
		return "[x]"
	case models.TaskStateInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// RenderTaskLine renders a task as a single list line
func RenderTaskLine(task models.Task, now time.Time) string {
	title := TitleStyle.Render(task.Title)
	switch {
	case task.State == models.TaskStateDone:
		title = DoneStyle.Render(task.Title)
	case task.IsOverdue(now):
		title = OverdueStyle.Render(task.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s", RenderCheckbox(task.State), title, RenderTag(task.Tag))
	if task.DueDate != nil {
		fmt.Fprintf(&b, "  %s", SubtitleStyle.Render("due "+FormatDue(*task.DueDate)))
	}
	fmt.Fprintf(&b, "  %s", SubtitleStyle.Render(task.ID.String()))
	return b.String()
}

// FormatDue formats a due date, omitting the time at midnight
func FormatDue(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}
