package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/josephgoksu/taskman/internal/util"
	"github.com/josephgoksu/taskman/models"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"

	// maxTitleWidth caps the title column in tables.
	maxTitleWidth = 48
	// detailWidth is the widest the task detail panel gets.
	detailWidth = 64
)

// PriorityIcon returns the symbol for a priority.
func PriorityIcon(p models.TaskPriority) string {
	switch p {
	case models.PriorityLow:
		return "◦"
	case models.PriorityHigh:
		return "◉"
	default:
		return "●"
	}
}

// priorityStyle colours a priority by urgency.
func priorityStyle(p models.TaskPriority) string {
	icon := PriorityIcon(p)
	switch p {
	case models.PriorityHigh:
		return StylePriorityHigh.Render(icon)
	case models.PriorityLow:
		return StylePriorityLow.Render(icon)
	default:
		return StylePriorityMedium.Render(icon)
	}
}

// statusIcon colours the priority icon by status: green when complete, yellow otherwise.
func statusIcon(t models.Task) string {
	icon := PriorityIcon(t.Priority)
	if t.IsComplete() {
		return StyleComplete.Render(icon)
	}
	return StyleIncomplete.Render(icon)
}

// FormatTask renders a task on one line: "[id] icon title - description".
func FormatTask(t models.Task, showID bool) string {
	parts := make([]string, 0, 4)
	if showID {
		parts = append(parts, StyleID.Render(util.ShortID(t.ID, 0)))
	}
	parts = append(parts, statusIcon(t), StyleText.Render(t.Title))
	if t.Description != "" {
		parts = append(parts, StyleSubtle.Render("- "+t.Description))
	}
	return strings.Join(parts, " ")
}

// RenderPlain writes tasks as an indented list, one per line.
func RenderPlain(w io.Writer, tasks []models.Task, showID bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleHeader.Render("Tasks:"))
	for _, t := range tasks {
		fmt.Fprintf(w, "  %s\n", FormatTask(t, showID))
	}
	fmt.Fprintln(w)
}

// RenderTaskTable writes tasks as a table. Overdue due dates are highlighted.
func RenderTaskTable(w io.Writer, tasks []models.Task, showID bool, now time.Time) {
	headers := []string{"P", "Status", "Title", "Category", "Tags", "Due"}
	if showID {
		headers = append([]string{"ID"}, headers...)
	}

	table := &Table{Headers: headers}
	for _, t := range tasks {
		status := StyleIncomplete.Render(Label(string(t.Status)))
		if t.IsComplete() {
			status = StyleComplete.Render(Label(string(t.Status)))
		}
		row := []string{
			priorityStyle(t.Priority),
			status,
			Truncate(t.Title, maxTitleWidth),
			t.Category,
			strings.Join(t.Tags, ","),
			dueCell(t, now),
		}
		if showID {
			row = append([]string{StyleID.Render(util.ShortID(t.ID, 0))}, row...)
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w, StyleSubtle.Render(summaryLine(tasks, now)))
}

// RenderTaskDetail writes every field of a task in a bordered panel.
func RenderTaskDetail(w io.Writer, t models.Task, now time.Time) {
	var sb strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&sb, "%s %s\n", StyleSubtle.Render(fmt.Sprintf("%-10s", name+":")), value)
	}

	field("ID", StyleID.Render(t.ID))
	field("Status", Label(string(t.Status)))
	field("Priority", priorityStyle(t.Priority)+" "+Label(string(t.Priority)))
	if t.Category != "" {
		field("Category", t.Category)
	}
	if len(t.Tags) > 0 {
		field("Tags", strings.Join(t.Tags, ", "))
	}
	if t.DueDate != nil {
		field("Due", dueCell(t, now))
	}
	field("Created", t.CreatedAt.Local().Format(dateTimeLayout))
	if t.CompletedAt != nil {
		field("Completed", t.CompletedAt.Local().Format(dateTimeLayout))
	}
	width := min(TerminalWidth(detailWidth), detailWidth)
	if t.Description != "" {
		sb.WriteString("\n" + WrapText(t.Description, width-4) + "\n")
	}

	fmt.Fprintln(w, NewPanel(t.Title, strings.TrimRight(sb.String(), "\n")).WithWidth(width).Render())
}

func dueCell(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	due := t.DueDate.Local().Format(dateLayout)
	if t.IsOverdue(now) {
		return StyleOverdue.Render(due + " !")
	}
	return due
}

func summaryLine(tasks []models.Task, now time.Time) string {
	var done, overdue int
	for _, t := range tasks {
		if t.IsComplete() {
			done++
		}
		if t.IsOverdue(now) {
			overdue++
		}
	}
	line := fmt.Sprintf(" %d tasks, %d complete", len(tasks), done)
	if overdue > 0 {
		line += fmt.Sprintf(", %d overdue", overdue)
	}
	return line
}
