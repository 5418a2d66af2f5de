package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/models"
	"github.com/josephgoksu/taskman/store"
)

const dueDateLayout = "2006-01-02"

// sortTasks orders tasks in place. Ties keep insertion order.
func sortTasks(tasks []models.Task, by string) error {
	switch by {
	case "", "insertion":
		return nil
	case "priority":
		slices.SortStableFunc(tasks, func(a, b models.Task) int {
			return models.PriorityRank(b.Priority) - models.PriorityRank(a.Priority)
		})
	case "created":
		slices.SortStableFunc(tasks, func(a, b models.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	default:
		return fmt.Errorf("invalid sort %q (want insertion, priority or created)", by)
	}
	return nil
}

// parseDue parses a due date given as YYYY-MM-DD (local time) or a full timestamp.
func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dueDateLayout, s, time.Local); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return nil, &models.ValidationError{Field: "due_date", Reason: fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", s)}
	}
	return &t, nil
}

// parseTags splits a comma-separated tag list.
func parseTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// resolveOrPick returns the task named by args[0], or lets the user pick one
// from candidates when no ID was given and the terminal is interactive.
func resolveOrPick(s store.TaskStore, args []string, candidates store.Filter, title string) (models.Task, error) {
	if len(args) > 0 {
		return s.Resolve(args[0])
	}
	if !ui.IsInteractive() {
		return models.Task{}, errors.New("a task ID is required")
	}
	tasks := s.List(candidates)
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}
	return ui.PickTask(tasks, title)
}

// handleSelectionError reports a cancelled or empty picker and swallows the error.
func handleSelectionError(cmd *cobra.Command, err error, action string) error {
	switch {
	case errors.Is(err, ui.ErrSelectionCancelled):
		fmt.Fprintf(cmd.OutOrStdout(), "%s cancelled.\n", action)
		return nil
	case errors.Is(err, ErrNoTasksFound):
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks available.")
		return nil
	default:
		return err
	}
}

// records converts tasks to their serialisable form.
func records(tasks []models.Task) []models.Record {
	out := make([]models.Record, len(tasks))
	for i, t := range tasks {
		out[i] = t.Record()
	}
	return out
}

func printYAML(cmd *cobra.Command, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// printTask prints a single task in the requested output format.
func printTask(cmd *cobra.Command, t models.Task, format string) error {
	switch {
	case isJSON() || format == "json":
		return printJSON(cmd, t.Record())
	case format == "yaml":
		return printYAML(cmd, t.Record())
	default:
		ui.RenderTaskDetail(cmd.OutOrStdout(), t, now())
		return nil
	}
}
