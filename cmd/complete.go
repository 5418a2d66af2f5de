/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/models"
	"github.com/josephgoksu/taskman/store"
)

// completeCmd represents the complete command
var completeCmd = &cobra.Command{
	Use:     "complete [task_id]",
	Aliases: []string{"done", "finish"},
	Short:   "Mark a task as complete",
	Long: `Mark a task as complete and record when it was completed.

If no task ID is given and the terminal is interactive, a list of
incomplete tasks is shown to pick from. The ID may be a unique prefix.

Examples:
  taskman complete 0b8f3a52
  taskman done 0b8f`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	target, err := resolveOrPick(s, args, store.Filter{Status: models.StatusIncomplete}, "Complete which task?")
	if err != nil {
		return handleSelectionError(cmd, err, "Completion")
	}

	task, err := s.Complete(target.ID)
	out := cmd.OutOrStdout()
	if errors.Is(err, models.ErrAlreadyCompleted) {
		if isJSON() {
			return printJSON(cmd, task.Record())
		}
		fmt.Fprintf(out, "Task %q is already complete.\n", task.Title)
		return nil
	}
	if err != nil {
		return err
	}
	loggerFor(cmd).Debug("task completed", "id", task.ID)

	switch {
	case isJSON():
		return printJSON(cmd, task.Record())
	case isQuiet():
		return nil
	}

	fmt.Fprintf(out, "%s Completed: %s\n", ui.StyleSuccess.Render("✓"), task.Title)
	remaining := len(s.List(store.Filter{Status: models.StatusIncomplete}))
	if remaining == 0 {
		fmt.Fprintln(out, ui.StyleSubtle.Render("All tasks are complete."))
		return nil
	}
	fmt.Fprintf(out, "\n💡 What's next?\n")
	fmt.Fprintf(out, "   • %d task(s) left:  taskman list --status incomplete\n", remaining)
	fmt.Fprintf(out, "   • Add new task:   taskman add \"Your next task\"\n")
	return nil
}
