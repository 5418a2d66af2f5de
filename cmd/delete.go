/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/store"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [task_id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task permanently. You are asked to confirm unless --yes is given.

If no task ID is given and the terminal is interactive, a list of tasks is
shown to pick from. The ID may be a unique prefix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	target, err := resolveOrPick(s, args, store.Filter{}, "Delete which task?")
	if err != nil {
		return handleSelectionError(cmd, err, "Deletion")
	}

	out := cmd.OutOrStdout()
	if !deleteYes && !confirmOrAbort(cmd, fmt.Sprintf("Delete task %q? [y/N]: ", target.Title)) {
		fmt.Fprintln(out, "Deletion cancelled.")
		return nil
	}

	task, err := s.Delete(target.ID)
	if err != nil {
		return err
	}
	loggerFor(cmd).Debug("task deleted", "id", task.ID)

	switch {
	case isJSON():
		return printJSON(cmd, task.Record())
	case isQuiet():
	default:
		fmt.Fprintf(out, "%s Deleted: %s\n", ui.StyleSuccess.Render("✓"), task.Title)
	}
	return nil
}
