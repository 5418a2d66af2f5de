/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/models"
	"github.com/josephgoksu/taskman/store"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [task_id]",
	Short: "Update an existing task",
	Long: `Update fields of an existing task. Only the flags you pass are changed.

Use --tags "" to remove all tags and --due "" (or --due none) to clear the due date.
If no task ID is given and the terminal is interactive, a list of tasks is
shown to pick from. The ID may be a unique prefix.

Examples:
  taskman update 0b8f --priority high
  taskman update 0b8f --title "Write final report" --due 2025-04-10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("priority", "p", "", "New priority (low, medium, high)")
	updateCmd.Flags().String("category", "", "New category")
	updateCmd.Flags().String("tags", "", "Replace tags (comma-separated)")
	updateCmd.Flags().String("due", "", "New due date (YYYY-MM-DD, or none)")
	_ = updateCmd.RegisterFlagCompletionFunc("priority", completePriority)
}

// updateFromFlags builds a TaskUpdate from the flags that were set.
func updateFromFlags(cmd *cobra.Command) (models.TaskUpdate, error) {
	var u models.TaskUpdate
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		u.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		u.Description = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p, err := models.ParsePriority(v)
		if err != nil {
			return u, err
		}
		u.Priority = &p
	}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		u.Category = &v
	}
	if flags.Changed("tags") {
		v, _ := flags.GetString("tags")
		tags := parseTags(v)
		u.Tags = &tags
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		if strings.EqualFold(strings.TrimSpace(v), "none") || strings.TrimSpace(v) == "" {
			u.ClearDue = true
		} else {
			due, err := parseDue(v)
			if err != nil {
				return u, err
			}
			u.DueDate = due
		}
	}
	return u, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	update, err := updateFromFlags(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if update.IsEmpty() {
		fmt.Fprintln(out, "No update flags provided. Use flags like --title, --priority or --description.")
		return nil
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	target, err := resolveOrPick(s, args, store.Filter{}, "Update which task?")
	if err != nil {
		return handleSelectionError(cmd, err, "Update")
	}

	task, err := s.Update(target.ID, update)
	if err != nil {
		return err
	}
	loggerFor(cmd).Debug("task updated", "id", task.ID)

	switch {
	case isJSON():
		return printJSON(cmd, task.Record())
	case isQuiet():
	default:
		fmt.Fprintf(out, "%s Updated: %s\n", ui.StyleSuccess.Render("✓"), task.Title)
	}
	return nil
}
