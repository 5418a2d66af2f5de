/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/internal/util"
	"github.com/josephgoksu/taskman/models"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add <title...>",
	Aliases: []string{"new"},
	Short:   "Add a new task",
	Long: `Add a new task. All arguments are joined to form the title.

Examples:
  taskman add Buy milk
  taskman add "Write report" -d "Q1 numbers" -p high --due 2025-04-01
  taskman add "Renew passport" --category admin --tags travel,urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addCategory    string
	addTags        string
	addDue         string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (low, medium, high)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	_ = addCmd.RegisterFlagCompletionFunc("priority", completePriority)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return &models.ValidationError{Field: "title", Reason: "is required"}
	}

	priority, err := models.ParsePriority(addPriority)
	if err != nil {
		return err
	}
	due, err := parseDue(addDue)
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.Add(models.TaskInput{
		Title:       title,
		Description: addDescription,
		Priority:    priority,
		Category:    addCategory,
		Tags:        parseTags(addTags),
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	loggerFor(cmd).Debug("task added", "id", task.ID)

	switch {
	case isJSON():
		return printJSON(cmd, task.Record())
	case isQuiet():
		fmt.Fprintln(cmd.OutOrStdout(), task.ID)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added: %s %s\n",
			ui.StyleSuccess.Render("✓"), task.Title, ui.StyleID.Render("("+util.ShortID(task.ID, 0)+")"))
	}
	return nil
}
