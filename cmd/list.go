/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/models"
	"github.com/josephgoksu/taskman/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in the order they were added, optionally filtered.

Filters match exactly and combine with AND.

Examples:
  taskman list
  taskman list --status incomplete --priority high
  taskman ls --tag work --sort priority --show-id
  taskman list --overdue --format plain`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listStatus   string
	listPriority string
	listCategory string
	listTag      string
	listOverdue  bool
	listFormat   string
	listShowID   bool
	listSort     string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (incomplete, complete)")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority (low, medium, high)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter by tag")
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "Only incomplete tasks past their due date")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Output format (table, plain, json, yaml)")
	listCmd.Flags().BoolVar(&listShowID, "show-id", false, "Show short task IDs")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order (insertion, priority, created)")
	_ = listCmd.RegisterFlagCompletionFunc("priority", completePriority)
}

// buildFilter turns the filter flags into a store.Filter.
func buildFilter(status, priority, category, tag string, overdue bool) (store.Filter, error) {
	f := store.Filter{Category: category, Tag: tag, Overdue: overdue}
	if status != "" {
		st, err := models.ParseStatus(status)
		if err != nil {
			return store.Filter{}, err
		}
		f.Status = st
	}
	if priority != "" {
		p, err := models.ParsePriority(priority)
		if err != nil {
			return store.Filter{}, err
		}
		f.Priority = p
	}
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(listStatus, listPriority, listCategory, listTag, listOverdue)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	format := listFormat
	if format == "" {
		format = cfg.Output.Format
	}
	sortBy := listSort
	if sortBy == "" {
		sortBy = cfg.Output.Sort
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tasks := s.List(filter)
	if err := sortTasks(tasks, sortBy); err != nil {
		return err
	}
	return renderTasks(cmd, tasks, format, listShowID, filter.IsEmpty())
}

// renderTasks prints tasks in the given format.
func renderTasks(cmd *cobra.Command, tasks []models.Task, format string, showID, unfiltered bool) error {
	out := cmd.OutOrStdout()
	if isJSON() {
		format = "json"
	}

	switch format {
	case "json":
		return printJSON(cmd, records(tasks))
	case "yaml":
		return printYAML(cmd, records(tasks))
	case "plain", "table", "":
	default:
		return fmt.Errorf("invalid format %q (want table, plain, json or yaml)", format)
	}

	if len(tasks) == 0 {
		if unfiltered {
			fmt.Fprintln(out, "No tasks found.")
			fmt.Fprintln(out, "Add one with: taskman add \"Your task\"")
		} else {
			fmt.Fprintln(out, "No tasks match the given filters.")
		}
		return nil
	}

	if format == "plain" {
		ui.RenderPlain(out, tasks, showID)
		return nil
	}
	ui.RenderTaskTable(out, tasks, showID, now())
	return nil
}
