package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the task list and redraw it whenever the task file changes",
	Long: `Show the task list and redraw it whenever the task file changes, for
example in a spare terminal while you add and complete tasks in another.
Takes the same filters as list. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchStatus   string
	watchPriority string
	watchCategory string
	watchTag      string
	watchOverdue  bool
	watchShowID   bool
	watchSort     string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchStatus, "status", "", "Filter by status (incomplete, complete)")
	watchCmd.Flags().StringVar(&watchPriority, "priority", "", "Filter by priority (low, medium, high)")
	watchCmd.Flags().StringVar(&watchCategory, "category", "", "Filter by category")
	watchCmd.Flags().StringVar(&watchTag, "tag", "", "Filter by tag")
	watchCmd.Flags().BoolVar(&watchOverdue, "overdue", false, "Only incomplete tasks past their due date")
	watchCmd.Flags().BoolVar(&watchShowID, "show-id", false, "Show short task IDs")
	watchCmd.Flags().StringVar(&watchSort, "sort", "", "Sort order (insertion, priority, created)")
	_ = watchCmd.RegisterFlagCompletionFunc("priority", completePriority)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(watchStatus, watchPriority, watchCategory, watchTag, watchOverdue)
	if err != nil {
		return err
	}
	sortBy := watchSort
	if sortBy == "" {
		sortBy = GetConfig().Output.Sort
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	log := loggerFor(cmd)
	out := cmd.OutOrStdout()
	clearScreen := ui.IsInteractive()

	render := func() {
		if err := s.Load(); err != nil {
			// Keep the last good view; the file may be mid-edit by hand.
			log.Warn("reload failed", "err", err)
			fmt.Fprintln(out, ui.StyleError.Render(userMessage(err)))
			return
		}
		tasks := s.List(filter)
		if err := sortTasks(tasks, sortBy); err != nil {
			log.Warn("sort failed", "err", err)
		}
		if clearScreen {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		fmt.Fprintln(out, ui.StyleSubtle.Render(fmt.Sprintf("Watching %s (Ctrl+C to stop)", s.Path())))
		if err := renderTasks(cmd, tasks, "table", watchShowID, filter.IsEmpty()); err != nil {
			log.Warn("render failed", "err", err)
		}
	}

	if err := appFs.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		return fmt.Errorf("create task file directory: %w", err)
	}
	w, err := watch.New(watch.Config{Path: s.Path(), Logger: log})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render()
	return w.Run(ctx, render)
}
