package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup [dest]",
	Short: "Copy the task file",
	Long:  `Copy the task file to dest, or to "<task file>.backup" when dest is omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <src>",
	Short: "Replace all tasks with those in a backup",
	Long: `Replace every task with the tasks stored in src. The backup is checked
in full before anything is written. You are asked to confirm unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var restoreYes bool

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runBackup(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var dest string
	if len(args) > 0 {
		dest = args[0]
	}
	written, err := s.Backup(dest)
	if err != nil {
		return err
	}

	switch {
	case isJSON():
		return printJSON(cmd, map[string]string{"path": written})
	case isQuiet():
		fmt.Fprintln(cmd.OutOrStdout(), written)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s Backed up %s to %s\n", ui.StyleSuccess.Render("✓"), s.Path(), written)
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	// The current file is not read, so a corrupt one can still be restored over.
	s, err := getUnloadedStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	if !restoreYes && !confirmOrAbort(cmd, fmt.Sprintf("Replace all tasks in %s with %s? [y/N]: ", s.Path(), args[0])) {
		fmt.Fprintln(out, "Restore cancelled.")
		return nil
	}

	if err := s.Restore(args[0]); err != nil {
		return err
	}
	count := len(s.List(store.Filter{}))

	switch {
	case isJSON():
		return printJSON(cmd, map[string]any{"path": s.Path(), "restored": count})
	case isQuiet():
	default:
		fmt.Fprintf(out, "%s Restored %d task(s) from %s\n", ui.StyleSuccess.Render("✓"), count, args[0])
	}
	return nil
}
