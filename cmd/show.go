package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a task",
	Long: `Show a single task. The ID may be a unique prefix.

Examples:
  taskman show 0b8f3a52
  taskman show 0b8f --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showFormat string

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showFormat, "format", "", "Output format (table, json, yaml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	return printTask(cmd, task, showFormat)
}
