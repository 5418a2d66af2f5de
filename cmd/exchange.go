package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/taskman/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all tasks to a JSON, YAML or CSV file",
	Long: `Export every task to a file. The format is taken from --format or,
when omitted, from the file extension (.json, .yaml, .yml, .csv). A path
without an extension is written as JSON; any other extension is rejected.

Examples:
  taskman export tasks.csv
  taskman export backup/all --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import tasks from a JSON, YAML or CSV file",
	Long: `Import tasks from a file. Tasks whose ID already exists are skipped.
Records without an ID or creation time get new ones, so a hand-written CSV
with just a title column is enough.

The import is all or nothing: if any record is invalid nothing is added.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportFormat string
	importFormat string
)

type exportResponse struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`
}

type importResponse struct {
	Path     string `json:"path"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "", "File format (json, yaml, csv)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "File format (json, yaml, csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	n, err := s.Export(args[0], exportFormat)
	if err != nil {
		return err
	}

	switch {
	case isJSON():
		return printJSON(cmd, exportResponse{Path: args[0], Exported: n})
	case isQuiet():
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d task(s) to %s\n", ui.StyleSuccess.Render("✓"), n, args[0])
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	res, err := s.Import(args[0], importFormat)
	if err != nil {
		return err
	}

	switch {
	case isJSON():
		return printJSON(cmd, importResponse{Path: args[0], Imported: res.Imported, Skipped: res.Skipped})
	case isQuiet():
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d task(s), skipped %d already present\n",
			ui.StyleSuccess.Render("✓"), res.Imported, res.Skipped)
	}
	return nil
}
