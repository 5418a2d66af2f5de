/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/taskman/internal/schema"
	"github.com/josephgoksu/taskman/internal/ui"
	"github.com/josephgoksu/taskman/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the task file for problems",
	Long: `Validate your configuration and task file.

Checks:
  • Which configuration file is in use
  • Whether the task file exists and is readable
  • Every task against the task file schema
  • That the file loads (unique IDs, completed_at set exactly when complete)

Exits non-zero when a check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// errDoctorFailed is returned when at least one check fails.
var errDoctorFailed = errors.New("doctor found problems with the task file")

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"` // "ok", "warn", "fail"
	Message string   `json:"message"`
	Hint    string   `json:"hint,omitempty"`
	Details []string `json:"details,omitempty"`
}

type doctorReport struct {
	Path   string        `json:"path"`
	Format string        `json:"format"`
	OK     bool          `json:"ok"`
	Checks []DoctorCheck `json:"checks"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	format := store.NormalizeFormat(cfg.Data.Format)
	if format == "" {
		format = store.FormatFromPath(cfg.Data.File, store.FormatJSON)
	}

	report := doctorReport{Path: cfg.Data.File, Format: format}
	report.Checks = append(report.Checks, checkConfigFile())
	report.Checks = append(report.Checks, checkDataFile(cfg.Data.File, format)...)

	report.OK = true
	for _, c := range report.Checks {
		if c.Status == "fail" {
			report.OK = false
		}
	}

	if isJSON() {
		if err := printJSON(cmd, report); err != nil {
			return err
		}
	} else {
		printDoctorReport(cmd.OutOrStdout(), report)
	}

	if !report.OK {
		return errDoctorFailed
	}
	return nil
}

func checkConfigFile() DoctorCheck {
	used := viper.ConfigFileUsed()
	if used == "" {
		return DoctorCheck{Name: "Config", Status: "ok", Message: "No config file, using defaults and environment"}
	}
	return DoctorCheck{Name: "Config", Status: "ok", Message: used}
}

// checkDataFile runs the file, schema and load checks. Later checks are
// skipped when the file cannot be read.
func checkDataFile(path, format string) []DoctorCheck {
	data, err := afero.ReadFile(appFs, path)
	if errors.Is(err, os.ErrNotExist) {
		return []DoctorCheck{{
			Name:    "Task file",
			Status:  "warn",
			Message: fmt.Sprintf("%s does not exist yet", path),
			Hint:    `It is created on the first change, e.g. taskman add "Your task"`,
		}}
	}
	if err != nil {
		return []DoctorCheck{{
			Name:    "Task file",
			Status:  "fail",
			Message: fmt.Sprintf("cannot read %s", path),
			Details: []string{err.Error()},
		}}
	}

	checks := []DoctorCheck{{
		Name:    "Task file",
		Status:  "ok",
		Message: fmt.Sprintf("%s (%s, %d bytes)", path, format, len(data)),
	}}
	checks = append(checks, checkSchema(data, format))
	checks = append(checks, checkLoad())
	return checks
}

func checkSchema(data []byte, format string) DoctorCheck {
	check := DoctorCheck{Name: "Schema"}
	if strings.TrimSpace(string(data)) == "" {
		check.Status = "ok"
		check.Message = "Empty file"
		return check
	}

	doc, err := decodeRaw(format, data)
	if err != nil {
		check.Status = "fail"
		check.Message = fmt.Sprintf("Not valid %s", strings.ToUpper(format))
		check.Details = []string{err.Error()}
		check.Hint = "Restore a backup with: taskman restore <file>"
		return check
	}

	violations, err := schema.ValidateValue(doc)
	if err != nil {
		check.Status = "fail"
		check.Message = "Could not run schema validation"
		check.Details = []string{err.Error()}
		return check
	}
	if len(violations) > 0 {
		check.Status = "fail"
		check.Message = fmt.Sprintf("%d problem(s) found", len(violations))
		for _, v := range violations {
			check.Details = append(check.Details, v.String())
		}
		return check
	}

	check.Status = "ok"
	check.Message = "Every task matches the schema"
	return check
}

func checkLoad() DoctorCheck {
	s, err := GetStore()
	if err != nil {
		return DoctorCheck{
			Name:    "Load",
			Status:  "fail",
			Message: "The task file does not load",
			Details: []string{err.Error()},
		}
	}
	defer func() { _ = s.Close() }()

	tasks := s.List(store.Filter{})
	overdue := len(s.List(store.Filter{Overdue: true}))
	msg := fmt.Sprintf("%d task(s) loaded", len(tasks))
	if overdue > 0 {
		msg += fmt.Sprintf(", %d overdue", overdue)
	}
	return DoctorCheck{Name: "Load", Status: "ok", Message: msg}
}

// decodeRaw decodes a data file into generic values for schema validation.
// A {"tasks": [...]} document is unwrapped to its array.
func decodeRaw(format string, data []byte) (any, error) {
	var v any
	var err error
	switch format {
	case store.FormatYAML:
		err = yaml.Unmarshal(data, &v)
	case store.FormatTOML:
		var doc map[string]any
		err = toml.Unmarshal(data, &doc)
		v = doc
	default:
		err = json.Unmarshal(data, &v)
	}
	if err != nil {
		return nil, err
	}

	if m, ok := v.(map[string]any); ok {
		if tasks, ok := m["tasks"]; ok {
			return tasks, nil
		}
		if len(m) == 0 {
			return []any{}, nil
		}
	}
	if v == nil {
		return []any{}, nil
	}
	return v, nil
}

func printDoctorReport(w io.Writer, report doctorReport) {
	fmt.Fprintln(w, "🩺 taskman doctor")
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(w)

	for _, c := range report.Checks {
		printCheck(w, c)
	}
	fmt.Fprintln(w)

	if report.OK {
		fmt.Fprintln(w, ui.RenderSuccessPanel("Doctor", "✅ Everything looks good!"))
		return
	}
	fmt.Fprintln(w, ui.RenderErrorPanel("Doctor", "❌ Issues found. Fix the errors above before continuing."))
}

func printCheck(w io.Writer, c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = ui.Icon("✓", ui.StyleSuccess)
	case "warn":
		icon = ui.Icon("!", ui.StyleWarning)
	case "fail":
		icon = ui.Icon("✗", ui.StyleError)
	}

	fmt.Fprintf(w, "%s %s: %s\n", icon, c.Name, c.Message)
	for _, d := range c.Details {
		fmt.Fprintf(w, "   • %s\n", d)
	}
	if c.Hint != "" && c.Status != "ok" {
		fmt.Fprintf(w, "   └─ %s\n", c.Hint)
	}
}
