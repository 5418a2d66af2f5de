package types

import (
	"testing"
)

func TestAppConfig_Structure(t *testing.T) {
	config := AppConfig{
		Data: DataConfig{
			File:   "/home/user/.config/taskman/tasks.json",
			Format: "json",
			Backup: true,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "logfmt",
		},
		Output: OutputConfig{
			Format: "table",
			Sort:   "priority",
		},
	}

	if config.Data.File != "/home/user/.config/taskman/tasks.json" {
		t.Errorf("Data.File mismatch: got %q", config.Data.File)
	}
	if !config.Data.Backup {
		t.Error("Data.Backup should be true")
	}
	if config.Log.Format != "logfmt" {
		t.Errorf("Log.Format mismatch: got %q, want %q", config.Log.Format, "logfmt")
	}
	if config.Output.Sort != "priority" {
		t.Errorf("Output.Sort mismatch: got %q, want %q", config.Output.Sort, "priority")
	}
}

func TestAppConfig_ZeroValue(t *testing.T) {
	var config AppConfig
	if config.Verbose || config.Quiet || config.JSON {
		t.Error("zero AppConfig should have all switches off")
	}
	if config.Data.File != "" {
		t.Errorf("zero AppConfig should have no data file, got %q", config.Data.File)
	}
}
