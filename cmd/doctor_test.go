package cmd

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskman/store"
)

func findCheck(t *testing.T, report doctorReport, name string) DoctorCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q check in report", name)
	return DoctorCheck{}
}

func TestDoctorCmd_Healthy(t *testing.T) {
	SetupTestStore(t)
	addTestTask(t, "Buy milk")
	addTestTask(t, "Fix bike", "--due", "2025-03-01")

	out, err := runCmd(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Everything looks good")
	assert.Contains(t, out, "Every task matches the schema")
	assert.Contains(t, out, "2 task(s) loaded, 1 overdue")
}

func TestDoctorCmd_MissingFile(t *testing.T) {
	SetupTestStore(t)

	out, err := runCmd(t, "", "doctor", "--json")
	require.NoError(t, err)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK)
	assert.Equal(t, testDataFile, report.Path)
	assert.Equal(t, "warn", findCheck(t, report, "Task file").Status)

	out, err = runCmd(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "! Task file:")
	assert.Contains(t, out, "✓ Config:")
}

func TestDoctorCmd_SchemaViolations(t *testing.T) {
	fs := SetupTestStore(t)
	bad := `[
  {"id": "0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", "title": "ok", "priority": "low", "status": "incomplete", "created_at": "2025-01-01T00:00:00Z", "completed_at": null},
  {"id": "7c1d2e3f-aaaa-4bbb-9ccc-dddddddddddd", "title": "bad", "priority": "urgent", "status": "complete", "created_at": "2025-01-01T00:00:00Z", "completed_at": null}
]`
	require.NoError(t, afero.WriteFile(fs, testDataFile, []byte(bad), 0o644))

	out, err := runCmd(t, "", "doctor", "--json")
	assert.ErrorIs(t, err, errDoctorFailed)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.OK)

	schemaCheck := findCheck(t, report, "Schema")
	assert.Equal(t, "fail", schemaCheck.Status)
	joined := ""
	for _, d := range schemaCheck.Details {
		joined += d + "\n"
	}
	assert.Contains(t, joined, "[1].priority")
	assert.Contains(t, joined, "[1].completed_at")

	assert.Equal(t, "fail", findCheck(t, report, "Load").Status)
}

func TestDoctorCmd_CorruptFile(t *testing.T) {
	fs := SetupTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testDataFile, []byte(`[{"id": `), 0o644))

	out, err := runCmd(t, "", "doctor")
	assert.ErrorIs(t, err, errDoctorFailed)
	assert.Contains(t, out, "Not valid JSON")
	assert.Contains(t, out, "Issues found")
}

func TestDecodeRaw(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   int
	}{
		{"json array", store.FormatJSON, `[{"title":"a"},{"title":"b"}]`, 2},
		{"json document", store.FormatJSON, `{"tasks":[{"title":"a"}]}`, 1},
		{"yaml", store.FormatYAML, "- title: a\n- title: b\n- title: c\n", 3},
		{"toml", store.FormatTOML, "[[tasks]]\ntitle = \"a\"\n", 1},
		{"toml empty", store.FormatTOML, "\n", 0},
		{"json null", store.FormatJSON, "null", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeRaw(tt.format, []byte(tt.data))
			require.NoError(t, err)
			list, ok := v.([]any)
			if !ok {
				// toml arrays of tables decode as []map[string]any
				maps, isMaps := v.([]map[string]any)
				require.True(t, isMaps, "unexpected type %T", v)
				assert.Len(t, maps, tt.want)
				return
			}
			assert.Len(t, list, tt.want)
		})
	}

	_, err := decodeRaw(store.FormatYAML, []byte("- [unclosed"))
	assert.Error(t, err)
}
