package store

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskman/models"
)

func seedStore(t *testing.T, fs afero.Fs) *FileTaskStore {
	t.Helper()
	due := testNow.Add(48 * time.Hour)
	s := newTestStore(t, fs, Config{})

	_, err := s.Add(models.TaskInput{Title: "write report", Description: "quarterly, with charts", Priority: models.PriorityHigh})
	require.NoError(t, err)
	_, err = s.Add(models.TaskInput{Title: "water plants", Category: "home", Tags: []string{"weekly", "garden"}, DueDate: &due})
	require.NoError(t, err)
	_, err = s.Complete(idA)
	require.NoError(t, err)
	return s
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatCSV} {
		t.Run(format, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			src := seedStore(t, fs)
			path := "/exports/tasks." + format

			n, err := src.Export(path, "")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			dst := newTestStore(t, fs, Config{Path: "/other/tasks.json"})
			res, err := dst.Import(path, format)
			require.NoError(t, err)
			assert.Equal(t, ImportResult{Imported: 2}, res)
			assert.Equal(t, src.List(Filter{}), dst.List(Filter{}))
		})
	}
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := seedStore(t, fs)
	_, err := s.Export("/tasks.json", FormatJSON)
	require.NoError(t, err)

	res, err := s.Import("/tasks.json", "")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 0, Skipped: 2}, res)
	assert.Len(t, s.List(Filter{}), 2)
}

func TestImport_SkipsPaddedExistingID(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := seedStore(t, fs)
	data := `[{"id":"  ` + idA + ` ","title":"same task, padded id"}]`
	require.NoError(t, afero.WriteFile(fs, "/in.json", []byte(data), 0o644))

	res, err := s.Import("/in.json", "")
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 0, Skipped: 1}, res)

	reopened, err := Open(Config{Path: s.Path()}, WithFs(fs))
	require.NoError(t, err)
	assert.Len(t, reopened.List(Filter{}), 2)
}

func TestExportImport_TagSeparatorRejected(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs(), Config{})
	_, err := s.Add(models.TaskInput{Title: "tagged", Tags: []string{"a;b"}})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, s.List(Filter{}))
}

func TestImport_FillsMissingFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	csvData := "title,priority,tags\nfrom a spreadsheet,,a;b\nsecond row,high,\n"
	require.NoError(t, afero.WriteFile(fs, "/in.csv", []byte(csvData), 0o644))

	s := newTestStore(t, fs, Config{})
	res, err := s.Import("/in.csv", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	tasks := s.List(Filter{})
	require.Len(t, tasks, 2)
	assert.Equal(t, idA, tasks[0].ID)
	assert.Equal(t, models.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, models.StatusIncomplete, tasks[0].Status)
	assert.Equal(t, testNow, tasks[0].CreatedAt)
	assert.Equal(t, []string{"a", "b"}, tasks[0].Tags)
	assert.Equal(t, models.PriorityHigh, tasks[1].Priority)
	assert.Empty(t, tasks[1].Tags)
}

func TestImport_InvalidRecordAddsNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `[{"title":"fine"},{"title":"bad","priority":"urgent"}]`
	require.NoError(t, afero.WriteFile(fs, "/in.json", []byte(data), 0o644))

	s := newTestStore(t, fs, Config{})
	_, err := s.Import("/in.json", "")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, s.List(Filter{}))
}

func TestImport_AcceptsTaskDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{"tasks":[{"title":"wrapped"}]}`
	require.NoError(t, afero.WriteFile(fs, "/in.json", []byte(data), 0o644))

	s := newTestStore(t, fs, Config{})
	res, err := s.Import("/in.json", "json")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
}

func TestExchange_UnsupportedFormat(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs(), Config{})

	_, err := s.Export("/out.toml", "")
	assert.Error(t, err)
	_, err = s.Import("/in.json", "xml")
	assert.Error(t, err)

	_, err = s.Export("/out.xml", "")
	assert.Error(t, err)
	exists, err := afero.Exists(s.fs, "/out.xml")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := s.Export("/exports/tasks", "")
	require.NoError(t, err)
	assert.Zero(t, n)
	data, err := afero.ReadFile(s.fs, "/exports/tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"tasks.json":  FormatJSON,
		"tasks.YAML":  FormatYAML,
		"tasks.yml":   FormatYAML,
		"tasks.toml":  FormatTOML,
		"tasks.csv":   FormatCSV,
		"tasks.txt":   "fallback",
		"tasks":       "fallback",
		"dir.v2/list": "fallback",
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path, "fallback"), path)
	}
}
