package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/taskman/models"
)

var renderNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func sampleTasks(t *testing.T) []models.Task {
	t.Helper()
	past := renderNow.Add(-48 * time.Hour)

	a, err := models.NewTask("0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", models.TaskInput{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    models.PriorityHigh,
		Category:    "work",
		Tags:        []string{"q1", "finance"},
		DueDate:     &past,
	}, renderNow.Add(-72*time.Hour))
	require.NoError(t, err)

	b, err := models.NewTask("7c1d2e3f-aaaa-4bbb-9ccc-dddddddddddd", models.TaskInput{
		Title:    "Water plants",
		Priority: models.PriorityLow,
	}, renderNow.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, b.Complete(renderNow))

	return []models.Task{a, b}
}

func TestPriorityIcon(t *testing.T) {
	assert.Equal(t, "◦", PriorityIcon(models.PriorityLow))
	assert.Equal(t, "●", PriorityIcon(models.PriorityMedium))
	assert.Equal(t, "◉", PriorityIcon(models.PriorityHigh))
}

func TestFormatTask(t *testing.T) {
	tasks := sampleTasks(t)

	line := FormatTask(tasks[0], false)
	assert.Contains(t, line, "◉")
	assert.Contains(t, line, "Write report")
	assert.Contains(t, line, "- quarterly numbers")
	assert.NotContains(t, line, "0b8f3a52")

	withID := FormatTask(tasks[0], true)
	assert.Contains(t, withID, "0b8f3a52")
	assert.NotContains(t, withID, "0b8f3a52-2c1e", "only the short ID is shown")

	assert.NotContains(t, FormatTask(tasks[1], false), " - ", "no description separator without a description")
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	RenderPlain(&buf, sampleTasks(t), true)

	out := buf.String()
	assert.Contains(t, out, "Tasks:")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Water plants")
	assert.Contains(t, out, "7c1d2e3f")
}

func TestRenderTaskTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTaskTable(&buf, sampleTasks(t), false, renderNow)

	out := buf.String()
	for _, want := range []string{"Status", "Title", "Write report", "Water plants", "Incomplete", "Complete", "q1,finance", "2025-03-12 !", "2 tasks, 1 complete, 1 overdue"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "ID")

	buf.Reset()
	RenderTaskTable(&buf, sampleTasks(t), true, renderNow)
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "0b8f3a52")
}

func TestRenderTaskTable_TruncatesLongTitles(t *testing.T) {
	task, err := models.NewTask("0b8f3a52-2c1e-4b7a-9d55-5d2f4c1e9a10", models.TaskInput{
		Title: strings.Repeat("x", 100),
	}, renderNow)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTaskTable(&buf, []models.Task{task}, false, renderNow)

	assert.NotContains(t, buf.String(), strings.Repeat("x", 100))
	assert.Contains(t, buf.String(), "...")
}

func TestRenderTaskDetail(t *testing.T) {
	tasks := sampleTasks(t)

	var buf bytes.Buffer
	RenderTaskDetail(&buf, tasks[0], renderNow)
	out := buf.String()
	for _, want := range []string{"Write report", tasks[0].ID, "Incomplete", "High", "work", "q1, finance", "quarterly numbers"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Completed:")

	buf.Reset()
	RenderTaskDetail(&buf, tasks[1], renderNow)
	assert.Contains(t, buf.String(), "Completed:")
}
