package models

import (
	"fmt"
	"strings"
	"time"
)

// Record is the flat, serialisable form of a Task. It is what the data file,
// exports and imports hold, with enums as strings and ISO-8601 timestamps.
type Record struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Priority    string   `json:"priority" yaml:"priority" toml:"priority"`
	Status      string   `json:"status" yaml:"status" toml:"status"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	DueDate     *string  `json:"due_date,omitempty" yaml:"due_date,omitempty" toml:"due_date,omitempty"`
	CreatedAt   string   `json:"created_at" yaml:"created_at" toml:"created_at"`
	CompletedAt *string  `json:"completed_at" yaml:"completed_at" toml:"completed_at,omitempty"`
}

// TimestampLayout is the layout written for every timestamp.
const TimestampLayout = time.RFC3339Nano

// naive ISO-8601 layouts, with no zone offset
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Record converts the task into its serialisable form.
func (t Task) Record() Record {
	return Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    t.Category,
		Tags:        append([]string(nil), t.Tags...),
		DueDate:     formatOptional(t.DueDate),
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		CompletedAt: formatOptional(t.CompletedAt),
	}
}

// TaskFromRecord rebuilds and validates a task from its serialisable form.
func TaskFromRecord(r Record) (Task, error) {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return Task{}, err
	}
	priority, err := ParsePriority(r.Priority)
	if err != nil {
		return Task{}, err
	}
	createdAt, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return Task{}, &ValidationError{Field: "created_at", Reason: err.Error()}
	}
	dueDate, err := parseOptional(r.DueDate)
	if err != nil {
		return Task{}, &ValidationError{Field: "due_date", Reason: err.Error()}
	}
	completedAt, err := parseOptional(r.CompletedAt)
	if err != nil {
		return Task{}, &ValidationError{Field: "completed_at", Reason: err.Error()}
	}

	task := Task{
		ID:          strings.TrimSpace(r.ID),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Priority:    priority,
		Status:      status,
		Category:    strings.TrimSpace(r.Category),
		Tags:        normalizeTags(r.Tags),
		DueDate:     dueDate,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// FormatTimestamp renders t as RFC 3339 in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO-8601 timestamps.
// Zone-less values are read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (want ISO-8601)", s)
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
