package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	StatusIncomplete TaskStatus = "incomplete"
	StatusComplete   TaskStatus = "complete"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task represents a single to-do item.
type Task struct {
	ID          string       `validate:"required,uuid4"`
	Title       string       `validate:"required,max=255"`
	Description string       `validate:"max=4096"`
	Priority    TaskPriority `validate:"required,oneof=low medium high"`
	Status      TaskStatus   `validate:"required,oneof=incomplete complete"`
	Category    string       `validate:"omitempty,max=64"`
	Tags        []string     `validate:"unique,dive,required,max=32,excludesall=;"` // ";" separates tags in CSV
	DueDate     *time.Time
	CreatedAt   time.Time  `validate:"required"`
	CompletedAt *time.Time // non-nil iff Status == StatusComplete
}

// TaskInput carries the caller-supplied fields for a new task.
// Zero values fall back to defaults (priority medium).
type TaskInput struct {
	Title       string
	Description string
	Priority    TaskPriority
	Category    string
	Tags        []string
	DueDate     *time.Time
}

// TaskUpdate is a partial change. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Category    *string
	Tags        *[]string
	DueDate     *time.Time
	ClearDue    bool
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.Category == nil && u.Tags == nil && u.DueDate == nil && !u.ClearDue
}

// NewTask builds a validated, incomplete task stamped with now.
func NewTask(id string, in TaskInput, now time.Time) (Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	task := Task{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    priority,
		Status:      StatusIncomplete,
		Category:    strings.TrimSpace(in.Category),
		Tags:        normalizeTags(in.Tags),
		DueDate:     utcTime(in.DueDate),
		CreatedAt:   now.UTC(),
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Complete marks the task as complete. Completing a task twice is rejected
// with ErrAlreadyCompleted so that CompletedAt is only ever set once.
func (t *Task) Complete(now time.Time) error {
	if t.Status == StatusComplete {
		return ErrAlreadyCompleted
	}
	done := now.UTC()
	t.Status = StatusComplete
	t.CompletedAt = &done
	return nil
}

// IsComplete reports whether the task has been completed.
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Apply applies a partial update. On validation failure the task is left unchanged.
func (t *Task) Apply(u TaskUpdate) error {
	next := t.Clone()
	if u.Title != nil {
		next.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Priority != nil {
		next.Priority = *u.Priority
	}
	if u.Category != nil {
		next.Category = strings.TrimSpace(*u.Category)
	}
	if u.Tags != nil {
		next.Tags = normalizeTags(*u.Tags)
	}
	if u.ClearDue {
		next.DueDate = nil
	}
	if u.DueDate != nil {
		next.DueDate = utcTime(u.DueDate)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

// AddTag adds a tag if it is not already present.
func (t *Task) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.HasTag(tag) {
		return
	}
	t.Tags = append(t.Tags, tag)
}

// RemoveTag removes a tag; unknown tags are ignored.
func (t *Task) RemoveTag(tag string) {
	t.Tags = slices.DeleteFunc(t.Tags, func(s string) bool { return s == tag })
}

// HasTag reports whether the task carries the tag.
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// IsOverdue reports whether an incomplete task is past its due date.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsComplete() {
		return false
	}
	return t.DueDate.Before(now)
}

// Clone returns a deep copy so callers cannot alias store-owned slices or times.
func (t Task) Clone() Task {
	c := t
	c.Tags = slices.Clone(t.Tags)
	c.DueDate = cloneTime(t.DueDate)
	c.CompletedAt = cloneTime(t.CompletedAt)
	return c
}

// Validate checks field rules and the completed_at invariant.
func (t Task) Validate() error {
	if err := ValidateStruct(t); err != nil {
		return err
	}
	switch {
	case t.Status == StatusComplete && t.CompletedAt == nil:
		return &ValidationError{Field: "completed_at", Reason: "must be set when status is complete"}
	case t.Status != StatusComplete && t.CompletedAt != nil:
		return &ValidationError{Field: "completed_at", Reason: "must be empty unless status is complete"}
	}
	return nil
}

// MarshalJSON encodes the task through its Record form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// UnmarshalJSON decodes and validates a task from its Record form.
func (t *Task) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	task, err := TaskFromRecord(r)
	if err != nil {
		return err
	}
	*t = task
	return nil
}

// ParsePriority parses user input into a TaskPriority.
func ParsePriority(s string) (TaskPriority, error) {
	switch p := TaskPriority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("invalid value %q (want low, medium or high)", s)}
}

// ParseStatus parses user input into a TaskStatus. The legacy names
// "pending" and "completed" are accepted.
func ParseStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "incomplete", "pending", "open", "todo":
		return StatusIncomplete, nil
	case "complete", "completed", "done":
		return StatusComplete, nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("invalid value %q (want incomplete or complete)", s)}
}

// AllPriorities returns priorities from lowest to highest.
func AllPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

// PriorityRank orders priorities for sorting; unknown values rank lowest.
func PriorityRank(p TaskPriority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// utcTime copies t in UTC, matching how timestamps are read back from disk.
func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
