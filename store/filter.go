package store

import (
	"time"

	"github.com/josephgoksu/taskman/models"
)

// Filter selects tasks by exact field values. Zero-valued fields match everything.
type Filter struct {
	Status   models.TaskStatus
	Priority models.TaskPriority
	Category string
	Tag      string
	// Overdue keeps only incomplete tasks whose due date has passed.
	Overdue bool
}

// IsEmpty reports whether the filter matches every task.
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Match reports whether the task satisfies every field set in the filter.
func (f Filter) Match(t models.Task, now time.Time) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Tag != "" && !t.HasTag(f.Tag) {
		return false
	}
	if f.Overdue && !t.IsOverdue(now) {
		return false
	}
	return true
}
