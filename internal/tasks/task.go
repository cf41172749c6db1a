// Package tasks provides the task model, its SQLite persistence and the
// derived views (due classification, display ordering) computed over it.
package tasks

import (
	"fmt"
	"time"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status in prompt order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone, StatusCancelled}

// ParseStatus converts stored or user-supplied text into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Inactive reports whether the status is terminal (done or cancelled).
func (s Status) Inactive() bool {
	return s == StatusDone || s == StatusCancelled
}

// priority orders statuses for display: active work first, finished last.
func (s Status) priority() int {
	switch s {
	case StatusInProgress:
		return 0
	case StatusPending:
		return 1
	case StatusCancelled:
		return 2
	case StatusDone:
		return 3
	}
	return 99
}

// Task is a single to-do item.
type Task struct {
	ID          int64      `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Status      Status     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
	DueAt       *time.Time `json:"due_at,omitempty" yaml:"due_at,omitempty"`
}

// NewTask holds the caller-supplied fields of a task to create.
type NewTask struct {
	Title       string
	Description string
	Status      Status // empty means StatusPending
	DueAt       *time.Time
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	DueAt       *time.Time
	ClearDue    bool // sets due_at to NULL, wins over DueAt
}

// Empty reports whether the patch carries no change.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueAt == nil && !p.ClearDue
}
