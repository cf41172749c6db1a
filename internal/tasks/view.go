package tasks

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// DueSoonWindow is how long before its due date a task counts as due soon.
const DueSoonWindow = 6 * time.Hour

// Severity ranks how urgently a due label should be presented.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

// DueClass is the derived due status of a task at a given instant.
type DueClass struct {
	Label    string
	Severity Severity
}

// ClassifyDue labels a due date relative to now. It is never cached:
// the answer changes as time passes.
func ClassifyDue(due *time.Time, now time.Time) DueClass {
	if due == nil {
		return DueClass{}
	}
	delta := due.Sub(now)
	switch {
	case delta < 0:
		return DueClass{Label: "overdue", Severity: SeverityHigh}
	case delta <= DueSoonWindow:
		return DueClass{Label: "due soon", Severity: SeverityMedium}
	default:
		return DueClass{Label: "on time", Severity: SeverityLow}
	}
}

// Sort returns a new slice ordered for display: tasks with a due date
// first (earliest first), then by status priority, then by title ignoring
// case. The input is not modified.
func Sort(list []*Task) []*Task {
	out := slices.Clone(list)
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b *Task) int {
	if c := compareDue(a.DueAt, b.DueAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Status.priority(), b.Status.priority()); c != 0 {
		return c
	}
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}
