package commands

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/dohr-michael/simpsched/internal/tasks"
	"github.com/dohr-michael/simpsched/internal/validation"
)

// addTask validates in and creates the task it describes.
func addTask(ctx context.Context, store tasks.Store, in validation.Input) (int64, error) {
	if _, ok := in[validation.FieldTitle]; !ok {
		withTitle := validation.Input{validation.FieldTitle: ""}
		maps.Copy(withTitle, in)
		in = withTitle
	}
	if err := validation.ForCommand(validation.CommandAdd, store).Run(ctx, in); err != nil {
		return 0, err
	}

	due, err := tasks.NormalizeDue(in[validation.FieldDueAt])
	if err != nil {
		return 0, err
	}
	return store.Create(ctx, tasks.NewTask{
		Title:       strings.TrimSpace(in[validation.FieldTitle]),
		Description: in[validation.FieldDesc],
		Status:      tasks.Status(in[validation.FieldStatus]),
		DueAt:       due,
	})
}

// updateTask validates in and applies the fields it carries to the task
// named by its task_id. A present but empty due_at clears the due date.
func updateTask(ctx context.Context, store tasks.Store, in validation.Input) (int64, error) {
	if err := validation.ForCommand(validation.CommandUpdate, store).Run(ctx, in); err != nil {
		return 0, err
	}
	id, err := validation.ParseID(in[validation.FieldTaskID])
	if err != nil {
		return 0, err
	}

	var p tasks.Patch
	if v, ok := in[validation.FieldTitle]; ok {
		title := strings.TrimSpace(v)
		p.Title = &title
	}
	if v, ok := in[validation.FieldDesc]; ok {
		p.Description = &v
	}
	if v, ok := in[validation.FieldStatus]; ok {
		s := tasks.Status(v)
		p.Status = &s
	}
	if v, ok := in[validation.FieldDueAt]; ok {
		due, err := tasks.NormalizeDue(v)
		if err != nil {
			return 0, err
		}
		if due == nil {
			p.ClearDue = true
		} else {
			p.DueAt = due
		}
	}

	return id, store.Update(ctx, id, p)
}

// removeTask validates in and deletes the task named by its task_id.
func removeTask(ctx context.Context, store tasks.Store, in validation.Input) (int64, error) {
	if err := validation.ForCommand(validation.CommandRemove, store).Run(ctx, in); err != nil {
		return 0, err
	}
	id, err := validation.ParseID(in[validation.FieldTaskID])
	if err != nil {
		return 0, err
	}
	return id, store.Delete(ctx, id)
}

// listTasks returns the tasks in display order, optionally restricted to
// one status.
func listTasks(ctx context.Context, store tasks.Store, status tasks.Status) ([]*tasks.Task, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := list[:0]
		for _, t := range list {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}
	return tasks.Sort(list), nil
}

// purgeBefore removes inactive tasks last touched before cutoff and returns
// a summary line, or "" when nothing was removed.
func purgeBefore(ctx context.Context, store tasks.Store, cutoff time.Time) (string, error) {
	titles, err := store.PurgeInactive(ctx, cutoff)
	if err != nil {
		return "", err
	}
	if len(titles) == 0 {
		return "", nil
	}
	return fmt.Sprintf("Removed %d inactive task(s): %s", len(titles), strings.Join(titles, ", ")), nil
}
