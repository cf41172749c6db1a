// Package validation checks user-supplied task fields before they reach
// the store. Validators are bound to a field name and composed per command
// into a Pipeline that fails fast on the first violation.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dohr-michael/simpsched/internal/tasks"
)

// Field names shared by the CLI flags, the interactive steps and the
// validators.
const (
	FieldTaskID = "task_id"
	FieldTitle  = "title"
	FieldDesc   = "desc"
	FieldStatus = "status"
	FieldDueAt  = "due_at"
)

// ValidationError is a user-correctable violation on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Input maps field names to raw values. A missing key means the field was
// not supplied.
type Input map[string]string

// Validator checks one field.
type Validator interface {
	Field() string
	Check(ctx context.Context, value string) error
}

// Pipeline runs validators in declared order.
type Pipeline []Validator

// Run checks every present field and returns the first violation.
func (p Pipeline) Run(ctx context.Context, in Input) error {
	for _, v := range p {
		value, ok := in[v.Field()]
		if !ok {
			continue
		}
		if err := v.Check(ctx, value); err != nil {
			return err
		}
	}
	return nil
}

type nonEmpty struct{ field string }

// NonEmpty requires at least one non-whitespace character.
func NonEmpty(field string) Validator { return nonEmpty{field} }

func (v nonEmpty) Field() string { return v.field }

func (v nonEmpty) Check(_ context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: v.field, Message: v.field + " must be non-empty"}
	}
	return nil
}

type validDate struct{ field string }

// ValidDate accepts "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DD" or an empty value.
func ValidDate(field string) Validator { return validDate{field} }

func (v validDate) Field() string { return v.field }

func (v validDate) Check(_ context.Context, value string) error {
	if value == "" {
		return nil
	}
	if _, _, err := tasks.ParseDue(value); err != nil {
		return &ValidationError{
			Field:   v.field,
			Message: v.field + " must be in 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS' format",
		}
	}
	return nil
}

type oneOf struct {
	field   string
	allowed []string
}

// OneOf restricts a field to a fixed set of values.
func OneOf(field string, allowed ...string) Validator {
	return oneOf{field: field, allowed: allowed}
}

func (v oneOf) Field() string { return v.field }

func (v oneOf) Check(_ context.Context, value string) error {
	for _, a := range v.allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   v.field,
		Message: fmt.Sprintf("%s must be one of: %s", v.field, strings.Join(v.allowed, ", ")),
	}
}

// Getter is the slice of the task store needed to check ids.
type Getter interface {
	Get(ctx context.Context, id int64) (*tasks.Task, error)
}

type idExists struct {
	field string
	store Getter
}

// IDExists requires the value to name an existing task.
func IDExists(field string, store Getter) Validator {
	return idExists{field: field, store: store}
}

func (v idExists) Field() string { return v.field }

func (v idExists) Check(ctx context.Context, value string) error {
	id, err := ParseID(value)
	if err != nil {
		return &ValidationError{Field: v.field, Message: v.field + " must be an integer"}
	}
	if _, err := v.store.Get(ctx, id); err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			return &ValidationError{Field: v.field, Message: fmt.Sprintf("no task found with id %d", id)}
		}
		return err
	}
	return nil
}

// ParseID parses a task id.
func ParseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
