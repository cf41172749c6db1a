// Package steps runs ordered sequences of interactive prompts and collects
// the answers under named fields.
package steps

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Option represents a selectable option.
type Option struct {
	Value       string
	Label       string
	Description string
	Disabled    bool
}

// Prompt is one of Text, Confirm, Select or MultiSelect.
type Prompt interface {
	prompt()
}

// Text asks for a line of free text.
type Text struct {
	Label       string
	Placeholder string
	// Validate, when set, is checked on submit. A failing value keeps the
	// prompt open with the error shown.
	Validate func(string) error
}

// Confirm asks a yes/no question.
type Confirm struct {
	Label   string
	Default bool
}

// Select asks for exactly one option. The answer is the option value.
type Select struct {
	Label   string
	Options []Option
}

// MultiSelect asks for any number of options. The answer is the list of
// chosen values in option order.
type MultiSelect struct {
	Label     string
	Options   []Option
	MinSelect int
}

func (Text) prompt()        {}
func (Confirm) prompt()     {}
func (Select) prompt()      {}
func (MultiSelect) prompt() {}

// Prompter displays prompts and blocks until the user answers. Each method
// returns ErrCancelled when the user aborts.
type Prompter interface {
	Text(ctx context.Context, p Text) (string, error)
	Confirm(ctx context.Context, p Confirm) (bool, error)
	Select(ctx context.Context, p Select) (string, error)
	MultiSelect(ctx context.Context, p MultiSelect) ([]string, error)
}
