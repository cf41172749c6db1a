package steps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dohr-michael/simpsched/internal/validation"
)

// Step binds a prompt to the field its answer is recorded under.
type Step struct {
	Field  string
	Prompt Prompt
	// When, if set, is evaluated against the answers collected so far;
	// the step is skipped when it returns false.
	When func(Answers) bool
}

// Answers maps field names to answers: string for Text and Select, bool for
// Confirm, []string for MultiSelect.
type Answers map[string]any

// String returns a text or select answer.
func (a Answers) String(field string) (string, bool) {
	v, ok := a[field].(string)
	return v, ok
}

// Bool returns a confirm answer.
func (a Answers) Bool(field string) bool {
	v, _ := a[field].(bool)
	return v
}

// Strings returns a multi-select answer.
func (a Answers) Strings(field string) []string {
	v, _ := a[field].([]string)
	return v
}

// Has reports whether a multi-select answer contains value.
func (a Answers) Has(field, value string) bool {
	return slices.Contains(a.Strings(field), value)
}

// Input converts the string answers into validation input, keyed by field.
// Confirm and multi-select answers carry no field values and are skipped.
func (a Answers) Input() validation.Input {
	in := validation.Input{}
	for k, v := range a {
		if s, ok := v.(string); ok {
			in[k] = s
		}
	}
	return in
}

// Run executes steps in order and returns every answer. If the user
// cancels any step, or ctx ends, Run stops at once and returns
// ErrCancelled with no answers.
func Run(ctx context.Context, p Prompter, steps []Step) (Answers, error) {
	answers := Answers{}
	for _, s := range steps {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		if s.When != nil && !s.When(answers) {
			continue
		}

		v, err := ask(ctx, p, s.Prompt)
		if err != nil {
			if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
				slog.Debug("step sequence cancelled", "field", s.Field)
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("step %s: %w", s.Field, err)
		}
		answers[s.Field] = v
	}
	return answers, nil
}

func ask(ctx context.Context, p Prompter, pr Prompt) (any, error) {
	switch pr := pr.(type) {
	case Text:
		return p.Text(ctx, pr)
	case Confirm:
		return p.Confirm(ctx, pr)
	case Select:
		return p.Select(ctx, pr)
	case MultiSelect:
		return p.MultiSelect(ctx, pr)
	default:
		return nil, fmt.Errorf("unsupported prompt %T", pr)
	}
}
