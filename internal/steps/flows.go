package steps

import (
	"context"
	"fmt"

	"github.com/dohr-michael/simpsched/internal/tasks"
	"github.com/dohr-michael/simpsched/internal/validation"
)

// FieldConfirm and FieldFields hold answers that steer a flow rather than
// carry task data.
const (
	FieldConfirm = "confirm"
	FieldFields  = "fields"
	FieldAction  = "action"
)

// Action is an entry of the interactive menu.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
	ActionList   Action = "list"
	ActionPurge  Action = "purge"
	ActionExit   Action = "exit"
)

// MenuSteps asks which action to run next.
func MenuSteps() []Step {
	return []Step{{
		Field: FieldAction,
		Prompt: Select{
			Label: "What do you want to do?",
			Options: []Option{
				{Value: string(ActionAdd), Label: "Add"},
				{Value: string(ActionUpdate), Label: "Update"},
				{Value: string(ActionRemove), Label: "Remove"},
				{Value: string(ActionList), Label: "List"},
				{Value: string(ActionPurge), Label: "Purge", Description: "Delete tasks finished before today"},
				{Value: string(ActionExit), Label: "Exit"},
			},
		},
	}}
}

// AddSteps collects the fields of a new task.
func AddSteps() []Step {
	return []Step{
		titleStep("Enter task title:"),
		descStep("Enter task description (optional):"),
		statusStep("Select task status:"),
		dueStep("Enter due date (YYYY-MM-DD HH:MM:SS - time is optional) (optional):"),
	}
}

// RemoveSteps picks a task among choices and asks for confirmation.
func RemoveSteps(choices []*tasks.Task) []Step {
	return []Step{
		chooseTaskStep(choices),
		{
			Field:  FieldConfirm,
			Prompt: Confirm{Label: "Are you sure you want to remove this task?"},
		},
	}
}

// UpdateSteps picks a task, asks which fields to edit, then asks only for
// the chosen fields.
func UpdateSteps(choices []*tasks.Task) []Step {
	chosen := func(field string) func(Answers) bool {
		return func(a Answers) bool { return a.Has(FieldFields, field) }
	}

	title := titleStep("Enter new title:")
	title.When = chosen(validation.FieldTitle)
	desc := descStep("Enter new description:")
	desc.When = chosen(validation.FieldDesc)
	due := dueStep("Enter new due date (YYYY-MM-DD HH:MM:SS - time is optional, empty clears it):")
	due.When = chosen(validation.FieldDueAt)
	status := statusStep("Select new status:")
	status.When = chosen(validation.FieldStatus)

	return []Step{
		chooseTaskStep(choices),
		{
			Field: FieldFields,
			Prompt: MultiSelect{
				Label: "Which field(s) do you want to edit?",
				Options: []Option{
					{Value: validation.FieldTitle, Label: "title"},
					{Value: validation.FieldDesc, Label: "description"},
					{Value: validation.FieldDueAt, Label: "due date"},
					{Value: validation.FieldStatus, Label: "status"},
				},
				MinSelect: 1,
			},
		},
		title,
		desc,
		due,
		status,
	}
}

// TaskOptions turns tasks into select options keyed by id.
func TaskOptions(list []*tasks.Task) []Option {
	opts := make([]Option, 0, len(list))
	for _, t := range list {
		opts = append(opts, Option{
			Value: fmt.Sprint(t.ID),
			Label: fmt.Sprintf("#%d %s (%s)", t.ID, t.Title, t.Status),
		})
	}
	return opts
}

func chooseTaskStep(choices []*tasks.Task) Step {
	return Step{
		Field: validation.FieldTaskID,
		Prompt: Select{
			Label:   "Choose from the following list of tasks:",
			Options: TaskOptions(choices),
		},
	}
}

func titleStep(label string) Step {
	return Step{
		Field:  validation.FieldTitle,
		Prompt: Text{Label: label, Validate: check(validation.NonEmpty(validation.FieldTitle))},
	}
}

func descStep(label string) Step {
	return Step{Field: validation.FieldDesc, Prompt: Text{Label: label}}
}

func dueStep(label string) Step {
	return Step{
		Field: validation.FieldDueAt,
		Prompt: Text{
			Label:       label,
			Placeholder: "YYYY-MM-DD",
			Validate:    check(validation.ValidDate(validation.FieldDueAt)),
		},
	}
}

func statusStep(label string) Step {
	opts := make([]Option, len(tasks.Statuses))
	for i, s := range tasks.Statuses {
		opts[i] = Option{Value: string(s), Label: string(s)}
	}
	return Step{Field: validation.FieldStatus, Prompt: Select{Label: label, Options: opts}}
}

// check adapts a store-independent validator to an inline prompt check.
func check(v validation.Validator) func(string) error {
	return func(s string) error {
		return v.Check(context.Background(), s)
	}
}
