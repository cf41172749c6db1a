package validation

import "github.com/dohr-michael/simpsched/internal/tasks"

// Command names a task command that accepts user input.
type Command string

const (
	CommandAdd    Command = "add"
	CommandRemove Command = "remove"
	CommandUpdate Command = "update"
)

// ForCommand returns the validators for cmd. Commands without input
// return an empty pipeline.
func ForCommand(cmd Command, store Getter) Pipeline {
	switch cmd {
	case CommandAdd:
		return Pipeline{
			NonEmpty(FieldTitle),
			ValidDate(FieldDueAt),
			OneOf(FieldStatus, statusNames()...),
		}
	case CommandRemove:
		return Pipeline{
			IDExists(FieldTaskID, store),
		}
	case CommandUpdate:
		return Pipeline{
			IDExists(FieldTaskID, store),
			NonEmpty(FieldTitle),
			ValidDate(FieldDueAt),
			OneOf(FieldStatus, statusNames()...),
		}
	}
	return nil
}

func statusNames() []string {
	names := make([]string, len(tasks.Statuses))
	for i, s := range tasks.Statuses {
		names[i] = string(s)
	}
	return names
}
