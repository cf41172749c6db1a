package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/simpsched/clients/tui"
	"github.com/dohr-michael/simpsched/internal/tasks"
	"github.com/dohr-michael/simpsched/internal/validation"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a task",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Task title", Required: true},
			&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "Task description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "pending, in_progress, done or cancelled", Value: string(tasks.StatusPending)},
			&cli.StringFlag{Name: "due", Usage: "Due date, YYYY-MM-DD [HH:MM:SS]"},
		},
		Action: runAdd,
	}
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	in := flagInput(cmd)
	in[validation.FieldTitle] = cmd.String("title")
	in[validation.FieldStatus] = cmd.String("status")

	id, err := addTask(ctx, store, in)
	if err != nil {
		return err
	}
	return tui.Message(cmd.Root().Writer, fmt.Sprintf("Task #%d added.", id))
}

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks, due first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "table, json or yaml", Value: string(tui.FormatTable)},
			&cli.StringFlag{Name: "status", Usage: "Only show tasks with this status"},
		},
		Action: runList,
	}
}

func runList(ctx context.Context, cmd *cli.Command) error {
	format, err := tui.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}
	var status tasks.Status
	if s := cmd.String("status"); s != "" {
		if status, err = tasks.ParseStatus(s); err != nil {
			return err
		}
	}

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := listTasks(ctx, store, status)
	if err != nil {
		return err
	}
	return tui.Render(cmd.Root().Writer, format, list, time.Now())
}

// NewShowCommand returns the show subcommand.
func NewShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show task details",
		ArgsUsage: "<id>",
		Action:    runShow,
	}
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	id, err := argID(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	return tui.RenderTask(cmd.Root().Writer, t, time.Now())
}

// NewUpdateCommand returns the update subcommand.
func NewUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Edit the given fields of a task",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status"},
			&cli.StringFlag{Name: "due", Usage: "New due date, YYYY-MM-DD [HH:MM:SS]"},
			&cli.BoolFlag{Name: "clear-due", Usage: "Remove the due date"},
		},
		Action: runUpdate,
	}
}

func runUpdate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().First() == "" {
		return fmt.Errorf("usage: simpsched update <id> [flags]")
	}
	if cmd.IsSet("due") && cmd.Bool("clear-due") {
		return fmt.Errorf("--due and --clear-due are mutually exclusive")
	}

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	in := flagInput(cmd)
	in[validation.FieldTaskID] = cmd.Args().First()
	if cmd.IsSet("title") {
		in[validation.FieldTitle] = cmd.String("title")
	}
	if cmd.IsSet("status") {
		in[validation.FieldStatus] = cmd.String("status")
	}
	if cmd.Bool("clear-due") {
		in[validation.FieldDueAt] = ""
	}

	id, err := updateTask(ctx, store, in)
	if err != nil {
		return err
	}
	if len(in) == 1 {
		return tui.Message(cmd.Root().Writer, "Nothing to update.")
	}
	return tui.Message(cmd.Root().Writer, fmt.Sprintf("Task #%d updated.", id))
}

// NewRemoveCommand returns the remove subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		ArgsUsage: "<id>",
		Action:    runRemove,
	}
}

func runRemove(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().First() == "" {
		return fmt.Errorf("usage: simpsched remove <id>")
	}

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := removeTask(ctx, store, validation.Input{validation.FieldTaskID: cmd.Args().First()})
	if err != nil {
		return err
	}
	return tui.Message(cmd.Root().Writer, fmt.Sprintf("Task #%d removed.", id))
}

// NewPurgeCommand returns the purge subcommand.
func NewPurgeCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete done and cancelled tasks last updated before a date",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "before", Usage: "Cutoff date YYYY-MM-DD (default: start of today)"},
		},
		Action: runPurge,
	}
}

func runPurge(ctx context.Context, cmd *cli.Command) error {
	cutoff := tasks.StartOfDay(time.Now())
	if s := cmd.String("before"); s != "" {
		t, _, err := tasks.ParseDue(s)
		if err != nil {
			return &validation.ValidationError{Field: "before", Message: "before: " + err.Error()}
		}
		cutoff = tasks.StartOfDay(t)
	}

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	msg, err := purgeBefore(ctx, store, cutoff)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Nothing to purge."
	}
	return tui.Message(cmd.Root().Writer, msg)
}

// flagInput collects the optional description and due flags that were set.
func flagInput(cmd *cli.Command) validation.Input {
	in := validation.Input{}
	if cmd.IsSet("desc") {
		in[validation.FieldDesc] = cmd.String("desc")
	}
	if cmd.IsSet("due") {
		in[validation.FieldDueAt] = cmd.String("due")
	}
	return in
}

func argID(cmd *cli.Command) (int64, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("usage: simpsched %s <id>", cmd.Name)
	}
	id, err := validation.ParseID(arg)
	if err != nil {
		return 0, &validation.ValidationError{Field: validation.FieldTaskID, Message: validation.FieldTaskID + " must be an integer"}
	}
	return id, nil
}
