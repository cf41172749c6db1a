package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/simpsched/clients/tui"
	"github.com/dohr-michael/simpsched/internal/steps"
	"github.com/dohr-michael/simpsched/internal/tasks"
	"github.com/dohr-michael/simpsched/internal/validation"
)

// NewInteractiveCommand returns the interactive subcommand.
func NewInteractiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Manage tasks through guided prompts",
		Action:  runInteractive,
	}
}

func runInteractive(ctx context.Context, cmd *cli.Command) error {
	if err := tui.RequireTerminal(os.Stdin); err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintln(w, tui.Banner())

	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	s := &session{
		store:  store,
		prompt: tui.NewPrompter(os.Stdin, w),
		out:    w,
		now:    time.Now,
	}
	return s.loop(ctx)
}

// session drives the interactive menu against one open store.
type session struct {
	store  tasks.Store
	prompt steps.Prompter
	out    io.Writer
	now    func() time.Time
}

// loop shows the menu until the user exits or the context ends. Errors
// end the current action only.
func (s *session) loop(ctx context.Context) error {
	for {
		answers, err := steps.Run(ctx, s.prompt, steps.MenuSteps())
		if err != nil {
			if errors.Is(err, steps.ErrCancelled) {
				return nil
			}
			return err
		}

		action, _ := answers.String(steps.FieldAction)
		if steps.Action(action) == steps.ActionExit {
			return nil
		}

		err = s.dispatch(ctx, steps.Action(action))
		switch {
		case err == nil:
		case errors.Is(err, steps.ErrCancelled):
			if ctx.Err() != nil {
				return nil
			}
			tui.Message(s.out, "Cancelled.")
		default:
			slog.Debug("interactive action failed", "action", action, "error", err)
			tui.ErrorMessage(s.out, err)
		}
	}
}

func (s *session) dispatch(ctx context.Context, action steps.Action) error {
	switch action {
	case steps.ActionAdd:
		return s.add(ctx)
	case steps.ActionUpdate:
		return s.update(ctx)
	case steps.ActionRemove:
		return s.remove(ctx)
	case steps.ActionList:
		return s.list(ctx)
	case steps.ActionPurge:
		return s.purge(ctx)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (s *session) add(ctx context.Context) error {
	answers, err := steps.Run(ctx, s.prompt, steps.AddSteps())
	if err != nil {
		return err
	}
	id, err := addTask(ctx, s.store, answers.Input())
	if err != nil {
		return err
	}
	return tui.Message(s.out, fmt.Sprintf("Task #%d added.", id))
}

func (s *session) update(ctx context.Context) error {
	choices, ok, err := s.choices(ctx)
	if !ok || err != nil {
		return err
	}
	answers, err := steps.Run(ctx, s.prompt, steps.UpdateSteps(choices))
	if err != nil {
		return err
	}
	id, err := updateTask(ctx, s.store, answers.Input())
	if err != nil {
		return err
	}
	return tui.Message(s.out, fmt.Sprintf("Task #%d updated.", id))
}

func (s *session) remove(ctx context.Context) error {
	choices, ok, err := s.choices(ctx)
	if !ok || err != nil {
		return err
	}
	answers, err := steps.Run(ctx, s.prompt, steps.RemoveSteps(choices))
	if err != nil {
		return err
	}
	if !answers.Bool(steps.FieldConfirm) {
		return tui.Message(s.out, "Nothing removed.")
	}
	id, err := removeTask(ctx, s.store, validation.Input{validation.FieldTaskID: answers.Input()[validation.FieldTaskID]})
	if err != nil {
		return err
	}
	return tui.Message(s.out, fmt.Sprintf("Task #%d removed.", id))
}

func (s *session) list(ctx context.Context) error {
	list, err := listTasks(ctx, s.store, "")
	if err != nil {
		return err
	}
	return tui.RenderTable(s.out, list, s.now())
}

func (s *session) purge(ctx context.Context) error {
	msg, err := purgeBefore(ctx, s.store, tasks.StartOfDay(s.now()))
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Nothing to purge."
	}
	return tui.Message(s.out, msg)
}

// choices lists the tasks to pick from, reporting false when there are none.
func (s *session) choices(ctx context.Context) ([]*tasks.Task, bool, error) {
	list, err := listTasks(ctx, s.store, "")
	if err != nil {
		return nil, false, err
	}
	if len(list) == 0 {
		return nil, false, tui.Message(s.out, "No tasks to show.")
	}
	return list, true, nil
}
