package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/simpsched/clients/tui"
	"github.com/dohr-michael/simpsched/internal/tasks"
)

// openStore opens the task database named by --db or the config, and runs
// the startup purge when enabled. Callers must Close the store.
func openStore(ctx context.Context, cmd *cli.Command) (*tasks.SQLiteStore, error) {
	cfg := configFrom(ctx)

	path := cmd.String("db")
	if path == "" {
		path = cfg.Store.Path
	}

	store, err := tasks.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}

	if cfg.Purge.Enabled() {
		msg, err := purgeBefore(ctx, store, tasks.StartOfDay(time.Now()))
		if err != nil {
			store.Close()
			return nil, err
		}
		if msg != "" {
			tui.Message(cmd.Root().Writer, msg)
		}
	}
	return store, nil
}
