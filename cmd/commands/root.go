package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/simpsched/clients/tui"
	"github.com/dohr-michael/simpsched/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "simpsched",
		Usage: "A simple task scheduler for the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the task database (overrides store.path)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: setup,
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Root().Writer, tui.Banner())
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			NewAddCommand(),
			NewListCommand(),
			NewShowCommand(),
			NewUpdateCommand(),
			NewRemoveCommand(),
			NewPurgeCommand(),
			NewInteractiveCommand(),
		},
	}
}

// Main runs the CLI with args and returns the process exit code. A failure
// is reported to stderr as a single line.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.Writer = stdout
	root.ErrWriter = stderr
	if err := root.Run(ctx, args); err != nil {
		slog.Debug("command failed", "error", err)
		tui.ErrorMessage(stderr, err)
		return 1
	}
	return 0
}

type configKey struct{}

// setup configures logging and loads the config before any subcommand runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return ctx, fmt.Errorf("load config %s: %w", configPath, err)
	}

	level := cfg.Log.SlogLevel()
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logOut := cmd.Root().ErrWriter
	if logOut == nil {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(newLogHandler(logOut, level)))
	slog.Debug("config loaded", "path", configPath, "store", cfg.Store.Path)

	return context.WithValue(ctx, configKey{}, cfg), nil
}

// configFrom returns the config loaded by setup, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
