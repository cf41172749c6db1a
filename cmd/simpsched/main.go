package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dohr-michael/simpsched/cmd/commands"
	"github.com/dohr-michael/simpsched/internal/config"
)

func main() {
	if err := config.LoadDotenv(config.DotenvPath()); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	code := commands.Main(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
