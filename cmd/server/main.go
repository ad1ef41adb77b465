package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server"
	"github.com/dmitrijs2005/usersvc/internal/server/config"
)

const usage = `usage: server [run|init] [-c config.(json|yaml)] [-a addr] [-d dsn] [-l level] [-k hashing-secret] [-s token-secret] [-t minutes]

  run   serve the gRPC API (default)
  init  apply migrations and seed the admin account
`

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cmd, rest := flagx.Subcommand(args)
	if cmd == "" {
		cmd = "run"
	}
	if cmd != "run" && cmd != "init" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg, err := config.LoadConfig(rest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer app.Close()

	switch cmd {
	case "init":
		err = app.Init(ctx)
	default:
		err = app.Run(ctx)
	}
	if err != nil {
		logger.Error(ctx, cmd+" failed", "error", err)
		return 1
	}
	return 0
}
