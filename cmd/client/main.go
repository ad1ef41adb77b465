package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/usersvc/internal/client/cli"
	"github.com/dmitrijs2005/usersvc/internal/client/config"
	"github.com/dmitrijs2005/usersvc/internal/flagx"
)

const usage = `usage: client [-c config.json] [-a addr] [-t token] [-w seconds] <command> [args]

commands: register, login, users, user, add-user, whoami, content, ping, shell, help
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	globals, cmd, rest := flagx.SplitCommand(args, []string{"-a", "-t", "-w", "-c", "-config", "--config"})
	if cmd == "" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg, err := config.LoadConfig(globals, os.Environ())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	app, err := cli.NewApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer app.Close()

	if err := app.Execute(ctx, cmd, rest); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		return 1
	}
	return 0
}
