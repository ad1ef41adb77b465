package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/client/client"
	"github.com/dmitrijs2005/usersvc/internal/client/config"
)

var ErrUnknownCommand = errors.New("unknown command")

// usersClient is the subset of client.GRPCClient the commands use.
type usersClient interface {
	Register(ctx context.Context, username, email, password string) (*api.User, error)
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	ListUsers(ctx context.Context) ([]*api.User, error)
	FindUser(ctx context.Context, username string) (*api.User, error)
	AddUser(ctx context.Context, username, email, password string, roles []string) (*api.User, error)
	Whoami(ctx context.Context) (*api.WhoamiResponse, error)
	Content(ctx context.Context, level client.Level) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	config   *config.Config
	client   usersClient
	reader   *bufio.Reader
	out      io.Writer
	commands map[string]command
}

// NewApp connects to the configured endpoint. in supplies prompted input,
// out receives command output.
func NewApp(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	c, err := client.New(cfg.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.ServerEndpointAddr, err)
	}
	c.SetToken(cfg.Token)
	return newApp(cfg, c, in, out), nil
}

func newApp(cfg *config.Config, c usersClient, in io.Reader, out io.Writer) *App {
	a := &App{config: cfg, client: c, reader: bufio.NewReader(in), out: out}
	a.commands = map[string]command{
		"register": {"register [-u username] [-e email] [-p password]", a.register},
		"login":    {"login [-u username] [-p password]", a.login},
		"users":    {"users", a.users},
		"user":     {"user <username>", a.user},
		"add-user": {"add-user [-u username] [-e email] [-p password] [-r role,role]", a.addUser},
		"whoami":   {"whoami", a.whoami},
		"content":  {"content [all|user|admin]", a.content},
		"ping":     {"ping", a.ping},
	}
	return a
}

func (a *App) Close() error {
	return a.client.Close()
}

// Execute runs a single command under the configured call timeout.
func (a *App) Execute(ctx context.Context, name string, args []string) error {
	switch name {
	case "", "help":
		a.help()
		return nil
	case "shell":
		return a.shell(ctx)
	}

	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return cmd.run(ctx, args)
}
