package cli

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/api"
	"github.com/dmitrijs2005/usersvc/internal/client/client"
)

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// ask prompts for value unless it is already set.
func (a *App) ask(value *string, prompt string) error {
	if *value != "" {
		return nil
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (a *App) askPassword(value *string) error {
	if *value != "" {
		return nil
	}
	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	*value = string(pw)
	clear(pw)
	return nil
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range slices.Sorted(maps.Keys(a.commands)) {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
	fmt.Fprintln(a.out, "  shell")
	fmt.Fprintln(a.out, "  help")
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ask(username, "Username"); err != nil {
		return err
	}
	if err := a.ask(email, "Email"); err != nil {
		return err
	}
	if err := a.askPassword(password); err != nil {
		return err
	}

	u, err := a.client.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s (%s)\n", u.Username, u.ID)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ask(username, "Username"); err != nil {
		return err
	}
	if err := a.askPassword(password); err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s, token expires %s\n", resp.User.Username, resp.ExpiresAt.Format(time.RFC3339))
	fmt.Fprintln(a.out, resp.AccessToken)
	return nil
}

func (a *App) printUsers(users []*api.User) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tEMAIL\tROLES\tACTIVE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			u.Username, u.Email, strings.Join(u.Roles, ","), u.Active, u.CreatedAt.Format(time.RFC3339))
	}
	tw.Flush()
}

func (a *App) users(ctx context.Context, _ []string) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	a.printUsers(users)
	return nil
}

func (a *App) user(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", a.commands["user"].usage)
	}
	u, err := a.client.FindUser(ctx, args[0])
	if err != nil {
		return err
	}
	a.printUsers([]*api.User{u})
	return nil
}

func (a *App) addUser(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add-user")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	roles := fs.String("r", "", "comma separated roles")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ask(username, "Username"); err != nil {
		return err
	}
	if err := a.ask(email, "Email"); err != nil {
		return err
	}
	if err := a.askPassword(password); err != nil {
		return err
	}

	var rs []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rs = append(rs, r)
		}
	}

	u, err := a.client.AddUser(ctx, *username, *email, *password, rs)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (%s) roles=[%s]\n", u.Username, u.ID, strings.Join(u.Roles, ","))
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	me, err := a.client.Whoami(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "subject: %s\nroles:   %s\nissuer:  %s\nexpires: %s\n",
		me.Subject, strings.Join(me.Roles, ","), me.Issuer, me.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (a *App) content(ctx context.Context, args []string) error {
	level := client.LevelAll
	if len(args) > 0 {
		level = client.Level(args[0])
	}
	text, err := a.client.Content(ctx, level)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (a *App) ping(ctx context.Context, _ []string) error {
	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
