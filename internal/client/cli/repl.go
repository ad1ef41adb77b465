package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// shell reads commands from the input until EOF or exit. Errors are printed
// and do not end the session.
func (a *App) shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "users client (type 'help' for commands)")
	for {
		fmt.Fprint(a.out, "usersvc> ")
		line, err := a.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		parts := strings.Fields(line)
		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return nil
			case "shell":
				fmt.Fprintln(a.out, "already in shell")
			default:
				if cmdErr := a.Execute(ctx, parts[0], parts[1:]); cmdErr != nil {
					fmt.Fprintf(a.out, "error: %v\n", cmdErr)
				}
			}
		}

		if err != nil {
			fmt.Fprintln(a.out)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
