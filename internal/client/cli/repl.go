package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Username(ctx context.Context) error
	Me(ctx context.Context) error
	Secrets(ctx context.Context) error
	Post(ctx context.Context) error
	Claim(ctx context.Context, args []string) error
	Stash(ctx context.Context) error
	Ranking(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpGuest    = "Available commands: register, login, username, help, exit"
	helpLoggedIn = "Available commands: me, secrets, post, claim <id>, stash, ranking, logout, help, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "ss %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpGuest)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "username":
			err = a.Username(ctx)

		case "me":
			err = a.Me(ctx)

		case "secrets", "s":
			err = a.Secrets(ctx)

		case "post":
			err = a.Post(ctx)

		case "claim":
			err = a.Claim(ctx, args)

		case "stash":
			err = a.Stash(ctx)

		case "ranking", "r":
			err = a.Ranking(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", describeError(err))
		}
	}
}
