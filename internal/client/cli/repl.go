package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL dispatches to. Each
// handler receives the words after the command name.
type execIface interface {
	ShowUser(ctx context.Context, args []string) error
	FindByEmail(ctx context.Context, args []string) error
	FindByAccount(ctx context.Context, args []string) error
	ShowSession(ctx context.Context, args []string) error
	RevokeSession(ctx context.Context, args []string) error
	Unlink(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	BurnToken(ctx context.Context, args []string) error
	Ping(ctx context.Context, args []string) error
}

var errUsage = errors.New("usage")

const helpText = `Available commands:
  user <id>                          show a user
  email <address>                    find a user by email
  account <provider> <accountId>     find a user by linked account
  session <token>                    show a session and its user
  revoke <token>                     delete a session
  unlink <provider> <accountId>      remove an account link
  deluser <id>                       delete a user
  burn <identifier>                  consume a verification token
  ping                               check server health
  exit | quit                        leave the program`

// runREPL starts a read–eval–print loop. It reads a line from reader,
// parses the first word as the command and dispatches to a. The loop exits
// on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are not fatal; handlers print their
// own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "authctl %s> ", statusFn())

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "user":
			_ = a.ShowUser(ctx, args)
		case "email":
			_ = a.FindByEmail(ctx, args)
		case "account":
			_ = a.FindByAccount(ctx, args)
		case "session":
			_ = a.ShowSession(ctx, args)
		case "revoke":
			_ = a.RevokeSession(ctx, args)
		case "unlink":
			_ = a.Unlink(ctx, args)
		case "deluser":
			_ = a.DeleteUser(ctx, args)
		case "burn":
			_ = a.BurnToken(ctx, args)
		case "ping":
			_ = a.Ping(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
