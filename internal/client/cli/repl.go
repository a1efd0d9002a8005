package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oceanticsports/oceantic-admin/internal/client/client"
	"github.com/oceanticsports/oceantic-admin/internal/client/form"
	"github.com/oceanticsports/oceantic-admin/internal/common"
)

// command is one REPL verb.
type command struct {
	usage string
	help  string
	// auth commands require a stored session.
	auth bool
	run  func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	lookup(name string) (command, bool)
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from reader, takes the first token as the command and
// passes the rest as arguments. "help" lists the commands available in the
// current login state; "exit" and "quit" end the loop, as does EOF.
// Errors returned by handlers are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "oceantic %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(a, w)
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := a.lookup(name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if cmd.auth && !a.isLoggedIn() {
			fmt.Fprintln(w, "Please log in first (type 'login').")
			continue
		}
		report(w, cmd.run(ctx, args))
	}
}

func printHelp(a execIface, w io.Writer) {
	loggedIn := a.isLoggedIn()
	fmt.Fprintln(w, "Available commands:")
	for _, name := range commandOrder {
		cmd, ok := a.lookup(name)
		if !ok || (cmd.auth && !loggedIn) {
			continue
		}
		fmt.Fprintf(w, "  %-28s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(w, "  %-28s %s\n", "exit | quit", "leave the program")
}

// report prints err in a form suited to an operator.
func report(w io.Writer, err error) {
	if err == nil {
		return
	}

	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(w, "Please fix the following fields:")
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
	case errors.Is(err, common.ErrNoSession), errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(w, "Session expired or rejected, please log in again (type 'login').")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(w, "Server unavailable, try again later.")
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
