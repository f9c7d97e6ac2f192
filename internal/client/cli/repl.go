package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	Reveal(ctx context.Context, target string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Which commands are accepted depends on a.isLoggedIn():
//
//	Entry form:
//	  - help              show available commands
//	  - login             submit credentials
//	  - signup            create an account and sign in
//	  - reveal [confirm]  toggle echo of the password (or confirmation)
//	  - exit | quit       leave the program
//
//	Dashboard:
//	  - help              show available commands
//	  - whoami            show the signed-in user
//	  - logout            return to the entry form
//	  - exit | quit       leave the program
//
// Errors returned by handlers are ignored here; handlers report to the user
// themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gophauth %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, reveal [confirm], exit")
			}
			continue
		}

		if a.isLoggedIn() {
			switch cmd {
			case "whoami":
				_ = a.WhoAmI(ctx)
			case "logout":
				_ = a.Logout(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "login":
			_ = a.Login(ctx)
		case "signup":
			_ = a.SignUp(ctx)
		case "reveal":
			target := ""
			if len(args) > 0 {
				target = args[0]
			}
			_ = a.Reveal(ctx, target)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
