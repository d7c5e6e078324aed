package console

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentdesk/internal/models"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	role() models.Role
	isLoggedIn() bool

	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Logout(ctx context.Context) error

	Register(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Pay(ctx context.Context) error

	Summary(ctx context.Context) error
	Rooms(ctx context.Context, args []string) error
	Payments(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the
// input ends or the user types "exit" or "quit". Handlers print their own
// user-facing messages; errors they return are unexpected failures and are
// reported here so the loop keeps going.
// Form prompts read from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rentdesk %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help", "h":
			printlnFn(helpText(a))

		case "login":
			err = a.Login(ctx)
		case "signup":
			err = a.SignUp(ctx)
		case "forgot":
			err = a.ForgotPassword(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "register":
			err = a.Register(ctx)
		case "dashboard", "d":
			err = a.Dashboard(ctx)
		case "pay":
			err = a.Pay(ctx)

		case "summary", "s":
			err = a.Summary(ctx)
		case "rooms":
			err = a.Rooms(ctx, args)
		case "payments":
			err = a.Payments(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func helpText(a execIface) string {
	if !a.isLoggedIn() {
		return "Available commands: login, signup, forgot, exit"
	}
	if a.role() == models.RoleOwner {
		return "Available commands: (s)ummary, rooms [floor], payments, logout, exit"
	}
	return "Available commands: register, (d)ashboard, pay, payments, rooms [floor], logout, exit"
}
