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
	isOnboarded() bool
	Onboard(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ToggleGoal(ctx context.Context) error
	SetTheme(ctx context.Context) error
	Upgrade(ctx context.Context) error
	LogMeal(ctx context.Context) error
	ListMeals(ctx context.Context) error
	Today(ctx context.Context) error
	DeleteMeal(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the NutriTrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Before onboarding only "onboard" and account commands are offered; the
// full command set unlocks once a profile exists.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isOnboarded() {
				printlnFn("Available commands: (l)og, meals, today, delete, profile, edit, goal, theme, upgrade, register, login, logout, exit")
			} else {
				printlnFn("Available commands: onboard, register, login, exit")
			}

		case "onboard":
			_ = a.Onboard(ctx)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "goal":
			_ = a.ToggleGoal(ctx)

		case "theme":
			_ = a.SetTheme(ctx)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "l", "log":
			_ = a.LogMeal(ctx)

		case "meals":
			_ = a.ListMeals(ctx)

		case "today":
			_ = a.Today(ctx)

		case "delete":
			_ = a.DeleteMeal(ctx)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
