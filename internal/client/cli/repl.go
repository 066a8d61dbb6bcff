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
	Auth(ctx context.Context) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Ask(ctx context.Context, text string) error
	Select(ctx context.Context, text string) error
	Dismiss(ctx context.Context) error
	History(ctx context.Context) error
	ClearChat(ctx context.Context) error
	LoadChapter(ctx context.Context, path string) error
	Personalize(ctx context.Context) error
	Translate(ctx context.Context) error
	ResetChapter(ctx context.Context) error
	ShowChapter(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own diagnostics. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("companion %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: ask, select, dismiss, history, clear, load, personalize, translate, reset, show, whoami, logout, exit")
			} else {
				printlnFn("Available commands: auth, login, signup, ask, select, dismiss, history, clear, load, show, exit")
			}

		case "auth":
			_ = a.Auth(ctx)

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "ask":
			_ = a.Ask(ctx, rest)

		case "select":
			if rest == "" {
				printlnFn("Usage: select <text>")
				continue
			}
			_ = a.Select(ctx, rest)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "history":
			_ = a.History(ctx)

		case "clear":
			_ = a.ClearChat(ctx)

		case "load":
			if rest == "" {
				printlnFn("Usage: load <path>")
				continue
			}
			_ = a.LoadChapter(ctx, rest)

		case "personalize":
			_ = a.Personalize(ctx)

		case "translate":
			_ = a.Translate(ctx)

		case "reset":
			_ = a.ResetChapter(ctx)

		case "show":
			_ = a.ShowChapter(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
