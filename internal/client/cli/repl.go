package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	CancelSecondFactor(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	TwoFactor(ctx context.Context, args []string) error
	Projects(ctx context.Context, args []string) error
	Project(ctx context.Context, args []string) error
	NewProject(ctx context.Context) error
	Tasks(ctx context.Context, args []string) error
	Classes(ctx context.Context) error
	Cohorts(ctx context.Context) error
	Invitations(ctx context.Context) error
	Respond(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, verify, resend, cancel2fa, help, exit"
	helpLoggedIn  = "Available commands: whoami, projects [status], project <id>, newproject, " +
		"tasks [project-id], classes, cohorts, invitations, respond <project-id> yes|no, " +
		"2fa enable|disable, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the taskboard CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a', passing the remaining tokens where a command
// takes arguments. Command errors are printed and the loop continues. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Commands read their own prompts from the same reader, so the loop must
// not buffer ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tb %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "verify":
			cmdErr = a.Verify(ctx)
		case "resend":
			cmdErr = a.Resend(ctx)
		case "cancel2fa":
			cmdErr = a.CancelSecondFactor(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "2fa":
			cmdErr = a.TwoFactor(ctx, args)
		case "projects":
			cmdErr = a.Projects(ctx, args)
		case "project":
			cmdErr = a.Project(ctx, args)
		case "newproject":
			cmdErr = a.NewProject(ctx)
		case "tasks":
			cmdErr = a.Tasks(ctx, args)
		case "classes":
			cmdErr = a.Classes(ctx)
		case "cohorts":
			cmdErr = a.Cohorts(ctx)
		case "invitations":
			cmdErr = a.Invitations(ctx)
		case "respond":
			cmdErr = a.Respond(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
