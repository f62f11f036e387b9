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
	isRecording() bool
	hasStoppedRecording() bool
	Warnings() []string

	Record(ctx context.Context) error
	StopRecording(ctx context.Context) error
	SaveEncounter(ctx context.Context) error
	DiscardRecording(ctx context.Context) error

	List(ctx context.Context) error
	Show(ctx context.Context) error
	Note(ctx context.Context) error
	Delete(ctx context.Context) error

	Scripts(ctx context.Context) error
	Status(ctx context.Context) error
	Upgrade(ctx context.Context) error
	CancelSubscription(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the PocketLegal shell.
//
// Before each prompt, pending advisory warnings are printed as a banner.
// The first token of the line is the command; unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help       — show available commands
//	record     — start a capture session
//	stop       — stop the running capture
//	save       — save the stopped capture as an encounter
//	discard    — drop the stopped capture
//	list       — list saved encounters, most recent first
//	show       — show one encounter
//	note       — amend the notes of an encounter
//	delete     — delete an encounter
//	scripts    — what-to-say guidance for a scenario
//	status     — account and entitlement status
//	upgrade    — start a premium subscription
//	cancel     — cancel the subscription
//	exit|quit  — leave the program
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		for _, w := range a.Warnings() {
			printlnFn(w)
		}

		printlnFn(fmt.Sprintf("pl> %s > ", statusFn()))
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
			switch {
			case a.isRecording():
				printlnFn("Available commands: stop, list, scripts, status, exit")
			case a.hasStoppedRecording():
				printlnFn("Available commands: save, discard, list, scripts, status, exit")
			default:
				printlnFn("Available commands: record, (l)ist, show, note, delete, scripts, status, upgrade, cancel, exit")
			}

		case "record":
			_ = a.Record(ctx)

		case "stop":
			_ = a.StopRecording(ctx)

		case "save":
			_ = a.SaveEncounter(ctx)

		case "discard":
			_ = a.DiscardRecording(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "note":
			_ = a.Note(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "scripts":
			_ = a.Scripts(ctx)

		case "status":
			_ = a.Status(ctx)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "cancel":
			_ = a.CancelSubscription(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
