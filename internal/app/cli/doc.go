// Package cli provides the interactive PocketLegal shell.
//
// It wires configuration, the local database, blob storage, billing and the
// script advisor into an interactive REPL built around the encounter
// lifecycle: record, stop, save or discard, then list, annotate and delete
// saved encounters. Advisory warnings (failed uploads, failed remote pushes,
// missing location) accumulate in a monitor and are printed as a banner
// before the next prompt, never interrupting a command.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
