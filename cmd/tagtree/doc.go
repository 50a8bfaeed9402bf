// Package main hosts the tagtree CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds structured
// logging, and dispatches: the bare invocation with two directories runs the
// organizer, while subcommands cover dry-run planning, run history, and
// configuration scaffolding. Heavy lifting lives in the internal packages;
// commands stay declarative.
package main
