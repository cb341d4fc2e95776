// Package readline houses the built-in core.LineSource implementations: an
// interactive terminal source backed by github.com/chzyer/readline and a
// buffered script source for files and arbitrary readers.
//
// The engine treats both uniformly; only the interactive flag differs, which
// drives the error-recovery behavior of the session state machine.
package readline
