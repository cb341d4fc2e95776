package core

import (
	"context"
	"errors"
)

// State is the session execution state governing the read-execute loop.
//
// The state is owned exclusively by the execution engine; collaborators
// observe it but never mutate it directly.
type State int

const (
	// StateReady is the normal read-execute state.
	StateReady State = iota
	// StateScriptError indicates a dispatched line failed. Further reads are
	// suppressed until the session recovers (interactive source) or the
	// failing source is unwound (scripted source).
	StateScriptError
	// StateClosing indicates teardown was requested; the loop must exit.
	// StateClosing is terminal.
	StateClosing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateScriptError:
		return "SCRIPT_ERROR"
	case StateClosing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrNoSource is returned when the input stack has no active source.
	ErrNoSource = errors.New("clishell: no active input source")

	// ErrAlreadyRunning is returned when a run is requested on an engine whose
	// loop is already executing. It is distinguishable from a failed run
	// outcome, which is reported as a boolean.
	ErrAlreadyRunning = errors.New("clishell: engine is already running")

	// ErrMaxDepth is returned when pushing an input source would exceed the
	// configured inclusion depth limit.
	ErrMaxDepth = errors.New("clishell: input stack depth limit exceeded")
)

// LineSource supplies complete lines of input to the engine. Implementations
// wrap an interactive terminal (with editing and echoing handled internally)
// or a script stream.
//
// ReadLine returns io.EOF when the source is exhausted. Close releases the
// underlying resource; it must be safe to call more than once.
type LineSource interface {
	ReadLine() (string, error)
	IsInteractive() bool
	Close() error
}

// Dispatcher executes one complete line against the registered command
// grammar. A nil return means the line succeeded; any error marks the line as
// failed and moves the session into StateScriptError.
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) error
}

// GrammarLoader parses one command-definition document and registers its
// contents into the session's grammar. A failure affects only the given
// document; discovery of further documents continues.
type GrammarLoader interface {
	LoadDocument(ctx context.Context, path string) error
}
