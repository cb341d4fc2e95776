package input

import (
	"github.com/clishell/clishell/core"
)

// Source is one entry on the input stack: a line source tagged with whether
// the engine owns the underlying resource. Owned sources are closed when
// popped; unowned sources (such as the interactive terminal supplied at
// session construction) survive popping.
type Source struct {
	src         core.LineSource
	owns        bool
	interactive bool
	closed      bool
}

// NewSource wraps a line source for the stack. The interactive flag is taken
// from the wrapped source at construction time.
func NewSource(src core.LineSource, owns bool) *Source {
	return &Source{src: src, owns: owns, interactive: src.IsInteractive()}
}

// ReadLine reads the next complete line from the wrapped source.
func (s *Source) ReadLine() (string, error) {
	return s.src.ReadLine()
}

// Interactive reports whether the source is an interactive terminal.
func (s *Source) Interactive() bool { return s.interactive }

// Owned reports whether the engine owns the underlying resource.
func (s *Source) Owned() bool { return s.owns }

// Close releases the underlying resource iff the source is owned. It is
// idempotent: the resource is released at most once regardless of how many
// exit paths reach it.
func (s *Source) Close() error {
	if !s.owns || s.closed {
		return nil
	}
	s.closed = true
	return s.src.Close()
}
