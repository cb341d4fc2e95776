// Package input implements the stack of input sources the execution engine
// reads from. Each entry wraps a core.LineSource tagged with resource
// ownership: sources opened by the engine (script files) are closed when
// popped, while externally supplied sources (the interactive terminal) are
// never closed by the stack.
//
// Nested sources execute to completion before control returns to the source
// that included them; popping the last entry signals the end of the session.
package input
