// Package core provides the foundational domain types and interfaces used by
// clishell. It defines the core abstractions for:
//
//   - Session state (READY, SCRIPT_ERROR, CLOSING) driving the read-execute loop
//   - LineSource (line-oriented input abstraction over terminals and scripts)
//   - Dispatcher (execution of one line against the registered grammar)
//   - GrammarLoader (registration of command-definition documents)
//
// The package intentionally keeps implementation concerns (terminal handling,
// XML parsing, engine orchestration) out of scope, exposing small interfaces
// to enable custom backends and extensions.
package core
