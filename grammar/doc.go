// Package grammar houses the built-in command-definition collaborators: an
// XML document loader (core.GrammarLoader), the registry it populates, and a
// dispatcher (core.Dispatcher) that executes lines against the registry.
//
// Command-definition documents declare commands, their parameters and either
// a builtin action name or raw action text. Definitions loaded later in
// discovery order override earlier ones of the same name, so per-user
// directories can shadow system-wide defaults.
//
// Both collaborators sit behind the small interfaces in the core package, so
// applications with their own grammar formats can replace them without
// touching the execution engine.
package grammar
