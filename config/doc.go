// Package config resolves the command-definition search path and discovers
// documents to register into the session grammar.
//
// The search path is a ;-delimited list of directories taken from the
// CLISHELL_PATH environment variable, falling back to a built-in default of a
// system-wide and a per-user directory. Home tokens (~) anywhere in the path
// are expanded to the user's home directory before splitting.
//
// Discovery is deliberately forgiving: unreadable directories and malformed
// documents are logged and skipped so one bad entry never takes down the
// session.
package config
