// Package engine implements the session execution controller: the
// read-execute loop over the input stack, the READY/SCRIPT_ERROR/CLOSING
// state machine, and the synchronous and asynchronous entry points.
//
// The loop pulls complete lines from the top of the input stack, hands each
// to the configured core.Dispatcher, and reacts to the outcome: a failed line
// moves the session into the script-error state, which an interactive source
// recovers from before its next read while a scripted source unwinds one
// stack level. Exhausting a source likewise unwinds; popping the last entry
// ends the activation.
//
// Asynchronous runs execute the identical loop on a worker goroutine with
// cooperative cancellation observed only between line dispatches, so a line
// is never half-executed when cancellation lands.
package engine
