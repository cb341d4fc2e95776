package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/input"
	"github.com/clishell/clishell/logging"
	"github.com/clishell/clishell/readline"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Input is the session's default line source, pushed as the base of the
	// input stack on every activation. The engine does not own it; the
	// caller is responsible for closing it.
	Input core.LineSource
	// MaxDepth limits script inclusion nesting. 0 disables the guard.
	MaxDepth int
	// Logger receives engine diagnostics.
	Logger logging.Logger
}

// Engine is the session execution controller. It owns the input stack and
// the session state, drives the read-execute loop, and exposes synchronous
// and asynchronous ways to run it.
//
// At most one activation of the loop may execute at a time; Run and Spawn are
// mutually exclusive ways to run the same loop. The session's mutable state
// is touched only by whichever activation is current, so the loop itself
// needs no locking.
type Engine struct {
	dispatcher core.Dispatcher
	stack      *input.Stack
	logger     logging.Logger

	// state transitions are confined to the active loop except for Close,
	// which may be called from any goroutine.
	state atomic.Int32

	mu         sync.Mutex
	running    bool
	inputSrc   core.LineSource
	inputOwned bool
}

// New constructs an Engine dispatching lines to the given dispatcher.
func New(dispatcher core.Dispatcher, optFns ...func(o *Options)) *Engine {
	opts := Options{
		MaxDepth: input.DefaultMaxDepth,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{
		dispatcher: dispatcher,
		logger:     opts.Logger,
		inputSrc:   opts.Input,
	}
	e.stack = input.NewStack(func(o *input.Options) {
		o.MaxDepth = opts.MaxDepth
		o.Logger = opts.Logger
	})
	e.state.Store(int32(core.StateReady))
	return e
}

// State returns the current session state.
func (e *Engine) State() core.State { return core.State(e.state.Load()) }

func (e *Engine) setState(s core.State) {
	// Closing is terminal; nothing transitions out of it. Close may land
	// from another goroutine between a load and a store, so a plain
	// check-then-store could overwrite a concurrent shutdown request.
	for {
		old := e.state.Load()
		if old == int32(core.StateClosing) {
			return
		}
		if e.state.CompareAndSwap(old, int32(s)) {
			return
		}
	}
}

// Close requests shutdown: the state moves to Closing from any state and the
// loop exits at its next iteration. Close is idempotent and safe to call from
// any goroutine. A closed engine's Run is a no-op reporting success.
func (e *Engine) Close() {
	e.state.Store(int32(core.StateClosing))
}

// SetInput replaces the session's default line source before a run. The
// previous source is not closed; both are owned by the caller. SetInput must
// not be called while the engine is running.
func (e *Engine) SetInput(src core.LineSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputSrc = src
	e.inputOwned = false
}

// Include opens the named script and pushes it on top of the current input
// source. Subsequent reads draw from the script until it is exhausted or a
// line in it fails; control then returns to the including source. Include is
// intended to be called from a dispatched command action.
func (e *Engine) Include(path string) error {
	script, err := readline.OpenScript(path)
	if err != nil {
		return err
	}
	if err := e.stack.Push(input.NewSource(script, true)); err != nil {
		script.Close()
		return err
	}
	return nil
}

// acquire marks the engine as running, failing when an activation is already
// in flight.
func (e *Engine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return core.ErrAlreadyRunning
	}
	e.running = true
	return nil
}

func (e *Engine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
}

// Run executes the read-execute loop in the calling goroutine. It returns
// true unless the loop ended on a script error, cancellation, or because an
// activation was already running. Exhausting all input is a success.
func (e *Engine) Run(ctx context.Context) bool {
	if err := e.acquire(); err != nil {
		e.logger.Warn("run rejected", "error", err)
		return false
	}
	defer e.release()
	return e.loop(ctx)
}

// loop is one activation of the read-execute loop. Cancellation is
// cooperative: the context is observed only between iterations, never in the
// middle of dispatching a line.
func (e *Engine) loop(ctx context.Context) bool {
	if e.State() == core.StateClosing {
		return true
	}
	// A stale script error from a previous activation must not suppress the
	// first read of this one.
	e.setState(core.StateReady)

	e.mu.Lock()
	src, owned := e.inputSrc, e.inputOwned
	e.mu.Unlock()

	if src == nil {
		e.logger.Error("no default input source configured")
		return false
	}

	base := input.NewSource(src, owned)
	if err := e.stack.Push(base); err != nil {
		e.logger.Error("failed to push default input source", "error", err)
		return false
	}
	// Owned sources must be released on every exit path, including
	// cancellation and error unwind.
	defer e.stack.Unwind()

	if ctx.Err() != nil {
		return false
	}

	running := true
	for running {
		top, err := e.stack.Top()
		if err != nil {
			// The stack is never empty while the loop is running.
			e.logger.Error("input stack exhausted unexpectedly", "error", err)
			return false
		}

		// An interactive session doesn't exit on a failed line; recover
		// before the next read.
		if e.State() == core.StateScriptError && top.Interactive() {
			e.setState(core.StateReady)
		}

		// A script error raised by this iteration's dispatch must not pop
		// until the next iteration, after recovery had its chance.
		entryState := e.State()

		more := true
		if entryState != core.StateScriptError {
			more = e.readAndDispatch(ctx, top)
		}

		if e.State() == core.StateClosing {
			break
		}

		if !more || entryState == core.StateScriptError {
			// End of a source, or an unrecovered script error: unwind one
			// level to see whether an enclosing source should resume.
			running = e.stack.Pop()
		}

		// Cancellation checkpoint: never lands mid-dispatch.
		if ctx.Err() != nil {
			return false
		}
	}

	return e.State() != core.StateScriptError
}

// readAndDispatch reads one line from the top source and executes it. It
// returns false when the source is exhausted.
func (e *Engine) readAndDispatch(ctx context.Context, top *input.Source) bool {
	line, err := top.ReadLine()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			e.logger.Warn("input source read failed", "error", err)
		}
		return false
	}

	if err := e.dispatcher.Dispatch(ctx, line); err != nil {
		e.logger.Warn("line dispatch failed", "line", line, "error", err)
		e.setState(core.StateScriptError)
	}
	return true
}
