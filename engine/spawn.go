package engine

import (
	"context"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/readline"
)

// Handle is the lifecycle handle for an asynchronous activation. It is
// join-able exactly once meaningfully; Join after completion returns the same
// result. Cancellation is requested through Cancel (or the context passed to
// Spawn) and honored cooperatively at the loop's checkpoints, never in the
// middle of dispatching a line.
type Handle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	result bool
}

// ID returns the unique identifier of this activation.
func (h *Handle) ID() string { return h.id }

// Cancel requests cooperative cancellation. The worker observes it at the
// next checkpoint, unwinds (closing owned sources) and exits.
func (h *Handle) Cancel() { h.cancel() }

// Join blocks until the worker has fully unwound, then returns the same
// boolean outcome a synchronous run would have produced.
func (h *Handle) Join() bool {
	<-h.done
	return h.result
}

// Spawn starts the read-execute loop on a new goroutine and returns
// immediately. It fails with core.ErrAlreadyRunning when an activation is
// already in flight; that failure is distinguishable from a false run
// outcome.
func (e *Engine) Spawn(ctx context.Context) (*Handle, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:     core.NewID(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	e.logger.Debug("spawning session worker", "handle_id", h.id)

	go func() {
		defer close(h.done)
		defer cancel()
		defer e.release()
		h.result = e.loop(ctx)
	}()

	return h, nil
}

// SpawnAndWait is a convenience composition of Spawn and Join for callers
// that want the boolean result without managing the handle.
func (e *Engine) SpawnAndWait(ctx context.Context) bool {
	h, err := e.Spawn(ctx)
	if err != nil {
		e.logger.Warn("spawn failed", "error", err)
		return false
	}
	return h.Join()
}

// RunFromFile opens the named file as the session's default input source for
// the duration of the call, then runs the loop synchronously or on a worker.
// The previously configured input is restored on return so a follow-up Run
// does not read from the exhausted script. The file is closed on every exit
// path: success, script error, and cancellation. A file that cannot be opened
// fails immediately without touching session state.
func (e *Engine) RunFromFile(ctx context.Context, path string, async bool) bool {
	script, err := readline.OpenScript(path)
	if err != nil {
		e.logger.Warn("cannot open script file", "path", path, "error", err)
		return false
	}
	// The loop closes the script when its stack entry is popped or unwound;
	// this covers the path where the loop never pushes it (Closing no-op).
	defer script.Close()

	e.mu.Lock()
	prevSrc, prevOwned := e.inputSrc, e.inputOwned
	e.inputSrc, e.inputOwned = script, true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inputSrc, e.inputOwned = prevSrc, prevOwned
		e.mu.Unlock()
	}()

	if async {
		return e.SpawnAndWait(ctx)
	}
	return e.Run(ctx)
}
