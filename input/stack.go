package input

import (
	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/logging"
)

// DefaultMaxDepth bounds script inclusion nesting. Recursive inclusion of a
// script by itself would otherwise grow the stack without limit.
const DefaultMaxDepth = 64

// Options holds configuration overrides passed to NewStack.
type Options struct {
	// MaxDepth limits how many sources may be stacked. 0 disables the guard.
	MaxDepth int
	// Logger receives source lifecycle diagnostics.
	Logger logging.Logger
}

// Stack is a last-in-first-out stack of input sources. The top entry is the
// active read source. The stack is mutated only by the execution engine:
// pushed on script inclusion, popped on end-of-stream or script error.
type Stack struct {
	sources  []*Source
	maxDepth int
	logger   logging.Logger
}

// NewStack constructs an empty input stack with optional overrides.
func NewStack(optFns ...func(o *Options)) *Stack {
	opts := Options{
		MaxDepth: DefaultMaxDepth,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Stack{maxDepth: opts.MaxDepth, logger: opts.Logger}
}

// Push makes src the active read source. Subsequent reads draw from it until
// it is exhausted or popped. Push fails with core.ErrMaxDepth when the
// configured depth limit would be exceeded; the rejected source is not closed.
func (st *Stack) Push(src *Source) error {
	if st.maxDepth > 0 && len(st.sources) >= st.maxDepth {
		return core.ErrMaxDepth
	}
	st.sources = append(st.sources, src)
	st.logger.Debug("input source pushed", "depth", len(st.sources), "interactive", src.Interactive())
	return nil
}

// Pop removes the top source, closing its underlying resource iff it is
// owned. It returns false exactly when the stack is empty after the pop,
// signalling that the session should end; true means an outer source remains
// to resume reading from.
func (st *Stack) Pop() bool {
	if len(st.sources) == 0 {
		return false
	}
	top := st.sources[len(st.sources)-1]
	st.sources = st.sources[:len(st.sources)-1]
	if err := top.Close(); err != nil {
		st.logger.Warn("failed to close input source", "error", err)
	}
	st.logger.Debug("input source popped", "depth", len(st.sources))
	return len(st.sources) > 0
}

// Top returns the currently active source, or core.ErrNoSource when the stack
// is empty.
func (st *Stack) Top() (*Source, error) {
	if len(st.sources) == 0 {
		return nil, core.ErrNoSource
	}
	return st.sources[len(st.sources)-1], nil
}

// Len returns the current stack depth.
func (st *Stack) Len() int { return len(st.sources) }

// Unwind pops every remaining source, releasing owned resources. It is used
// on teardown and cancellation so no exit path leaks an open script.
func (st *Stack) Unwind() {
	for len(st.sources) > 0 {
		st.Pop()
	}
}
