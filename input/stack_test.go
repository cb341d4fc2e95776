package input

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clishell/clishell/core"
)

// fakeSource implements core.LineSource and records Close calls.
type fakeSource struct {
	lines       []string
	pos         int
	interactive bool
	closeCount  int
	closeErr    error
}

func (f *fakeSource) ReadLine() (string, error) {
	if f.pos >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.pos]
	f.pos++
	return line, nil
}

func (f *fakeSource) IsInteractive() bool { return f.interactive }

func (f *fakeSource) Close() error {
	f.closeCount++
	return f.closeErr
}

func TestStackPopLastReturnsFalse(t *testing.T) {
	st := NewStack()
	require.NoError(t, st.Push(NewSource(&fakeSource{}, false)))

	assert.False(t, st.Pop())
	assert.Equal(t, 0, st.Len())
}

func TestStackPopNonLastLeavesPreviousActive(t *testing.T) {
	st := NewStack()
	outer := &fakeSource{interactive: true}
	inner := &fakeSource{}
	require.NoError(t, st.Push(NewSource(outer, false)))
	require.NoError(t, st.Push(NewSource(inner, true)))

	assert.True(t, st.Pop())

	top, err := st.Top()
	require.NoError(t, err)
	assert.True(t, top.Interactive())
}

func TestStackOwnedSourceClosedExactlyOnce(t *testing.T) {
	st := NewStack()
	fs := &fakeSource{}
	src := NewSource(fs, true)
	require.NoError(t, st.Push(src))

	st.Pop()
	assert.Equal(t, 1, fs.closeCount)

	// A second close attempt must not release the resource again.
	assert.NoError(t, src.Close())
	assert.Equal(t, 1, fs.closeCount)
}

func TestStackUnownedSourceNeverClosed(t *testing.T) {
	st := NewStack()
	fs := &fakeSource{}
	require.NoError(t, st.Push(NewSource(fs, false)))

	st.Pop()
	assert.Equal(t, 0, fs.closeCount)
}

func TestStackTopEmpty(t *testing.T) {
	st := NewStack()
	_, err := st.Top()
	assert.ErrorIs(t, err, core.ErrNoSource)
	assert.False(t, st.Pop())
}

func TestStackMaxDepth(t *testing.T) {
	st := NewStack(func(o *Options) { o.MaxDepth = 2 })
	require.NoError(t, st.Push(NewSource(&fakeSource{}, false)))
	require.NoError(t, st.Push(NewSource(&fakeSource{}, true)))

	err := st.Push(NewSource(&fakeSource{}, true))
	assert.ErrorIs(t, err, core.ErrMaxDepth)
	assert.Equal(t, 2, st.Len())
}

func TestStackUnwindClosesOwned(t *testing.T) {
	st := NewStack()
	base := &fakeSource{interactive: true}
	s1 := &fakeSource{}
	s2 := &fakeSource{}
	require.NoError(t, st.Push(NewSource(base, false)))
	require.NoError(t, st.Push(NewSource(s1, true)))
	require.NoError(t, st.Push(NewSource(s2, true)))

	st.Unwind()

	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 0, base.closeCount)
	assert.Equal(t, 1, s1.closeCount)
	assert.Equal(t, 1, s2.closeCount)
}
