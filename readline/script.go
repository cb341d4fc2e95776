package readline

import (
	"bufio"
	"io"
	"os"

	"github.com/clishell/clishell/core"
)

// Script is a non-interactive core.LineSource reading complete lines from a
// stream. A final line without a trailing newline is still delivered.
type Script struct {
	scanner *bufio.Scanner
	closer  io.Closer
	closed  bool
}

var _ core.LineSource = (*Script)(nil)

// NewScript wraps a caller-owned reader. Close is a no-op; the caller remains
// responsible for the reader's lifetime.
func NewScript(r io.Reader) *Script {
	return &Script{scanner: bufio.NewScanner(r)}
}

// OpenScript opens the named file as a script source. The file is owned by
// the returned source and released by Close.
func OpenScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Script{scanner: bufio.NewScanner(f), closer: f}, nil
}

// ReadLine returns the next line without its terminator, or io.EOF when the
// stream is exhausted.
func (s *Script) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// IsInteractive always reports false.
func (s *Script) IsInteractive() bool { return false }

// Close releases the underlying file, if any. It is idempotent.
func (s *Script) Close() error {
	if s.closer == nil || s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}
