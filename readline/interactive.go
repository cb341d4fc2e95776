package readline

import (
	"errors"
	"io"

	"github.com/chzyer/readline"

	"github.com/clishell/clishell/core"
)

// Interactive is a core.LineSource backed by a readline instance. Line
// editing, history and echoing are handled by the underlying library.
type Interactive struct {
	rl *readline.Instance
}

var _ core.LineSource = (*Interactive)(nil)

// NewInteractive opens an interactive line source on the calling terminal.
func NewInteractive(prompt string) (*Interactive, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	return &Interactive{rl: rl}, nil
}

// NewInteractiveEx opens an interactive line source with a full readline
// configuration, for callers that need history files or custom streams.
func NewInteractiveEx(cfg *readline.Config) (*Interactive, error) {
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &Interactive{rl: rl}, nil
}

// ReadLine blocks until the user enters a line. Ctrl-D (end of input) is
// reported as io.EOF. Ctrl-C discards any partially entered line and yields
// an empty line; on an empty line it ends the session like Ctrl-D.
func (i *Interactive) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) > 0 {
				return "", nil
			}
			return "", io.EOF
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	return line, nil
}

// IsInteractive always reports true.
func (i *Interactive) IsInteractive() bool { return true }

// SetPrompt changes the prompt shown before each read.
func (i *Interactive) SetPrompt(prompt string) { i.rl.SetPrompt(prompt) }

// Close releases the terminal.
func (i *Interactive) Close() error { return i.rl.Close() }
