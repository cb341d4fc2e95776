package clishell

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/readline"
)

func writeConfigDir(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands.xml"), []byte(doc), 0o644))
	return dir
}

func TestShellLoadConfigAndRun(t *testing.T) {
	dir := writeConfigDir(t, `<commands>
  <command name="greet" help="Say hello">
    <action builtin="greet"/>
  </command>
  <command name="close" help="End the session">
    <action builtin="close"/>
  </command>
</commands>`)

	sh, err := New(func(o *Options) {
		o.SearchPath = []string{dir}
		o.Input = readline.NewScript(strings.NewReader("greet\nclose\nnever\n"))
	})
	require.NoError(t, err)

	var greeted int
	require.NoError(t, sh.RegisterBuiltin("greet", func(context.Context, []string) error {
		greeted++
		return nil
	}))

	require.NoError(t, sh.LoadConfig(context.Background()))
	assert.Equal(t, 2, sh.Registry().Len())

	assert.True(t, sh.Run(context.Background()))
	assert.Equal(t, 1, greeted)
}

func TestShellSourceBuiltinIncludesScript(t *testing.T) {
	scriptPath := filepath.Join(t.TempDir(), "setup.script")
	require.NoError(t, os.WriteFile(scriptPath, []byte("ping\n"), 0o644))

	dir := writeConfigDir(t, `<commands>
  <command name="source" help="Run a script">
    <param name="path" help="Script file"/>
    <action builtin="source"/>
  </command>
  <command name="ping" help="No-op"/>
</commands>`)

	sh, err := New(func(o *Options) {
		o.SearchPath = []string{dir}
		o.Input = readline.NewScript(strings.NewReader("source " + scriptPath + "\n"))
	})
	require.NoError(t, err)

	require.NoError(t, sh.LoadConfig(context.Background()))
	assert.True(t, sh.Run(context.Background()))
}

func TestShellSourceBuiltinArgCount(t *testing.T) {
	dir := writeConfigDir(t, `<commands>
  <command name="source"><action builtin="source"/></command>
</commands>`)

	sh, err := New(func(o *Options) {
		o.SearchPath = []string{dir}
		o.Input = readline.NewScript(strings.NewReader("source\n"))
	})
	require.NoError(t, err)

	require.NoError(t, sh.LoadConfig(context.Background()))
	// The lone failing line came from a non-interactive source, so the run
	// reports failure.
	assert.False(t, sh.Run(context.Background()))
}

func TestShellRunFromFile(t *testing.T) {
	dir := writeConfigDir(t, `<commands>
  <command name="ping"/>
</commands>`)
	scriptPath := filepath.Join(t.TempDir(), "batch.script")
	require.NoError(t, os.WriteFile(scriptPath, []byte("ping\nping\n"), 0o644))

	sh, err := New(func(o *Options) {
		o.SearchPath = []string{dir}
		o.Input = readline.NewScript(strings.NewReader(""))
	})
	require.NoError(t, err)

	require.NoError(t, sh.LoadConfig(context.Background()))
	assert.True(t, sh.RunFromFile(context.Background(), scriptPath, false))
}

func TestShellSpawnAndWait(t *testing.T) {
	dir := writeConfigDir(t, `<commands><command name="ping"/></commands>`)

	sh, err := New(func(o *Options) {
		o.SearchPath = []string{dir}
		o.Input = readline.NewScript(strings.NewReader("ping\n"))
	})
	require.NoError(t, err)

	require.NoError(t, sh.LoadConfig(context.Background()))
	assert.True(t, sh.SpawnAndWait(context.Background()))
}

func TestShellCloseWithCallerOwnedInput(t *testing.T) {
	src := readline.NewScript(strings.NewReader(""))
	sh, err := New(func(o *Options) {
		o.SearchPath = []string{t.TempDir()}
		o.Input = src
	})
	require.NoError(t, err)

	require.NoError(t, sh.Close())
	require.NoError(t, sh.Close())

	// The caller-owned source is untouched and still readable to EOF.
	_, rerr := src.ReadLine()
	assert.ErrorIs(t, rerr, io.EOF)
}

// staticDispatcher accepts every line.
type staticDispatcher struct{}

func (staticDispatcher) Dispatch(context.Context, string) error { return nil }

var _ core.Dispatcher = staticDispatcher{}

func TestShellRegisterBuiltinRejectsCustomDispatcher(t *testing.T) {
	sh, err := New(func(o *Options) {
		o.SearchPath = []string{t.TempDir()}
		o.Input = readline.NewScript(strings.NewReader(""))
		o.Dispatcher = staticDispatcher{}
	})
	require.NoError(t, err)

	err = sh.RegisterBuiltin("noop", func(context.Context, []string) error { return nil })
	assert.Error(t, err)
}

func TestShellSessionID(t *testing.T) {
	a, err := New(func(o *Options) {
		o.SearchPath = []string{t.TempDir()}
		o.Input = readline.NewScript(strings.NewReader(""))
	})
	require.NoError(t, err)
	b, err := New(func(o *Options) {
		o.SearchPath = []string{t.TempDir()}
		o.Input = readline.NewScript(strings.NewReader(""))
	})
	require.NoError(t, err)

	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}
