package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clishell/clishell/core"
)

// recordingGrammar implements core.GrammarLoader and records every path it is
// handed, failing for paths listed in failOn.
type recordingGrammar struct {
	paths  []string
	failOn map[string]bool
}

var _ core.GrammarLoader = (*recordingGrammar)(nil)

func (g *recordingGrammar) LoadDocument(_ context.Context, path string) error {
	g.paths = append(g.paths, path)
	if g.failOn[filepath.Base(path)] {
		return errors.New("malformed document")
	}
	return nil
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<commands/>"), 0o644))
}

func TestLoadAllMatchesExtensionExactly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "foo.xml")
	writeFile(t, dir, "foo.xml.bak")
	writeFile(t, dir, "foo.XML")
	writeFile(t, dir, "bar.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xml"), 0o755))

	g := &recordingGrammar{}
	l := NewLoader(g)
	require.NoError(t, l.LoadAll(context.Background(), []string{dir}))

	assert.Equal(t, []string{filepath.Join(dir, "foo.xml")}, g.paths)
}

func TestLoadAllSkipsUnreadableDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml")

	g := &recordingGrammar{}
	l := NewLoader(g)
	require.NoError(t, l.LoadAll(context.Background(), []string{"/does/not/exist", dir}))

	// Discovery continued past the unreadable directory.
	assert.Equal(t, []string{filepath.Join(dir, "a.xml")}, g.paths)
}

func TestLoadAllContinuesPastLoadErrors(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, dir1, "bad.xml")
	writeFile(t, dir2, "good.xml")

	g := &recordingGrammar{failOn: map[string]bool{"bad.xml": true}}
	l := NewLoader(g)
	require.NoError(t, l.LoadAll(context.Background(), []string{dir1, dir2}))

	assert.Equal(t, []string{
		filepath.Join(dir1, "bad.xml"),
		filepath.Join(dir2, "good.xml"),
	}, g.paths)
}

func TestLoadAllDirectoryOrder(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFile(t, dir1, "one.xml")
	writeFile(t, dir2, "two.xml")

	g := &recordingGrammar{}
	l := NewLoader(g)
	require.NoError(t, l.LoadAll(context.Background(), []string{dir2, dir1}))

	assert.Equal(t, []string{
		filepath.Join(dir2, "two.xml"),
		filepath.Join(dir1, "one.xml"),
	}, g.paths)
}

func TestLoadAllCustomExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cmds.cfg")
	writeFile(t, dir, "cmds.xml")

	g := &recordingGrammar{}
	l := NewLoader(g, func(o *Options) { o.Extension = ".cfg" })
	require.NoError(t, l.LoadAll(context.Background(), []string{dir}))

	assert.Equal(t, []string{filepath.Join(dir, "cmds.cfg")}, g.paths)
}

func TestLoadAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &recordingGrammar{}
	l := NewLoader(g)
	err := l.LoadAll(ctx, []string{t.TempDir()})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.paths)
}
