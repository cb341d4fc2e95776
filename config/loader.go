package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/logging"
)

// Options holds configuration overrides passed to NewLoader.
type Options struct {
	// Extension is the exact, case-sensitive suffix a file must carry to be
	// loaded. Defaults to DefaultExtension.
	Extension string
	// Logger receives discovery diagnostics.
	Logger logging.Logger
}

// Loader discovers command-definition documents across a search path and
// feeds each one to a core.GrammarLoader. Discovery is collect-and-continue:
// an unreadable directory or a malformed document is reported as a diagnostic
// and skipped, never aborting the scan.
type Loader struct {
	grammar   core.GrammarLoader
	extension string
	logger    logging.Logger
}

// NewLoader constructs a Loader with optional overrides.
func NewLoader(grammar core.GrammarLoader, optFns ...func(o *Options)) *Loader {
	opts := Options{
		Extension: DefaultExtension,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Loader{grammar: grammar, extension: opts.Extension, logger: opts.Logger}
}

// LoadAll scans each directory in order and passes every matching file to the
// grammar loader. Directories are visited in search-path order; order within
// a directory is whatever the underlying enumeration yields, and callers must
// not depend on it. The only terminal error is context cancellation between
// directories.
func (l *Loader) LoadAll(ctx context.Context, dirs []string) error {
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.loadDir(ctx, dir)
	}
	return nil
}

func (l *Loader) loadDir(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// A missing or unreadable directory is not fatal to the session.
		l.logger.Warn("skipping unreadable config directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.extension) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := l.grammar.LoadDocument(ctx, path); err != nil {
			// The offending grammar source is simply not registered.
			l.logger.Warn("failed to load command definitions", "path", path, "error", err)
			continue
		}
		l.logger.Debug("loaded command definitions", "path", path)
	}
}
