// Package clishell provides a high-level façade over the session execution
// engine and its collaborators (config discovery, grammar loading, input
// sources & logging) enabling rapid construction of interactive command
// shells. Most applications interact with this package by:
//  1. Creating a Shell via New() (optionally overriding default collaborators)
//  2. Loading command definitions from the search path with LoadConfig
//  3. Running the session synchronously (Run) or on a worker (Spawn / SpawnAndWait)
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; applications typically supply their own dispatcher or builtin
// actions and a structured logger.
package clishell

import (
	"context"
	"fmt"
	"os"

	"github.com/clishell/clishell/config"
	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/engine"
	"github.com/clishell/clishell/grammar"
	"github.com/clishell/clishell/input"
	"github.com/clishell/clishell/logging"
	"github.com/clishell/clishell/readline"
)

// DefaultPrompt is shown by the default interactive input source.
const DefaultPrompt = "> "

// Options configures the Shell instance.
type Options struct {
	// SearchPath lists the directories scanned for command-definition
	// documents. Defaults to the CLISHELL_PATH environment variable or the
	// built-in default path.
	SearchPath []string

	// Extension is the suffix a discovered file must carry. Defaults to
	// config.DefaultExtension.
	Extension string

	// Prompt is used when the Shell creates its own interactive input.
	Prompt string

	// Input is the session's default input source. The caller owns it; the
	// Shell only closes input sources it opened itself. Defaults to an
	// interactive terminal source.
	Input core.LineSource

	// Dispatcher executes dispatched lines. Defaults to a grammar.Dispatcher
	// over the Shell's registry with the standard builtins registered.
	Dispatcher core.Dispatcher

	// Grammar registers discovered documents. Defaults to a grammar.XMLLoader
	// feeding the Shell's registry.
	Grammar core.GrammarLoader

	// MaxDepth limits script inclusion nesting. 0 disables the guard.
	MaxDepth int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Shell is the high-level façade aggregating the execution engine and its
// collaborators for one session.
type Shell struct {
	sessionID  string
	searchPath []string
	registry   *grammar.Registry
	loader     *config.Loader
	engine     *engine.Engine
	dispatcher core.Dispatcher
	logger     logging.Logger

	inputSrc  core.LineSource
	ownsInput bool
}

// New creates a new Shell with optional overrides. Any unset collaborator is
// initialized with the built-in implementation. New fails only when it has to
// open the default interactive input and the terminal is unavailable.
func New(optFns ...func(o *Options)) (*Shell, error) {
	opts := Options{
		Prompt:   DefaultPrompt,
		MaxDepth: input.DefaultMaxDepth,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SearchPath == nil {
		opts.SearchPath = config.ResolveSearchPath(os.Getenv)
	}

	s := &Shell{
		sessionID:  core.NewID(),
		searchPath: opts.SearchPath,
		registry:   grammar.NewRegistry(),
		logger:     opts.Logger,
	}

	grammarLoader := opts.Grammar
	if grammarLoader == nil {
		grammarLoader = grammar.NewXMLLoader(s.registry, func(o *grammar.XMLLoaderOptions) {
			o.Logger = opts.Logger
		})
	}
	s.loader = config.NewLoader(grammarLoader, func(o *config.Options) {
		if opts.Extension != "" {
			o.Extension = opts.Extension
		}
		o.Logger = opts.Logger
	})

	s.inputSrc = opts.Input
	if s.inputSrc == nil {
		term, err := readline.NewInteractive(opts.Prompt)
		if err != nil {
			return nil, fmt.Errorf("open interactive input: %w", err)
		}
		s.inputSrc = term
		s.ownsInput = true
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = grammar.NewDispatcher(s.registry, func(o *grammar.DispatcherOptions) {
			o.Builtins = s.standardBuiltins()
			o.Logger = opts.Logger
		})
	}

	s.dispatcher = dispatcher

	s.engine = engine.New(dispatcher, func(o *engine.Options) {
		o.Input = s.inputSrc
		o.MaxDepth = opts.MaxDepth
		o.Logger = opts.Logger
	})

	return s, nil
}

// standardBuiltins wires the builtin actions every grammar may reference:
// "close" ends the session and "source" includes a script file.
func (s *Shell) standardBuiltins() map[string]grammar.Action {
	return map[string]grammar.Action{
		"close": func(context.Context, []string) error {
			s.engine.Close()
			return nil
		},
		"source": func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("source: expected one script path, got %d arguments", len(args))
			}
			return s.engine.Include(args[0])
		},
	}
}

// RegisterBuiltin adds an application builtin action to the default
// dispatcher, making it available to <action builtin="..."/> references in
// loaded documents. It fails when a custom Dispatcher was supplied via
// Options, since the Shell cannot extend an arbitrary implementation.
func (s *Shell) RegisterBuiltin(name string, action grammar.Action) error {
	d, ok := s.dispatcher.(*grammar.Dispatcher)
	if !ok {
		return fmt.Errorf("cannot register builtin %q on custom dispatcher %T", name, s.dispatcher)
	}
	d.RegisterBuiltin(name, action)
	return nil
}

// SessionID returns the unique identifier of this session.
func (s *Shell) SessionID() string { return s.sessionID }

// Registry returns the command registry backing the default grammar
// collaborators.
func (s *Shell) Registry() *grammar.Registry { return s.registry }

// Engine exposes the underlying execution engine for advanced wiring, such
// as registering builtins that include scripts.
func (s *Shell) Engine() *engine.Engine { return s.engine }

// SearchPath returns the resolved search path used by LoadConfig.
func (s *Shell) SearchPath() []string { return s.searchPath }

// LoadConfig discovers command-definition documents across the search path
// and registers them into the grammar. Unreadable directories and malformed
// documents are skipped with a diagnostic.
func (s *Shell) LoadConfig(ctx context.Context) error {
	return s.loader.LoadAll(ctx, s.searchPath)
}

// Run executes the session in the calling goroutine. See engine.Engine.Run.
func (s *Shell) Run(ctx context.Context) bool { return s.engine.Run(ctx) }

// Spawn starts the session on a worker goroutine. See engine.Engine.Spawn.
func (s *Shell) Spawn(ctx context.Context) (*engine.Handle, error) { return s.engine.Spawn(ctx) }

// SpawnAndWait runs the session on a worker and blocks for its outcome.
func (s *Shell) SpawnAndWait(ctx context.Context) bool { return s.engine.SpawnAndWait(ctx) }

// RunFromFile opens the named file as the session input and runs it. See
// engine.Engine.RunFromFile.
func (s *Shell) RunFromFile(ctx context.Context, path string, async bool) bool {
	return s.engine.RunFromFile(ctx, path, async)
}

// Close requests session shutdown and releases the interactive input if the
// Shell opened it. Close is idempotent.
func (s *Shell) Close() error {
	s.engine.Close()
	if s.ownsInput {
		s.ownsInput = false
		return s.inputSrc.Close()
	}
	return nil
}
