package grammar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/logging"
)

// FallbackFunc handles a matched command that names no builtin. It receives
// the definition (including its raw action text) and the remaining arguments.
type FallbackFunc func(ctx context.Context, def *Definition, args []string) error

// DispatcherOptions holds configuration overrides passed to NewDispatcher.
type DispatcherOptions struct {
	// Builtins maps builtin names referenced by <action builtin="..."/> to
	// their implementations.
	Builtins map[string]Action
	// Fallback executes commands without a builtin. Nil treats such commands
	// as successful no-ops.
	Fallback FallbackFunc
	// Logger receives dispatch diagnostics.
	Logger logging.Logger
}

// Dispatcher is a core.Dispatcher executing lines against a Registry.
//
// A line is tokenized on whitespace and matched against the longest
// registered command prefix, so multi-word commands like "show version" work
// alongside single-word ones. Blank lines succeed without dispatching.
type Dispatcher struct {
	registry *Registry
	builtins map[string]Action
	fallback FallbackFunc
	logger   logging.Logger
}

var _ core.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher constructs a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Dispatcher{
		registry: registry,
		builtins: opts.Builtins,
		fallback: opts.Fallback,
		logger:   opts.Logger,
	}
}

// RegisterBuiltin adds (or replaces) a builtin action.
func (d *Dispatcher) RegisterBuiltin(name string, action Action) {
	if d.builtins == nil {
		d.builtins = make(map[string]Action)
	}
	d.builtins[name] = action
}

// Dispatch executes one complete line. A nil return marks the line as
// successful; any error moves the session into the script-error state.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	def, args, ok := d.match(fields)
	if !ok {
		if suggestion := d.suggest(fields[0]); suggestion != "" {
			return fmt.Errorf("unknown command %q (closest match: %q)", fields[0], suggestion)
		}
		return fmt.Errorf("unknown command %q", fields[0])
	}

	d.logger.Debug("dispatching command", "name", def.Name, "args", len(args))

	if def.Builtin != "" {
		action, ok := d.builtins[def.Builtin]
		if !ok {
			return fmt.Errorf("command %q references unknown builtin %q", def.Name, def.Builtin)
		}
		return action(ctx, args)
	}
	if d.fallback != nil {
		return d.fallback(ctx, def, args)
	}
	return nil
}

// match finds the longest registered command prefix of the tokenized line.
func (d *Dispatcher) match(fields []string) (*Definition, []string, bool) {
	for n := len(fields); n > 0; n-- {
		name := strings.Join(fields[:n], " ")
		if def, ok := d.registry.Lookup(name); ok {
			return def, fields[n:], true
		}
	}
	return nil, nil, false
}

// suggest returns the closest registered command name to the unknown token,
// or the empty string when nothing ranks.
func (d *Dispatcher) suggest(token string) string {
	ranks := fuzzy.RankFindFold(token, d.registry.Names())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
