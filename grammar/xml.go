package grammar

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/clishell/clishell/core"
	"github.com/clishell/clishell/logging"
)

// xmlDocument mirrors the on-disk command-definition format:
//
//	<commands>
//	  <command name="show version" help="Display version information">
//	    <param name="detail" help="Verbosity level"/>
//	    <action builtin="version"/>
//	  </command>
//	</commands>
type xmlDocument struct {
	XMLName  xml.Name     `xml:"commands"`
	Commands []xmlCommand `xml:"command"`
}

type xmlCommand struct {
	Name   string     `xml:"name,attr"`
	Help   string     `xml:"help,attr"`
	Params []xmlParam `xml:"param"`
	Action *xmlAction `xml:"action"`
}

type xmlParam struct {
	Name string `xml:"name,attr"`
	Help string `xml:"help,attr"`
}

type xmlAction struct {
	Builtin string `xml:"builtin,attr"`
	Text    string `xml:",chardata"`
}

// XMLLoaderOptions holds configuration overrides passed to NewXMLLoader.
type XMLLoaderOptions struct {
	// Logger receives per-document diagnostics.
	Logger logging.Logger
}

// XMLLoader is a core.GrammarLoader that parses XML command-definition
// documents into a Registry.
type XMLLoader struct {
	registry *Registry
	logger   logging.Logger
}

var _ core.GrammarLoader = (*XMLLoader)(nil)

// NewXMLLoader constructs an XMLLoader feeding the given registry.
func NewXMLLoader(registry *Registry, optFns ...func(o *XMLLoaderOptions)) *XMLLoader {
	opts := XMLLoaderOptions{Logger: logging.NoOpLogger{}}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &XMLLoader{registry: registry, logger: opts.Logger}
}

// LoadDocument parses the document at path and registers every valid command
// it defines. A command without a name invalidates only that command; a
// document that does not parse invalidates only that document.
func (l *XMLLoader) LoadDocument(_ context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read command definitions: %w", err)
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse command definitions %s: %w", path, err)
	}

	for _, cmd := range doc.Commands {
		if strings.TrimSpace(cmd.Name) == "" {
			l.logger.Warn("skipping command without name", "path", path)
			continue
		}
		def := &Definition{
			Name: cmd.Name,
			Help: cmd.Help,
		}
		for _, p := range cmd.Params {
			def.Params = append(def.Params, Param{Name: p.Name, Help: p.Help})
		}
		if cmd.Action != nil {
			def.Builtin = cmd.Action.Builtin
			def.ActionText = strings.TrimSpace(cmd.Action.Text)
		}
		l.registry.Register(def)
		l.logger.Debug("registered command", "name", def.Name, "path", path)
	}

	return nil
}
