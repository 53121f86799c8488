// Package parser defines the contract for turning a declarative graph
// document into nodes and precedence edges, independent of any
// particular surface syntax.
package parser

import (
	"context"

	"github.com/dagrs-dev/dagrs/configsrc"
	"github.com/dagrs-dev/dagrs/dag"
	"github.com/dagrs-dev/dagrs/node"
)

// Parser turns the document fetched from src into nodes and the
// precedence edges between them. actions supplies user-constructed
// Actions keyed by the document's task key; any task key not present in
// actions must carry enough information in the document itself (e.g. a
// shell command) for the parser to build a default Action.
type Parser interface {
	ParseTasks(ctx context.Context, src configsrc.Source, actions map[string]node.Action) ([]node.Node, []dag.Edge, error)
}

// Registry maps a format tag (e.g. "yaml") to the Parser that handles
// it, so an alternate surface syntax can be registered without the
// engine or CLI needing to know about it ahead of time.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register associates format with p, overwriting any previous
// registration for the same tag.
func (r *Registry) Register(format string, p Parser) {
	r.parsers[format] = p
}

// Lookup returns the Parser registered for format, if any.
func (r *Registry) Lookup(format string) (Parser, bool) {
	p, ok := r.parsers[format]
	return p, ok
}
