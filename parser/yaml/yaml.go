// Package yaml implements the built-in parser.Parser: a YAML document
// rooted at a sentinel key (by default "dagrs"), each child a task with
// name/after/cmd fields. Parsing is two-pass: the first mints a NodeID
// per task and builds a key-to-id map, the second resolves each task's
// after list of textual precursor keys against it.
package yaml

import (
	"context"
	"fmt"

	goyaml "gopkg.in/yaml.v3"

	"github.com/dagrs-dev/dagrs/action/shell"
	"github.com/dagrs-dev/dagrs/configsrc"
	"github.com/dagrs-dev/dagrs/dag"
	"github.com/dagrs-dev/dagrs/id"
	"github.com/dagrs-dev/dagrs/node"
	"github.com/dagrs-dev/dagrs/parser"
)

// defaultRoot is the sentinel top-level key the document must open
// with.
const defaultRoot = "dagrs"

// Parser implements parser.Parser for the built-in YAML surface syntax.
type Parser struct {
	// Root overrides the sentinel top-level key. Empty means
	// defaultRoot.
	Root string

	alloc id.Allocator
}

var _ parser.Parser = (*Parser)(nil)

// New returns a Parser using the default sentinel root key.
func New() *Parser { return &Parser{} }

func (p *Parser) root() string {
	if p.Root == "" {
		return defaultRoot
	}
	return p.Root
}

// ParseTasks implements parser.Parser.
func (p *Parser) ParseTasks(ctx context.Context, src configsrc.Source, actions map[string]node.Action) ([]node.Node, []dag.Edge, error) {
	raw, err := src.Load(ctx)
	if err != nil {
		if err == configsrc.ErrNotFound {
			return nil, nil, parser.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", parser.ErrFileNotFound, err)
	}

	var doc goyaml.Node
	if err := goyaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", parser.ErrIllegalContent, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil, parser.ErrEmpty
	}

	top := doc.Content[0]
	if top.Kind != goyaml.MappingNode {
		return nil, nil, parser.ErrStartWord
	}

	tasksNode, err := mappingValue(top, p.root())
	if err != nil {
		return nil, nil, parser.ErrStartWord
	}
	if tasksNode == nil || tasksNode.Kind != goyaml.MappingNode {
		return nil, nil, parser.ErrStartWord
	}
	if len(tasksNode.Content) == 0 {
		return nil, nil, parser.ErrEmpty
	}

	type parsed struct {
		key   string
		after []string
		n     node.Node
	}

	var order []parsed
	byKey := make(map[string]id.NodeID)

	for i := 0; i+1 < len(tasksNode.Content); i += 2 {
		key := tasksNode.Content[i].Value
		body := tasksNode.Content[i+1]

		name, err := scalarField(body, "name")
		if err != nil || name == "" {
			return nil, nil, &parser.NoNameAttrError{Key: key}
		}

		after, err := listField(body, "after")
		if err != nil {
			return nil, nil, fmt.Errorf("%w: task %q: %v", parser.ErrIllegalContent, key, err)
		}

		nid, err := p.alloc.Alloc()
		if err != nil {
			return nil, nil, err
		}

		var action node.Action
		if a, ok := actions[key]; ok {
			action = a
		} else {
			cmd, err := scalarField(body, "cmd")
			if err != nil || cmd == "" {
				return nil, nil, &parser.NoScriptAttrError{Key: key}
			}
			action = shell.Command{Script: cmd}
		}

		byKey[key] = nid
		order = append(order, parsed{
			key:   key,
			after: after,
			n:     node.NewBase(nid, name, action),
		})
	}

	nodes := make([]node.Node, 0, len(order))
	var edges []dag.Edge
	for _, p := range order {
		nodes = append(nodes, p.n)
		for _, pre := range p.after {
			preID, ok := byKey[pre]
			if !ok {
				return nil, nil, &parser.NotFoundPrecursorError{Key: p.key, Precursor: pre}
			}
			edges = append(edges, dag.Edge{From: preID, To: p.n.ID()})
		}
	}

	return nodes, edges, nil
}

func mappingValue(m *goyaml.Node, key string) (*goyaml.Node, error) {
	if m.Kind != goyaml.MappingNode {
		return nil, fmt.Errorf("yaml: not a mapping")
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1], nil
		}
	}
	return nil, nil
}

func scalarField(m *goyaml.Node, key string) (string, error) {
	v, err := mappingValue(m, key)
	if err != nil || v == nil {
		return "", err
	}
	if v.Kind != goyaml.ScalarNode {
		return "", fmt.Errorf("yaml: field %q is not a scalar", key)
	}
	return v.Value, nil
}

func listField(m *goyaml.Node, key string) ([]string, error) {
	v, err := mappingValue(m, key)
	if err != nil || v == nil {
		return nil, err
	}
	if v.Kind != goyaml.SequenceNode {
		return nil, fmt.Errorf("yaml: field %q is not a list", key)
	}
	out := make([]string, 0, len(v.Content))
	for _, item := range v.Content {
		out = append(out, item.Value)
	}
	return out, nil
}
