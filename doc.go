// Package dagrs runs declarative task graphs to completion.
//
// A graph is a set of nodes wired by directed edges; each edge is both
// a channel (for passing content downstream) and a precedence
// dependency (a node waits for all its direct predecessors before it
// runs). Nodes execute concurrently, one goroutine per node, topologically
// ordered and partitioned into blocks at each conditional node so that a
// negative condition result aborts every block launched after it without
// ever starting the goroutines for those blocks.
//
// # Quick start
//
//	go get github.com/dagrs-dev/dagrs
//
// Building and running a graph directly:
//
//	package main
//
//	import (
//		"context"
//
//		"github.com/dagrs-dev/dagrs/action/shell"
//		"github.com/dagrs-dev/dagrs/dag"
//		"github.com/dagrs-dev/dagrs/id"
//		"github.com/dagrs-dev/dagrs/node"
//	)
//
//	func main() {
//		var alloc id.Allocator
//		aID, _ := alloc.Alloc()
//		bID, _ := alloc.Alloc()
//
//		a := node.NewBase(aID, "fetch", shell.Command{Script: "echo hi"})
//		b := node.NewBase(bID, "print", shell.Command{Script: "cat"})
//
//		g := dag.New()
//		g.AddNode(a)
//		g.AddNode(b)
//		g.AddEdge(aID, bID)
//
//		g.Start(context.Background())
//	}
//
// # Package layout
//
// id/
// Monotonic NodeID allocation.
//
// content/
// Type-erased payload container (Put[T]/Get[T] generics over reflect.Type).
//
// env/
// Shared, freeze-once key/value environment passed to every node.
//
// channel/
// Per-edge channel fabric: a bounded FIFO that upgrades atomically to a
// bounded broadcast the moment a second consumer registers on the same
// producer.
//
// node/
// Node, Action and ExecState: the unit of work, the function it runs,
// and the completion-permit (closed exactly once) that downstream nodes
// wait on.
//
// dag/
// Graph: topological validation with conditional-node block
// partitioning, cycle detection, bounded and unbounded concurrent
// execution, panic confinement, and multi-error aggregation.
//
// configsrc/
// Where a graph document's bytes come from: a local file, a literal byte
// string, or a row in Redis, Postgres or SQLite.
//
// parser/
// Parser interface and format registry; parser/yaml is the built-in
// surface syntax.
//
// action/shell, action/script
// Built-in Actions: running a shell command, and running a Lua script.
//
// dlog/
// The logging seam used throughout the above: a small printf-style
// Logger interface with a stdlib-backed and a golog-backed implementation.
//
// cmd/dagrs/
// A CLI that parses a graph document and runs it to completion.
package dagrs // import "github.com/dagrs-dev/dagrs"
