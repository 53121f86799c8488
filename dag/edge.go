package dag

import "github.com/dagrs-dev/dagrs/id"

// Edge is a precedence edge from one node to another, the shape a
// Parser hands back to its caller before the edges are wired into a
// Graph with AddEdge.
type Edge struct {
	From id.NodeID
	To   id.NodeID
}
