package dag

import (
	"errors"
	"fmt"

	"github.com/dagrs-dev/dagrs/id"
)

// Sentinel graph-level errors.
var (
	// ErrGraphLoopDetected is returned by Start/StartWithPool when the
	// node set and edges contain a directed cycle.
	ErrGraphLoopDetected = errors.New("dag: cycle detected")

	// ErrGraphNotActive is returned when Start is called on a graph
	// that already ran to completion without an intervening Reset.
	ErrGraphNotActive = errors.New("dag: graph is not active, call Reset first")

	// ErrRuntimeCreationFailed is returned by StartWithPool when it
	// cannot construct its bounded concurrency pool (size <= 0).
	ErrRuntimeCreationFailed = errors.New("dag: failed to create execution pool")

	// ErrNodeNotFound is returned when an operation names an id that is
	// not registered in the graph.
	ErrNodeNotFound = errors.New("dag: node not found")

	// ErrSelfLoop is returned by AddEdge when from == to.
	ErrSelfLoop = errors.New("dag: self-loop edge rejected")
)

// ExecutionFailedError wraps a node whose Action returned a failing
// Output.
type ExecutionFailedError struct {
	Node   id.NodeID
	Name   string
	Reason error
}

func (e *ExecutionFailedError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("dag: node %q (%d) failed: %v", e.Name, e.Node, e.Reason)
	}
	return fmt.Sprintf("dag: node %q (%d) failed", e.Name, e.Node)
}

func (e *ExecutionFailedError) Unwrap() error { return e.Reason }

// PanicOccurredError wraps a node whose task body recovered a panic.
type PanicOccurredError struct {
	Node  id.NodeID
	Name  string
	Value any
}

func (e *PanicOccurredError) Error() string {
	return fmt.Sprintf("dag: node %q (%d) panicked: %v", e.Name, e.Node, e.Value)
}

// MultipleErrors wraps more than one node-level failure from a single
// run. It implements Unwrap() []error so errors.Is/As can still reach
// any individual failure.
type MultipleErrors struct {
	Errors []error
}

func (e *MultipleErrors) Error() string {
	return fmt.Sprintf("dag: %d node(s) failed: %v", len(e.Errors), e.Errors)
}

func (e *MultipleErrors) Unwrap() []error { return e.Errors }

// combineErrors applies §4.6's result policy: nil if empty, the single
// error if there is exactly one, MultipleErrors otherwise.
func combineErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &MultipleErrors{Errors: errs}
	}
}
