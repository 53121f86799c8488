// Package node defines the unit of work (Node/Action contract) and its
// per-run outcome (ExecState/Output).
package node

import (
	"fmt"

	"github.com/dagrs-dev/dagrs/content"
)

// Outcome is the tri-state result of a node's run, written exactly once.
type Outcome int

const (
	// Pending means the node has not yet finished (or not yet started).
	Pending Outcome = iota
	// Success means the Action returned Out or ConditionResult.
	Success
	// Failure means the Action returned Err, or the task panicked.
	Failure
)

// String renders the Outcome for logs and diagnostics. Handwritten
// rather than go:generate'd stringer output since it is a single
// three-case switch.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// FailureKind distinguishes why an Output is Err, so the engine can tell
// an ordinary action failure from a panic without parsing strings.
type FailureKind int

const (
	// ActionError means the Action itself returned Output.Err.
	ActionError FailureKind = iota
	// Panicked means the node's task body recovered a panic.
	Panicked
)

// Output is the sum type an Action returns: a success payload, a failure
// with a kind and optional diagnostic payload, or (for conditional
// nodes) a branch decision that gates downstream execution.
type Output struct {
	succeeded   bool
	isCondition bool
	condition   bool
	kind        FailureKind
	payload     content.Content
}

// Out constructs a successful Output, optionally carrying payload.
func Out(payload content.Content) Output {
	return Output{succeeded: true, payload: payload}
}

// Err constructs a failed Output of the given kind, optionally carrying a
// diagnostic payload.
func Err(kind FailureKind, payload content.Content) Output {
	return Output{succeeded: false, kind: kind, payload: payload}
}

// ConditionResult constructs the success-with-branch-decision variant
// used by conditional nodes to gate downstream blocks.
func ConditionResult(ok bool) Output {
	return Output{succeeded: true, isCondition: true, condition: ok}
}

// IsSuccess reports whether this Output represents a successful run
// (including ConditionResult, which always succeeds as a run outcome —
// false only means "don't continue past this block").
func (o Output) IsSuccess() bool { return o.succeeded }

// IsCondition reports whether this Output carries a branch decision.
func (o Output) IsCondition() bool { return o.isCondition }

// Condition returns the branch decision. Only meaningful when
// IsCondition is true.
func (o Output) Condition() bool { return o.condition }

// FailureKind returns why a failed Output failed. Only meaningful when
// IsSuccess is false.
func (o Output) FailureKind() FailureKind { return o.kind }

// Payload returns the Output's optional Content, success or failure.
func (o Output) Payload() content.Content { return o.payload }
