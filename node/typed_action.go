package node

import (
	"context"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/id"
)

// TypedAction lets user code declare a fixed output payload type while
// still satisfying Action, wrapping the raw Content round-trip so the
// rest of the engine stays non-generic. Implementations should prefer
// it to touching InChannels/OutChannels' untyped Content directly.
type TypedAction[Out any] struct {
	// Compute does the node's work given its typed inputs (read via
	// TypedInput, below) and returns either a payload or an error.
	Compute func(ctx context.Context, in *channel.InChannels, outc *channel.OutChannels, e *env.EnvVar) (Out, error)
}

// Run implements Action by invoking Compute and wrapping its result.
func (t TypedAction[Out]) Run(ctx context.Context, in *channel.InChannels, outc *channel.OutChannels, e *env.EnvVar) Output {
	v, err := t.Compute(ctx, in, outc, e)
	if err != nil {
		return Err(ActionError, content.New(err.Error()))
	}
	return outFromValue(v)
}

func outFromValue[T any](v T) Output {
	return Out(content.New(v))
}

// TypedInput reads and type-checks the next message from peer as In,
// a convenience wrapper around InChannels.RecvFrom for TypedAction
// bodies that know their upstream payload type.
func TypedInput[In any](ctx context.Context, in *channel.InChannels, peer id.NodeID) (In, error) {
	var zero In
	c, err := in.RecvFrom(ctx, peer)
	if err != nil {
		return zero, err
	}
	v, ok := content.Get[In](c)
	if !ok {
		return zero, errWrongType(peer)
	}
	return v, nil
}

type wrongTypeError struct{ peer id.NodeID }

func (e wrongTypeError) Error() string {
	return "node: unexpected payload type received from peer"
}

func errWrongType(peer id.NodeID) error { return wrongTypeError{peer: peer} }
