package node

import (
	"context"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/id"
)

// Action is the user-visible plug-in point: the body of a node's work.
// Run receives a mutable view of its inbound channels, an immutable view
// of its outbound channels, and the run's shared environment, and
// returns an Output. Run may itself suspend (channel ops, I/O); the
// engine schedules it as one goroutine per node.
type Action interface {
	Run(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) Output
}

// ActionFunc adapts a plain function to the Action interface, the way
// http.HandlerFunc adapts a function to http.Handler.
type ActionFunc func(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) Output

// Run implements Action.
func (f ActionFunc) Run(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) Output {
	return f(ctx, in, out, e)
}

// NopAction is a default Action that does nothing and succeeds with no
// payload.
type NopAction struct{}

// Run implements Action.
func (NopAction) Run(context.Context, *channel.InChannels, *channel.OutChannels, *env.EnvVar) Output {
	return Out(content.Content{})
}

// Node is the capability set a graph node exposes: identity, its channel
// collections, whether it is a conditional node, and its run entry
// point.
type Node interface {
	ID() id.NodeID
	Name() string
	InChannels() *channel.InChannels
	OutChannels() *channel.OutChannels
	IsConditional() bool
	Run(ctx context.Context, e *env.EnvVar) Output
}

// Base furnishes the stock fields and trivial methods every Node
// implementation needs: embed Base, set Action, and IsConditional() is
// the only method a user type commonly still overrides (to report
// true).
type Base struct {
	id          id.NodeID
	name        string
	in          *channel.InChannels
	out         *channel.OutChannels
	Action      Action
	Conditional bool
}

// NewBase constructs a Base with fresh, empty channel collections.
func NewBase(nodeID id.NodeID, name string, action Action) *Base {
	return &Base{
		id:     nodeID,
		name:   name,
		in:     channel.NewInChannels(),
		out:    channel.NewOutChannels(),
		Action: action,
	}
}

// ID implements Node.
func (b *Base) ID() id.NodeID { return b.id }

// Name implements Node.
func (b *Base) Name() string { return b.name }

// InChannels implements Node.
func (b *Base) InChannels() *channel.InChannels { return b.in }

// OutChannels implements Node.
func (b *Base) OutChannels() *channel.OutChannels { return b.out }

// IsConditional implements Node.
func (b *Base) IsConditional() bool { return b.Conditional }

// Run implements Node by delegating to the embedded Action. Types that
// embed Base get a working Node for free as long as Action is set.
func (b *Base) Run(ctx context.Context, e *env.EnvVar) Output {
	if b.Action == nil {
		return NopAction{}.Run(ctx, b.in, b.out, e)
	}
	return b.Action.Run(ctx, b.in, b.out, e)
}

// NewDefaultNode returns a Node carrying NopAction, useful as a
// placeholder or as END-of-chain marker in tests.
func NewDefaultNode(nodeID id.NodeID, name string) *Base {
	return NewBase(nodeID, name, NopAction{})
}
