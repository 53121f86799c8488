package node_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/node"
)

func TestBaseDelegatesToAction(t *testing.T) {
	called := false
	action := node.ActionFunc(func(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) node.Output {
		called = true
		return node.Out(content.New(7))
	})
	n := node.NewBase(1, "n1", action)

	out := n.Run(context.Background(), env.New())
	require.True(t, called)
	require.True(t, out.IsSuccess())
	v, ok := content.Get[int](out.Payload())
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestNopActionSucceeds(t *testing.T) {
	n := node.NewDefaultNode(1, "noop")
	out := n.Run(context.Background(), env.New())
	assert.True(t, out.IsSuccess())
}

func TestExecStateSetOnce(t *testing.T) {
	es := node.NewExecState()
	assert.Equal(t, node.Pending, es.Outcome())

	es.SetOutput(node.Out(content.New("done")))
	assert.Equal(t, node.Success, es.Outcome())

	out, ok := es.Output()
	require.True(t, ok)
	v, _ := content.Get[string](out.Payload())
	assert.Equal(t, "done", v)
}

func TestExecStateWaitForCompletion(t *testing.T) {
	es := node.NewExecState()
	doneWaiting := make(chan struct{})
	go func() {
		es.WaitForCompletion(make(chan struct{}))
		close(doneWaiting)
	}()

	es.SetOutput(node.Out(content.Content{}))

	select {
	case <-doneWaiting:
	case <-time.After(time.Second):
		t.Fatal("waiter should have observed completion")
	}
}

func TestTypedActionWrapsError(t *testing.T) {
	ta := node.TypedAction[int]{
		Compute: func(ctx context.Context, in *channel.InChannels, out *channel.OutChannels, e *env.EnvVar) (int, error) {
			return 0, assertErr{}
		},
	}
	out := ta.Run(context.Background(), channel.NewInChannels(), channel.NewOutChannels(), env.New())
	assert.False(t, out.IsSuccess())
	assert.Equal(t, node.ActionError, out.FailureKind())
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
