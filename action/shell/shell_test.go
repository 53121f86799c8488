package shell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/action/shell"
	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/env"
)

func TestCommandSucceeds(t *testing.T) {
	c := shell.Command{Script: "echo -n hello"}
	out := c.Run(context.Background(), channel.NewInChannels(), channel.NewOutChannels(), env.New())
	require.True(t, out.IsSuccess())
	v, ok := content.Get[string](out.Payload())
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestCommandTrimsTrailingNewlineFromStdout(t *testing.T) {
	c := shell.Command{Script: "echo hello"}
	out := c.Run(context.Background(), channel.NewInChannels(), channel.NewOutChannels(), env.New())
	require.True(t, out.IsSuccess())
	v, ok := content.Get[string](out.Payload())
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestCommandFailsOnNonZeroExit(t *testing.T) {
	c := shell.Command{Script: "exit 1"}
	out := c.Run(context.Background(), channel.NewInChannels(), channel.NewOutChannels(), env.New())
	assert.False(t, out.IsSuccess())
}

func TestCommandFailsOnStderr(t *testing.T) {
	c := shell.Command{Script: "echo oops 1>&2"}
	out := c.Run(context.Background(), channel.NewInChannels(), channel.NewOutChannels(), env.New())
	assert.False(t, out.IsSuccess())
	v, ok := content.Get[string](out.Payload())
	require.True(t, ok)
	assert.Contains(t, v, "oops")
}
