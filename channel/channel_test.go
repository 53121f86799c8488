package channel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/id"
)

func TestFIFORoundTrip(t *testing.T) {
	var producer channel.ProducerEdges
	sender, receiver, upgrade := producer.AddConsumer(id.NodeID(2), 0)
	require.Nil(t, upgrade)

	out := channel.NewOutChannels()
	out.Register(2, sender)
	in := channel.NewInChannels()
	in.Register(1, receiver)

	ctx := context.Background()
	require.NoError(t, out.SendTo(ctx, 2, content.New(42)))

	got, err := in.RecvFrom(ctx, 1)
	require.NoError(t, err)
	v, ok := content.Get[int](got)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestFIFOOrdering(t *testing.T) {
	var producer channel.ProducerEdges
	sender, receiver, _ := producer.AddConsumer(id.NodeID(2), 0)

	out := channel.NewOutChannels()
	out.Register(2, sender)
	in := channel.NewInChannels()
	in.Register(1, receiver)

	ctx := context.Background()
	for i := range 10 {
		require.NoError(t, out.SendTo(ctx, 2, content.New(i)))
	}
	for i := range 10 {
		got, err := in.RecvFrom(ctx, 1)
		require.NoError(t, err)
		v, _ := content.Get[int](got)
		assert.Equal(t, i, v)
	}
}

func TestFIFOCloseUnblocksReceiver(t *testing.T) {
	var producer channel.ProducerEdges
	sender, receiver, _ := producer.AddConsumer(id.NodeID(2), 1)

	out := channel.NewOutChannels()
	out.Register(2, sender)
	in := channel.NewInChannels()
	in.Register(1, receiver)

	out.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := in.RecvFrom(ctx, 1)
	assert.ErrorIs(t, err, channel.ErrClosed)
}

func TestBroadcastUpgradeDeliversToBothConsumers(t *testing.T) {
	var producer channel.ProducerEdges

	s1, _, up1 := producer.AddConsumer(2, 0)
	require.Nil(t, up1)

	s2, r2, up2 := producer.AddConsumer(3, 0)
	require.NotNil(t, up2)
	assert.Equal(t, id.NodeID(2), up2.Peer)

	out := channel.NewOutChannels()
	out.Register(2, s1)
	out.Register(3, s2)
	// apply the upgrade the way dag.Graph would
	out.Register(up2.Peer, up2.NewSender)

	in2 := channel.NewInChannels()
	in2.Register(1, up2.NewReceiver) // consumer 2's upgraded receiver
	in3 := channel.NewInChannels()
	in3.Register(1, r2)

	ctx := context.Background()
	require.NoError(t, out.Broadcast(ctx, content.New("hi")))

	got2, err := in2.RecvFrom(ctx, 1)
	require.NoError(t, err)
	v2, _ := content.Get[string](got2)
	assert.Equal(t, "hi", v2)

	got3, err := in3.RecvFrom(ctx, 1)
	require.NoError(t, err)
	v3, _ := content.Get[string](got3)
	assert.Equal(t, "hi", v3)
}

func TestBroadcastSlowConsumerLags(t *testing.T) {
	var producer channel.ProducerEdges
	sFast, _, _ := producer.AddConsumer(2, 4)
	sSlow, rSlow, up := producer.AddConsumer(3, 4)
	require.NotNil(t, up)

	out := channel.NewOutChannels()
	out.Register(2, sFast)
	out.Register(3, sSlow)
	out.Register(up.Peer, up.NewSender)

	ctx := context.Background()
	// Send well past capacity without the slow consumer ever receiving;
	// the producer must not block on it.
	done := make(chan struct{})
	go func() {
		for i := range 10 {
			_ = out.Broadcast(ctx, content.New(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow consumer")
	}

	in := channel.NewInChannels()
	in.Register(1, rSlow)
	_, err := in.RecvFrom(ctx, 1)

	var lagged *channel.LaggedError
	require.ErrorAs(t, err, &lagged)
	assert.Greater(t, lagged.N, uint64(0))
}

func TestRecvAnyReturnsFromReadyPeer(t *testing.T) {
	var p1, p2 channel.ProducerEdges
	s1, r1, _ := p1.AddConsumer(10, 0)
	_, r2, _ := p2.AddConsumer(10, 0)

	in := channel.NewInChannels()
	in.Register(1, r1)
	in.Register(2, r2)

	out1 := channel.NewOutChannels()
	out1.Register(10, s1)

	ctx := context.Background()
	require.NoError(t, out1.SendTo(ctx, 10, content.New("from-1")))

	peer, got, err := in.RecvAny(ctx)
	require.NoError(t, err)
	assert.Equal(t, id.NodeID(1), peer)
	v, _ := content.Get[string](got)
	assert.Equal(t, "from-1", v)
}

func TestRecvAnyNoSuchChannel(t *testing.T) {
	in := channel.NewInChannels()
	_, _, err := in.RecvAny(context.Background())
	assert.ErrorIs(t, err, channel.ErrNoSuchChannel)
}

func TestRecvAnyPreservesTheLosingPeersMessage(t *testing.T) {
	var p1, p2 channel.ProducerEdges
	s1, r1, _ := p1.AddConsumer(10, 0)
	s2, r2, _ := p2.AddConsumer(10, 0)

	in := channel.NewInChannels()
	in.Register(1, r1)
	in.Register(2, r2)

	out1 := channel.NewOutChannels()
	out1.Register(10, s1)
	out2 := channel.NewOutChannels()
	out2.Register(10, s2)

	ctx := context.Background()
	require.NoError(t, out1.SendTo(ctx, 10, content.New("from-1")))
	require.NoError(t, out2.SendTo(ctx, 10, content.New("from-2")))

	seen := map[id.NodeID]content.Content{}
	for range 2 {
		peer, got, err := in.RecvAny(ctx)
		require.NoError(t, err)
		seen[peer] = got
	}

	require.Len(t, seen, 2, "both peers' messages must surface, none silently dropped")
	v1, _ := content.Get[string](seen[1])
	v2, _ := content.Get[string](seen[2])
	assert.Equal(t, "from-1", v1)
	assert.Equal(t, "from-2", v2)
}

func TestRecvAnyNoStarvationUnderContinuousTraffic(t *testing.T) {
	var p1, p2 channel.ProducerEdges
	s1, r1, _ := p1.AddConsumer(10, 2)
	s2, r2, _ := p2.AddConsumer(10, 2)

	in := channel.NewInChannels()
	in.Register(1, r1)
	in.Register(2, r2)

	out1 := channel.NewOutChannels()
	out1.Register(10, s1)
	out2 := channel.NewOutChannels()
	out2.Register(10, s2)

	ctx := context.Background()
	seen := map[id.NodeID]int{}
	for range 20 {
		require.NoError(t, out1.SendTo(ctx, 10, content.New(1)))
		require.NoError(t, out2.SendTo(ctx, 10, content.New(2)))
		peer, _, err := in.RecvAny(ctx)
		require.NoError(t, err)
		seen[peer]++
		// drain the other one too so queues don't grow unbounded
		otherPeer := id.NodeID(1)
		if peer == 1 {
			otherPeer = 2
		}
		_, err = in.RecvFrom(ctx, otherPeer)
		require.NoError(t, err)
	}
	assert.Greater(t, seen[1], 0)
	assert.Greater(t, seen[2], 0)
}
