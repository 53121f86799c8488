package channel

import (
	"context"

	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/id"
)

// Sender is a producer-side channel endpoint.
type Sender interface {
	send(ctx context.Context, c content.Content) error
	close()
}

type fifoSender struct{ f *fifo }

func (s fifoSender) send(ctx context.Context, c content.Content) error { return s.f.send(ctx, c) }
func (s fifoSender) close()                                            { s.f.close() }

type broadcastSender struct {
	b    *broadcaster
	peer id.NodeID // the specific consumer SendTo targets; Broadcast ignores it
}

func (s broadcastSender) send(ctx context.Context, c content.Content) error {
	return s.b.send(ctx, c)
}
func (s broadcastSender) close() { s.b.closePeer(s.peer) }

// OutChannels is a node's collection of outbound channel endpoints, keyed
// by the receiving peer's NodeID. Per the edge-wiring rule, every peer
// registered here for a given producer shares either the same FIFO (when
// there is exactly one) or the same broadcast channel (when there are
// several) — see dag.Graph.AddEdge.
type OutChannels struct {
	byPeer map[id.NodeID]Sender
	// bcast is set once this node's out-edges have been upgraded to
	// broadcast, so Broadcast can fan out with a single call instead of
	// iterating byPeer (which would otherwise re-enter the same
	// broadcaster once per registered peer).
	bcast *broadcaster
}

// NewOutChannels returns an empty OutChannels collection.
func NewOutChannels() *OutChannels {
	return &OutChannels{byPeer: make(map[id.NodeID]Sender)}
}

// Register wires a sender endpoint for peer.
func (oc *OutChannels) Register(peer id.NodeID, s Sender) {
	oc.byPeer[peer] = s
	if bs, ok := s.(broadcastSender); ok {
		oc.bcast = bs.b
	}
}

// SendTo delivers c to peer specifically, suspending if the channel is
// full. When this node's out-edges have been upgraded to broadcast,
// SendTo is equivalent to Broadcast: the underlying channel has no way
// to address one consumer in isolation, so every registered consumer
// receives the message, matching the single-producer/many-consumer
// contract the upgrade establishes.
func (oc *OutChannels) SendTo(ctx context.Context, peer id.NodeID, c content.Content) error {
	s, ok := oc.byPeer[peer]
	if !ok {
		return ErrNoSuchChannel
	}
	return s.send(ctx, c)
}

// Broadcast delivers c to every registered consumer. For a broadcast
// channel this is a single underlying send; for the (degenerate) case of
// a single FIFO consumer it behaves like SendTo to that one peer.
func (oc *OutChannels) Broadcast(ctx context.Context, c content.Content) error {
	if oc.bcast != nil {
		return oc.bcast.send(ctx, c)
	}
	if len(oc.byPeer) == 0 {
		return ErrNoReceivers
	}
	var firstErr error
	for _, s := range oc.byPeer {
		if err := s.send(ctx, c); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close drops this node's sending endpoint for peer.
func (oc *OutChannels) Close(peer id.NodeID) {
	if s, ok := oc.byPeer[peer]; ok {
		s.close()
		delete(oc.byPeer, peer)
	}
}

// CloseAll drops every sending endpoint this node holds — called when a
// node's task exits, including on panic, so blocked peers observe
// ErrClosed/ErrNoReceivers instead of hanging forever.
func (oc *OutChannels) CloseAll() {
	if oc.bcast != nil {
		oc.bcast.closeAll()
		oc.byPeer = make(map[id.NodeID]Sender)
		return
	}
	for peer := range oc.byPeer {
		oc.Close(peer)
	}
}

// Peers lists the peers this node currently sends to.
func (oc *OutChannels) Peers() []id.NodeID {
	peers := make([]id.NodeID, 0, len(oc.byPeer))
	for p := range oc.byPeer {
		peers = append(peers, p)
	}
	return peers
}
