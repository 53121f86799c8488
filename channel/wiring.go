package channel

import "github.com/dagrs-dev/dagrs/id"

// ProducerEdges tracks one producer node's outgoing channel discipline so
// that dag.Graph can apply the FIFO-then-broadcast-upgrade rule without
// reaching into channel internals. The zero value is a producer with no
// consumers yet.
type ProducerEdges struct {
	kind edgeKind

	fifoPeer id.NodeID
	fifo     *fifo

	bcast *broadcaster
}

type edgeKind int

const (
	edgeKindNone edgeKind = iota
	edgeKindFIFO
	edgeKindBroadcast
)

// Upgrade describes the rewiring a dag.Graph must apply to an already
// registered consumer when a second consumer forces the FIFO-to-broadcast
// upgrade: that consumer's OutChannels/InChannels entries must be
// replaced with ones backed by the new shared broadcaster.
type Upgrade struct {
	Peer            id.NodeID
	NewSender       Sender
	NewReceiver     Receiver
}

// AddConsumer registers consumer as a new receiver of this producer's
// out-edges: the first consumer gets a dedicated FIFO; the second (and
// any later one) forces an upgrade to a shared broadcast channel,
// atomically re-pointing any previously registered consumer at it.
// upgrade is non-nil only on the call that performs that one-time
// transition.
func (p *ProducerEdges) AddConsumer(consumer id.NodeID, capacity int) (sender Sender, receiver Receiver, upgrade *Upgrade) {
	switch p.kind {
	case edgeKindNone:
		f := newFIFO(capacity)
		p.kind = edgeKindFIFO
		p.fifoPeer = consumer
		p.fifo = f
		return fifoSender{f: f}, fifoReceiver{f: f}, nil

	case edgeKindFIFO:
		b := newBroadcaster(capacity)
		prevSub := b.subscribe(p.fifoPeer)
		newSub := b.subscribe(consumer)

		p.kind = edgeKindBroadcast
		p.bcast = b
		prevPeer := p.fifoPeer
		p.fifo = nil
		p.fifoPeer = 0

		up := &Upgrade{
			Peer:        prevPeer,
			NewSender:   broadcastSender{b: b, peer: prevPeer},
			NewReceiver: broadcastReceiver{sub: prevSub, peer: prevPeer},
		}
		return broadcastSender{b: b, peer: consumer}, broadcastReceiver{sub: newSub, peer: consumer}, up

	default: // edgeKindBroadcast
		sub := p.bcast.subscribe(consumer)
		return broadcastSender{b: p.bcast, peer: consumer}, broadcastReceiver{sub: sub, peer: consumer}, nil
	}
}

// Consumers reports how many distinct consumers this producer currently
// has registered.
func (p *ProducerEdges) Consumers() int {
	switch p.kind {
	case edgeKindNone:
		return 0
	case edgeKindFIFO:
		return 1
	default:
		if p.bcast == nil {
			return 0
		}
		p.bcast.mu.Lock()
		defer p.bcast.mu.Unlock()
		return len(p.bcast.subs)
	}
}
