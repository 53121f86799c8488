package channel

import (
	"context"
	"errors"
	"sync"

	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/id"
)

// Receiver is one consumer's endpoint of a channel from a single peer.
type Receiver interface {
	recv(ctx context.Context) (content.Content, error)
	close()
}

type fifoReceiver struct{ f *fifo }

func (r fifoReceiver) recv(ctx context.Context) (content.Content, error) { return r.f.recv(ctx) }
func (r fifoReceiver) close()                                           { r.f.close() }

type broadcastReceiver struct {
	sub  *subscription
	peer id.NodeID
}

func (r broadcastReceiver) recv(ctx context.Context) (content.Content, error) {
	return r.sub.recv(ctx, r.peer)
}
func (r broadcastReceiver) close() { r.sub.close() }

// pendingMsg is a message RecvAny already pulled off a peer's channel but
// could not return to its caller because another peer won the race.
type pendingMsg struct {
	c   content.Content
	err error
}

// InChannels is a node's collection of inbound channel endpoints, keyed
// by the sending peer's NodeID.
type InChannels struct {
	byPeer map[id.NodeID]Receiver

	mu      sync.Mutex
	pending map[id.NodeID]pendingMsg
}

// NewInChannels returns an empty InChannels collection.
func NewInChannels() *InChannels {
	return &InChannels{
		byPeer:  make(map[id.NodeID]Receiver),
		pending: make(map[id.NodeID]pendingMsg),
	}
}

// Register wires a receiver endpoint for peer. Graph construction calls
// this when edges are wired; it is not part of the Action-facing API.
func (ic *InChannels) Register(peer id.NodeID, r Receiver) {
	ic.byPeer[peer] = r
}

// RecvFrom receives the next message sent by peer, suspending until one
// arrives, the channel closes, or ctx is done. A message a prior RecvAny
// call already pulled from peer but couldn't deliver is returned first.
func (ic *InChannels) RecvFrom(ctx context.Context, peer id.NodeID) (content.Content, error) {
	if m, ok := ic.takePending(peer); ok {
		return m.c, m.err
	}
	r, ok := ic.byPeer[peer]
	if !ok {
		return content.Content{}, ErrNoSuchChannel
	}
	return r.recv(ctx)
}

// RecvAny receives the next available message from any peer, suspending
// until one arrives. Ordering across peers is unspecified; fanning the
// wait out across one goroutine per peer (rather than polling) means no
// peer is favored over another and the call never busy-waits.
//
// Exactly one goroutine's result is returned per call; every other
// goroutine that also finished with a real message (rather than merely
// observing this call's internal cancellation) has its message stashed
// in pending instead of discarded, so a later RecvFrom/RecvAny for that
// peer still observes it.
func (ic *InChannels) RecvAny(ctx context.Context) (id.NodeID, content.Content, error) {
	if len(ic.byPeer) == 0 {
		return 0, content.Content{}, ErrNoSuchChannel
	}

	if peer, m, ok := ic.takeAnyPending(); ok {
		return peer, m.c, m.err
	}

	type result struct {
		peer id.NodeID
		c    content.Content
		err  error
	}

	waitCtx, cancel := context.WithCancel(ctx)
	// Deferred calls run in reverse: cancel first, then wait, so every
	// losing goroutine has stashed its result (or given up) before
	// RecvAny returns.
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	winner := make(chan result, 1)
	for peer, r := range ic.byPeer {
		wg.Add(1)
		go func(peer id.NodeID, r Receiver) {
			defer wg.Done()
			c, err := r.recv(waitCtx)
			if !realResult(err) {
				// waitCtx was canceled before r.recv pulled anything; nothing
				// was consumed from peer's channel, so there's nothing to save.
				return
			}
			select {
			case winner <- result{peer: peer, c: c, err: err}:
			default:
				ic.storePending(peer, pendingMsg{c: c, err: err})
			}
		}(peer, r)
	}

	select {
	case rr := <-winner:
		return rr.peer, rr.c, rr.err
	case <-ctx.Done():
		return 0, content.Content{}, ctx.Err()
	}
}

// realResult reports whether err reflects an actual observation of
// peer's channel (a message, ErrClosed, a LaggedError, ...) rather than
// just RecvAny's own internal waitCtx being canceled once a winner was
// already chosen.
func realResult(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (ic *InChannels) takePending(peer id.NodeID) (pendingMsg, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	m, ok := ic.pending[peer]
	if ok {
		delete(ic.pending, peer)
	}
	return m, ok
}

func (ic *InChannels) takeAnyPending() (id.NodeID, pendingMsg, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	for peer, m := range ic.pending {
		delete(ic.pending, peer)
		return peer, m, true
	}
	return 0, pendingMsg{}, false
}

func (ic *InChannels) storePending(peer id.NodeID, m pendingMsg) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.pending[peer] = m
}

// Close drops this node's receiving endpoint for peer.
func (ic *InChannels) Close(peer id.NodeID) {
	if r, ok := ic.byPeer[peer]; ok {
		r.close()
		delete(ic.byPeer, peer)
	}
	ic.mu.Lock()
	delete(ic.pending, peer)
	ic.mu.Unlock()
}

// CloseAll drops every receiving endpoint this node holds, e.g. on node
// teardown.
func (ic *InChannels) CloseAll() {
	for peer := range ic.byPeer {
		ic.Close(peer)
	}
}

// Peers lists the peers this node currently receives from.
func (ic *InChannels) Peers() []id.NodeID {
	peers := make([]id.NodeID, 0, len(ic.byPeer))
	for p := range ic.byPeer {
		peers = append(peers, p)
	}
	return peers
}
