package channel

import (
	"context"
	"sync"

	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/id"
)

// broadcaster is a single-producer/many-consumer channel with per-consumer
// ordered delivery. A consumer that falls more than capacity messages
// behind observes a LaggedError on its next receive instead of blocking
// the producer.
type broadcaster struct {
	capacity int

	mu   sync.Mutex
	subs map[id.NodeID]*subscription
}

func newBroadcaster(capacity int) *broadcaster {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &broadcaster{
		capacity: capacity,
		subs:     make(map[id.NodeID]*subscription),
	}
}

// subscribe registers peer as a consumer, returning its subscription.
func (b *broadcaster) subscribe(peer id.NodeID) *subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := &subscription{
		signal: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
	b.subs[peer] = sub
	return sub
}

// send delivers c to every current subscriber, once each. A subscriber
// whose buffer is already at capacity has its oldest undelivered message
// dropped and its lag counter incremented instead of blocking the send.
func (b *broadcaster) send(_ context.Context, c content.Content) error {
	b.mu.Lock()
	subs := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	if len(subs) == 0 {
		return ErrNoReceivers
	}
	for _, s := range subs {
		s.push(c, b.capacity)
	}
	return nil
}

// closePeer closes only the named subscriber's endpoint.
func (b *broadcaster) closePeer(peer id.NodeID) {
	b.mu.Lock()
	sub, ok := b.subs[peer]
	if ok {
		delete(b.subs, peer)
	}
	b.mu.Unlock()
	if ok {
		sub.close()
	}
}

// closeAll closes every subscriber's endpoint, e.g. when the producing
// node exits or panics.
func (b *broadcaster) closeAll() {
	b.mu.Lock()
	subs := make([]*subscription, 0, len(b.subs))
	for k, s := range b.subs {
		subs = append(subs, s)
		delete(b.subs, k)
	}
	b.mu.Unlock()
	for _, s := range subs {
		s.close()
	}
}

// subscription is one consumer's view of a broadcaster.
type subscription struct {
	mu      sync.Mutex
	buf     []content.Content
	dropped uint64
	closed  chan struct{}
	signal  chan struct{}
}

func (s *subscription) push(c content.Content, capacity int) {
	s.mu.Lock()
	if len(s.buf) >= capacity {
		s.buf = s.buf[1:]
		s.dropped++
	}
	s.buf = append(s.buf, c)
	s.mu.Unlock()
	s.wake()
}

func (s *subscription) wake() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscription) recv(ctx context.Context, peer id.NodeID) (content.Content, error) {
	for {
		s.mu.Lock()
		if s.dropped > 0 {
			n := s.dropped
			s.dropped = 0
			s.mu.Unlock()
			return content.Content{}, &LaggedError{Peer: peer, N: n}
		}
		if len(s.buf) > 0 {
			c := s.buf[0]
			s.buf = s.buf[1:]
			s.mu.Unlock()
			return c, nil
		}
		s.mu.Unlock()

		select {
		case <-s.signal:
			continue
		case <-s.closed:
			// One last drain attempt in case push raced the close.
			s.mu.Lock()
			if s.dropped > 0 {
				n := s.dropped
				s.dropped = 0
				s.mu.Unlock()
				return content.Content{}, &LaggedError{Peer: peer, N: n}
			}
			if len(s.buf) > 0 {
				c := s.buf[0]
				s.buf = s.buf[1:]
				s.mu.Unlock()
				return c, nil
			}
			s.mu.Unlock()
			return content.Content{}, ErrClosed
		case <-ctx.Done():
			return content.Content{}, ctx.Err()
		}
	}
}

func (s *subscription) close() {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
}
