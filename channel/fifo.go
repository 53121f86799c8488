package channel

import (
	"context"
	"sync"

	"github.com/dagrs-dev/dagrs/content"
)

// DefaultCapacity is the default bound applied to every FIFO and
// broadcast channel the engine creates.
const DefaultCapacity = 32

// fifo is a bounded single-producer/single-consumer queue. Sends block
// when full; receives block when empty; closing unblocks any blocked
// receive with ErrClosed.
type fifo struct {
	ch        chan content.Content
	closeOnce sync.Once
	closed    chan struct{}
}

func newFIFO(capacity int) *fifo {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &fifo{
		ch:     make(chan content.Content, capacity),
		closed: make(chan struct{}),
	}
}

func (f *fifo) send(ctx context.Context, c content.Content) error {
	select {
	case <-f.closed:
		return ErrNoReceivers
	default:
	}
	select {
	case f.ch <- c:
		return nil
	case <-f.closed:
		return ErrNoReceivers
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fifo) recv(ctx context.Context) (content.Content, error) {
	select {
	case c, ok := <-f.ch:
		if ok {
			return c, nil
		}
		return content.Content{}, ErrClosed
	default:
	}
	select {
	case c, ok := <-f.ch:
		if ok {
			return c, nil
		}
		return content.Content{}, ErrClosed
	case <-f.closed:
		// Drain anything sent before close won the race.
		select {
		case c, ok := <-f.ch:
			if ok {
				return c, nil
			}
		default:
		}
		return content.Content{}, ErrClosed
	case <-ctx.Done():
		return content.Content{}, ctx.Err()
	}
}

func (f *fifo) close() {
	f.closeOnce.Do(func() {
		close(f.closed)
	})
}
