package channel

import (
	"errors"
	"fmt"

	"github.com/dagrs-dev/dagrs/id"
)

// Sentinel receive/send errors. Callers should use errors.Is / errors.As;
// Lagged carries a payload so it is always a *LaggedError.
var (
	// ErrNoSuchChannel is returned when an operation names a peer that
	// has no registered channel.
	ErrNoSuchChannel = errors.New("channel: no such channel")

	// ErrClosed is returned by a receive on a channel whose sender side
	// has been closed (including after a sender panic).
	ErrClosed = errors.New("channel: closed")

	// ErrNoReceivers is returned by a send when the channel has no
	// registered consumers left.
	ErrNoReceivers = errors.New("channel: no receivers")
)

// LaggedError reports that a broadcast consumer fell behind and N
// messages were dropped before it could receive them.
type LaggedError struct {
	Peer id.NodeID
	N    uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("channel: lagged behind peer %d, dropped %d message(s)", e.Peer, e.N)
}
