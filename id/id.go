// Package id mints globally unique, totally ordered node identifiers.
package id

import (
	"errors"
	"sync/atomic"
)

// NodeID is an opaque, totally ordered identifier, unique within the
// Allocator that minted it.
type NodeID uint64

// ErrExhausted is returned when an Allocator cannot mint any further ids
// without wrapping.
var ErrExhausted = errors.New("id: allocator exhausted")

// Allocator mints monotonically increasing NodeIDs. The zero value is
// ready to use and starts counting from 0.
type Allocator struct {
	next atomic.Uint64
}

// Alloc returns the next unused NodeID. It fails with ErrExhausted rather
// than silently wrapping when advancing the counter would overflow, so the
// last id it hands out is MaxUint64-1.
func (a *Allocator) Alloc() (NodeID, error) {
	for {
		cur := a.next.Load()
		next := cur + 1
		if next < cur {
			return 0, ErrExhausted
		}
		if a.next.CompareAndSwap(cur, next) {
			return NodeID(cur), nil
		}
	}
}

// ForceNext pins the allocator's next counter value. It exists to make
// the overflow path deterministically testable and has no use outside
// tests.
func (a *Allocator) ForceNext(v uint64) {
	a.next.Store(v)
}
