package id_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagrs-dev/dagrs/id"
)

func TestAllocatorMonotonic(t *testing.T) {
	var a id.Allocator
	first, err := a.Alloc()
	require.NoError(t, err)
	second, err := a.Alloc()
	require.NoError(t, err)
	require.Less(t, first, second)
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	var a id.Allocator
	const n = 500
	ids := make([]id.NodeID, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := a.Alloc()
			require.NoError(t, err)
			ids[i] = got
		}(i)
	}
	wg.Wait()

	seen := make(map[id.NodeID]bool, n)
	for _, v := range ids {
		require.False(t, seen[v], "duplicate id %d", v)
		seen[v] = true
	}
}

func TestAllocatorExhaustion(t *testing.T) {
	var a id.Allocator
	a.ForceNext(^uint64(0) - 1)
	_, err := a.Alloc()
	require.NoError(t, err) // allocates MaxUint64-1, the last id before the counter would wrap

	_, err = a.Alloc()
	require.ErrorIs(t, err, id.ErrExhausted)
}
