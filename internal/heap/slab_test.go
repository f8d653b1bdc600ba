package heap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmachine-lang/gmachine/internal/heap"
)

func TestAllocNoGCReturnsDistinctStableAddrs(t *testing.T) {
	h := heap.New(4, 1000)
	a := h.AllocNoGC()
	b := h.AllocNoGC()
	assert.NotEqual(t, a, b)

	*h.NodeAt(a) = heap.Node{Kind: heap.KindInt, Value: 1}
	*h.NodeAt(b) = heap.Node{Kind: heap.KindInt, Value: 2}

	// Growing the slab (forcing further allocations past initial capacity)
	// must not invalidate a or b's identity or contents.
	for i := 0; i < 64; i++ {
		h.AllocNoGC()
	}
	assert.Equal(t, int32(1), h.NodeAt(a).Value)
	assert.Equal(t, int32(2), h.NodeAt(b).Value)
}

func TestFreeRecyclesSlotViaFreeList(t *testing.T) {
	h := heap.New(4, 1000)
	a := h.AllocNoGC()
	h.Free(a)
	require.False(t, h.IsOccupied(a))

	b := h.AllocNoGC()
	assert.Equal(t, a, b, "freed slot should be reused before growing the slab")
	assert.True(t, h.IsOccupied(b))
}

func TestNodeAtPanicsOnNullAndVacant(t *testing.T) {
	h := heap.New(4, 1000)
	assert.Panics(t, func() { h.NodeAt(heap.NullAddr) })

	a := h.AllocNoGC()
	h.Free(a)
	assert.Panics(t, func() { h.NodeAt(a) })
}

func TestSweepFreesOnlyUnmarkedNonGlobals(t *testing.T) {
	h := heap.New(4, 1000)

	live := h.AllocNoGC()
	*h.NodeAt(live) = heap.Node{Kind: heap.KindInt, Value: 1, Mark: true}

	dead := h.AllocNoGC()
	*h.NodeAt(dead) = heap.Node{Kind: heap.KindInt, Value: 2}

	g := h.AllocNoGC()
	*h.NodeAt(g) = heap.Node{Kind: heap.KindGlobal, Arity: 0}

	freed := h.Sweep()
	assert.Equal(t, int64(1), freed)
	assert.True(t, h.IsOccupied(live))
	assert.False(t, h.IsOccupied(dead))
	assert.True(t, h.IsOccupied(g), "Global slots are immortal and never swept")
	assert.False(t, h.NodeAt(live).Mark, "surviving nodes get their mark bit cleared")
}

func TestStatsReflectAllocsFreesAndOccupancy(t *testing.T) {
	h := heap.New(4, 1000)
	a := h.AllocNoGC()
	h.AllocNoGC()
	h.Free(a)

	st := h.Stats()
	assert.Equal(t, int64(2), st.Allocs)
	assert.Equal(t, int64(1), st.Frees)
	assert.Equal(t, int64(1), st.Occupied)
}
