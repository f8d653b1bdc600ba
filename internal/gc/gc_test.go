package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmachine-lang/gmachine/internal/gc"
	"github.com/gmachine-lang/gmachine/internal/heap"
	"github.com/gmachine-lang/gmachine/internal/stack"
)

func TestCollectFreesOnlyUnreachableNodes(t *testing.T) {
	h := heap.New(8, 1000)
	s := stack.New(0)

	// root -> App(left, right); left and right are Ints, and a third Int
	// is allocated between them that nothing references.
	left := h.AllocNoGC()
	*h.NodeAt(left) = heap.Node{Kind: heap.KindInt, Value: 1}

	unreachable := h.AllocNoGC()
	*h.NodeAt(unreachable) = heap.Node{Kind: heap.KindInt, Value: 2}

	right := h.AllocNoGC()
	*h.NodeAt(right) = heap.Node{Kind: heap.KindInt, Value: 3}

	root := h.AllocNoGC()
	*h.NodeAt(root) = heap.Node{Kind: heap.KindApp, Left: left, Right: right}

	g := h.AllocNoGC()
	*h.NodeAt(g) = heap.Node{Kind: heap.KindGlobal, Arity: 0}

	s.Push(root)
	s.SetBP(0)

	freed := gc.Collect(h, s)
	assert.Equal(t, int64(1), freed)
	assert.True(t, h.IsOccupied(root))
	assert.True(t, h.IsOccupied(left))
	assert.True(t, h.IsOccupied(right))
	assert.False(t, h.IsOccupied(unreachable))
	assert.True(t, h.IsOccupied(g))
	assert.Equal(t, int64(1), h.GCCount())
}

func TestCollectFollowsIndChains(t *testing.T) {
	h := heap.New(8, 1000)
	s := stack.New(0)

	target := h.AllocNoGC()
	*h.NodeAt(target) = heap.Node{Kind: heap.KindInt, Value: 42}

	ind := h.AllocNoGC()
	*h.NodeAt(ind) = heap.Node{Kind: heap.KindInd, To: target}

	s.Push(ind)
	s.SetBP(0)

	gc.Collect(h, s)
	assert.True(t, h.IsOccupied(target), "Ind's target must be marked reachable")
}

func TestCollectHandlesCyclicData(t *testing.T) {
	h := heap.New(8, 1000)
	s := stack.New(0)

	a := h.AllocNoGC()
	b := h.AllocNoGC()
	*h.NodeAt(a) = heap.Node{Kind: heap.KindData, Tag: 1, Params: []heap.Addr{b}}
	*h.NodeAt(b) = heap.Node{Kind: heap.KindData, Tag: 1, Params: []heap.Addr{a}}

	s.Push(a)
	s.SetBP(0)

	gc.Collect(h, s)

	assert.True(t, h.IsOccupied(a))
	assert.True(t, h.IsOccupied(b))
}
