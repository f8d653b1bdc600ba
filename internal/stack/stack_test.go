package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmachine-lang/gmachine/internal/heap"
	"github.com/gmachine-lang/gmachine/internal/stack"
)

func TestPushTopOffset(t *testing.T) {
	s := stack.New(0)
	s.Push(heap.Addr(10))
	s.Push(heap.Addr(20))
	s.Push(heap.Addr(30))

	assert.Equal(t, heap.Addr(30), s.Top())
	assert.Equal(t, heap.Addr(30), s.Offset(0))
	assert.Equal(t, heap.Addr(20), s.Offset(1))
	assert.Equal(t, heap.Addr(10), s.Offset(2))

	s.SetOffset(1, heap.Addr(99))
	assert.Equal(t, heap.Addr(99), s.Offset(1))

	s.Pop(2)
	assert.Equal(t, heap.Addr(10), s.Top())
	assert.Equal(t, 1, s.SP())
}

func TestWalkRootsVisitsEveryFrameAndSkipsSavedBP(t *testing.T) {
	s := stack.New(0)

	// Outer frame: bp=0, one root.
	s.Push(heap.Addr(111))
	s.SetBP(0)

	// Simulate Eval opening a nested frame: save bp (=0) in place of the
	// item being evaluated, then push it back as the new frame's sole item.
	a := s.Top()
	s.SetTop(heap.Addr(s.BP()))
	s.SetBP(s.SP())
	s.Push(a)

	var visited []heap.Addr
	s.WalkRoots(func(addr heap.Addr) { visited = append(visited, addr) })

	// Inner frame contributes `a` (=111); the saved-bp slot at index 0,
	// holding the value 0, must never appear as a visited root. Once it is
	// skipped the outer frame has no slots left, so `a` is the only root.
	assert.Contains(t, visited, a)
	assert.NotContains(t, visited, heap.Addr(0))
}

func TestDepthTracksArgsAboveFrame(t *testing.T) {
	s := stack.New(0)
	s.Push(heap.Addr(1))
	s.SetBP(s.SP())
	assert.Equal(t, -1, s.Depth())
	s.Push(heap.Addr(2))
	s.Push(heap.Addr(3))
	assert.Equal(t, 1, s.Depth())
}
