// Package gc implements the mark-sweep collector (spec §4.B). It is a
// thin orchestration layer: marking walks the stack's roots (package
// stack already knows how to skip saved-bp slots) and recurses over the
// heap's App/Ind/Data edges; sweeping is the heap's own responsibility
// (heap.Heap.Sweep), since it needs no stack access at all.
package gc

import (
	"github.com/gmachine-lang/gmachine/internal/heap"
	"github.com/gmachine-lang/gmachine/internal/stack"
)

// Collect runs one full mark-sweep cycle: mark every node reachable from
// s's roots, then free every unmarked, non-Global occupied slot in h. It
// returns the number of slots freed. Callers (package vm's Alloc) are
// responsible for the adaptive threshold policy in spec §4.A/§4.B step 3;
// this function only performs the cycle itself.
func Collect(h *heap.Heap, s *stack.Stack) int64 {
	s.WalkRoots(func(a heap.Addr) {
		mark(h, a)
	})
	freed := h.Sweep()
	h.IncGCCount()
	return freed
}

// mark performs the recursive DFS spec §4.B describes: Global nodes are
// always-live and are neither marked nor descended into, which also
// correctly stops the traversal at the global boundary (globals are
// closed under compilation, so nothing reachable only through a global
// needs visiting here).
func mark(h *heap.Heap, a heap.Addr) {
	if a == heap.NullAddr {
		// Only possible transiently, between an alloc placeholder and
		// its update; never itself reachable as a live Ind.To once the
		// graph is consistent, but guarding here costs nothing.
		return
	}
	n := h.NodeAt(a)
	if n.Kind == heap.KindGlobal || n.Mark {
		return
	}
	n.Mark = true
	switch n.Kind {
	case heap.KindApp:
		mark(h, n.Left)
		mark(h, n.Right)
	case heap.KindInd:
		mark(h, n.To)
	case heap.KindData:
		for _, p := range n.Params {
			mark(h, p)
		}
	}
}
