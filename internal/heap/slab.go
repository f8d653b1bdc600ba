// Package heap implements the node heap: a slab allocator with stable
// integer addresses and an intrusive free-list (spec §3.2, §4.A).
//
// The slab is a contiguous resizable array of slots. Each slot is either
// Occupied (holds a *Node) or Vacant (holds the address of the next
// vacant slot, forming a singly-linked free-list rooted at firstVacant).
// When firstVacant equals the slab's current length, the slab is full and
// grows by doubling (the usual amortized-O(1) append pattern); otherwise
// a slot is unlinked from the free-list and reused.
//
// Occupied slots hold a pointer to a separately-allocated Node rather
// than an inline Node value. This means growing the slots slice (which
// can relocate its backing array) never invalidates a *Node a caller is
// still holding — only Addr values are meant to be long-lived handles,
// but this removes an entire class of accidental-dangling-pointer bugs
// for code that (against the grain) keeps a *Node across a call that may
// allocate.
package heap

const defaultInitialCapacity = 128

type slot struct {
	occupied   bool
	node       *Node
	nextVacant Addr
}

// Stats mirrors the counters spec §3.2 requires the slab to maintain.
type Stats struct {
	Allocs      int64
	Frees       int64
	Size        int64
	Capacity    int64
	Occupied    int64
	GCCount     int64
	GCThreshold int64
}

// Heap is the node heap: the slab plus its bookkeeping.
type Heap struct {
	slots       []slot
	firstVacant Addr
	occupied    int64
	allocs      int64
	frees       int64
	gcCount     int64
	gcThreshold int64
}

// New creates a Heap with the given initial slab capacity and GC
// threshold. A non-positive capacity falls back to a sensible default.
func New(initialCapacity int, initialGCThreshold int64) *Heap {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	if initialGCThreshold <= 0 {
		initialGCThreshold = int64(initialCapacity)
	}
	return &Heap{
		slots:       make([]slot, 0, initialCapacity),
		firstVacant: 0,
		gcThreshold: initialGCThreshold,
	}
}

// AllocNoGC returns a fresh Occupied slot without ever triggering a
// collection. The only legitimate caller outside of this package is the
// globals-registration routine (spec §4.A): Global nodes must exist
// before there is a stack to root a collection against.
func (h *Heap) AllocNoGC() Addr {
	var a Addr
	if int64(h.firstVacant) == int64(len(h.slots)) {
		h.slots = append(h.slots, slot{})
		a = h.firstVacant
		h.firstVacant++
	} else {
		a = h.firstVacant
		h.firstVacant = h.slots[a].nextVacant
	}
	h.slots[a] = slot{occupied: true, node: &Node{}}
	h.occupied++
	h.allocs++
	return a
}

// Free releases slot a back to the free-list. Only GC sweep should call
// this — freeing a slot still reachable from the stack corrupts the
// graph.
func (h *Heap) Free(a Addr) {
	s := &h.slots[a]
	s.occupied = false
	s.node = nil
	s.nextVacant = h.firstVacant
	h.firstVacant = a
	h.occupied--
	h.frees++
}

// NodeAt resolves an address to its node in O(1). It panics (an
// InvariantError, see errors.go) on NullAddr or any address that isn't
// currently Occupied — per spec §7 and §9's open question about the
// source never checking this, this implementation does check it.
func (h *Heap) NodeAt(a Addr) *Node {
	if a == NullAddr {
		panic(nullDeref())
	}
	if a < 0 || int64(a) >= int64(len(h.slots)) || !h.slots[a].occupied {
		panic(invalidAddr(a))
	}
	return h.slots[a].node
}

// IsOccupied reports whether a currently names a live slot.
func (h *Heap) IsOccupied(a Addr) bool {
	return a >= 0 && int64(a) < int64(len(h.slots)) && h.slots[a].occupied
}

// Occupied is the slab's current live-slot count.
func (h *Heap) Occupied() int64 { return h.occupied }

// Size is the number of slots the slab has ever handed out (occupied or
// free-listed); Capacity is the backing array's allocated length.
func (h *Heap) Size() int64     { return int64(len(h.slots)) }
func (h *Heap) Capacity() int64 { return int64(cap(h.slots)) }

func (h *Heap) GCThreshold() int64     { return h.gcThreshold }
func (h *Heap) SetGCThreshold(t int64) { h.gcThreshold = t }
func (h *Heap) GCCount() int64         { return h.gcCount }
func (h *Heap) IncGCCount()            { h.gcCount++ }

// Sweep frees every Occupied, non-Global slot whose Mark bit is clear,
// and clears the Mark bit on every slot it keeps (spec §4.B step 2). It
// never touches Global slots — they are immortal (spec invariant I4).
// The mark phase (walking the stack's roots) lives in package gc, which
// calls Sweep once marking is complete.
func (h *Heap) Sweep() (freed int64) {
	for i := int64(len(h.slots)) - 1; i >= 0; i-- {
		a := Addr(i)
		s := &h.slots[a]
		if !s.occupied {
			continue
		}
		if s.node.Kind == KindGlobal {
			continue
		}
		if s.node.Mark {
			s.node.Mark = false
			continue
		}
		h.Free(a)
		freed++
	}
	return freed
}

// Stats snapshots the slab's counters.
func (h *Heap) Stats() Stats {
	return Stats{
		Allocs:      h.allocs,
		Frees:       h.frees,
		Size:        h.Size(),
		Capacity:    h.Capacity(),
		Occupied:    h.occupied,
		GCCount:     h.gcCount,
		GCThreshold: h.gcThreshold,
	}
}

// Destroy releases every occupied slot and drops the backing array. The
// params buffer of a Data node is owned by its slice header and is freed
// by Go's own allocator once nothing references it; there is no manual
// buffer release to perform beyond unlinking the slots.
func (h *Heap) Destroy() {
	for i := range h.slots {
		h.slots[i] = slot{}
	}
	h.slots = nil
	h.occupied = 0
}
