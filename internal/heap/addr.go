package heap

import "fmt"

// Addr is a stable integer index into a Slab. It is stable for a node's
// entire lifetime: it is invalidated only when the slot is explicitly
// freed (performed only by the garbage collector's sweep phase, see
// package gc).
type Addr int64

// NullAddr denotes "not yet initialized". It must never be dereferenced
// by the reducer; it may appear transiently only as an Ind.To value
// between an Alloc placeholder and the Update that fixes it up.
const NullAddr Addr = -1

func (a Addr) String() string {
	if a == NullAddr {
		return "null"
	}
	return fmt.Sprintf("#%d", int64(a))
}
