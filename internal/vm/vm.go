// Package vm wires the node heap, operand stack, and garbage collector
// into the single VM value the reducer and instruction primitives
// operate on (spec §3, §4.D, §4.E). Nothing in the semantics requires
// this state to be process-wide (spec §9 design notes): a *VM is an
// ordinary value, safe to construct more than once in the same process,
// which is what makes the package testable without global state leaking
// between test cases.
package vm

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gmachine-lang/gmachine/internal/code"
	"github.com/gmachine-lang/gmachine/internal/gc"
	"github.com/gmachine-lang/gmachine/internal/heap"
	"github.com/gmachine-lang/gmachine/internal/stack"
)

// Config controls the VM's initial sizing. Zero values fall back to the
// same defaults the underlying heap/stack packages use.
type Config struct {
	InitialSlabCapacity int
	InitialGCThreshold  int64
	InitialStackDepth   int

	// MaxSlabCapacity caps total slab occupancy (spec §7's "allocation
	// failure: the slab fails to grow"). Zero means unbounded.
	MaxSlabCapacity int64

	// MaxEvalDepth caps nested Eval recursion (spec §7's "stack
	// exhaustion: evaluation depth exceeds native stack") — each nested
	// `eval` instruction inside a supercombinator body is a real Go call
	// frame, so this is the policy knob that turns an unbounded host
	// stack overflow into a diagnosable, recoverable trap. Zero means
	// unbounded.
	MaxEvalDepth int

	Log logrus.FieldLogger
}

// VM is the G-machine: the node heap, the operand stack, and the
// bookkeeping the reducer and instruction primitives (this package)
// share.
type VM struct {
	Heap  *heap.Heap
	Stack *stack.Stack
	log   logrus.FieldLogger

	maxSlabCapacity int64
	maxEvalDepth    int
	evalDepth       int
}

// New constructs a VM ready for global registration (via NewGlobal) and
// then evaluation.
func New(cfg Config) *VM {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &VM{
		Heap:            heap.New(cfg.InitialSlabCapacity, cfg.InitialGCThreshold),
		Stack:           stack.New(cfg.InitialStackDepth),
		log:             log,
		maxSlabCapacity: cfg.MaxSlabCapacity,
		maxEvalDepth:    cfg.MaxEvalDepth,
	}
}

// NewGlobal allocates a Global node via Heap.AllocNoGC — the one
// acceptable use of the no-GC path outside of package heap itself, since
// globals are registered before there is a stack to root a collection
// against (spec §4.A, §4.F).
func (vm *VM) NewGlobal(arity uint32, body code.Code) heap.Addr {
	a := vm.Heap.AllocNoGC()
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindGlobal, Arity: arity, Code: body}
	return a
}

// Alloc is the GC-aware allocation entry point every instruction
// primitive uses (spec §4.A): if occupancy has reached the threshold (or
// the configured MaxSlabCapacity), a full collection runs first, and the
// threshold is doubled against the post-collection occupancy — the
// adaptive policy that keeps allocation amortized linear.
func (vm *VM) Alloc() heap.Addr {
	atCap := vm.maxSlabCapacity > 0 && vm.Heap.Occupied() >= vm.maxSlabCapacity
	if atCap || vm.Heap.Occupied() >= vm.Heap.GCThreshold() {
		before := vm.Heap.Occupied()
		freed := gc.Collect(vm.Heap, vm.Stack)
		after := vm.Heap.Occupied()
		vm.Heap.SetGCThreshold(after * 2)
		vm.log.WithFields(logrus.Fields{
			"before":    before,
			"after":     after,
			"freed":     freed,
			"threshold": vm.Heap.GCThreshold(),
			"gc_count":  vm.Heap.GCCount(),
		}).Debug("gmachine: gc cycle")
	}
	if vm.maxSlabCapacity > 0 && vm.Heap.Occupied() >= vm.maxSlabCapacity {
		vm.trap(ErrSlabExhausted, "heap: occupancy %d reached configured cap %d even after collection", vm.Heap.Occupied(), vm.maxSlabCapacity)
	}
	return vm.Heap.AllocNoGC()
}

// trap converts an internal fatal condition into a wrapped error and
// panics with it; recovered exactly once at the entry harness boundary
// (spec §7: all errors are fatal, no user-visible recovery).
func (vm *VM) trap(cause error, format string, args ...interface{}) {
	panic(errors.Wrapf(cause, format, args...))
}

func (vm *VM) mustInt(a heap.Addr) int32 {
	n := vm.Heap.NodeAt(a)
	if n.Kind != heap.KindInt {
		vm.trap(ErrTypeMismatch, "expected Int at %s, found %s", a, n.Kind)
	}
	return n.Value
}

func (vm *VM) mustData(a heap.Addr) *heap.Node {
	n := vm.Heap.NodeAt(a)
	if n.Kind != heap.KindData {
		vm.trap(ErrTypeMismatch, "expected Data at %s, found %s", a, n.Kind)
	}
	return n
}
