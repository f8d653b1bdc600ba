package vm

import "github.com/gmachine-lang/gmachine/internal/heap"

// This file implements every primitive in spec §4.D. Each one allocates
// at most once, except AllocPlaceholders, which pushes each placeholder
// before allocating the next. Every address a primitive needs stays on
// the stack (which is always GC-rooted) until its allocation has
// returned — the discipline spec §4.B's safety requirement demands, since
// GC only ever runs inside Alloc. None of them hold a *heap.Node across a
// call to Alloc.

// Pushg pushes a known global's address.
func (vm *VM) Pushg(addr heap.Addr) {
	vm.Stack.Push(addr)
}

// Pushi allocates a fresh Int(n) and pushes it.
func (vm *VM) Pushi(n int32) {
	a := vm.Alloc()
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindInt, Value: n}
	vm.Stack.Push(a)
}

// Push duplicates the k-th item (0 = top) onto the top of the stack.
func (vm *VM) Push(k int) {
	vm.Stack.Push(vm.Stack.Offset(k))
}

// Mkapp consumes the top two addresses (f, x) and pushes App(f, x).
func (vm *VM) Mkapp() {
	f := vm.Stack.Offset(0)
	x := vm.Stack.Offset(1)
	a := vm.Alloc()
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindApp, Left: f, Right: x}
	vm.Stack.Pop(1)
	vm.Stack.SetTop(a)
}

// Update rewrites the k-th item's node in place into an Ind pointing at
// the current top, then drops the top — the mechanism lazy sharing runs
// on: every prior reference to that address now observes the reduced
// value (spec §4.D, invariant I6).
func (vm *VM) Update(k int) {
	result := vm.Stack.Top()
	vm.Stack.Pop(1)
	target := vm.Stack.Offset(k)
	*vm.Heap.NodeAt(target) = heap.Node{Kind: heap.KindInd, To: result}
}

// Pack consumes the top `arity` items (top-down) and pushes a single
// Data(tag, params) node.
func (vm *VM) Pack(tag, arity uint32) {
	a := vm.Alloc()
	var params []heap.Addr
	if arity > 0 {
		params = make([]heap.Addr, arity)
		for i := uint32(0); i < arity; i++ {
			params[i] = vm.Stack.Offset(int(i))
		}
	}
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindData, Tag: tag, Params: params}
	vm.Stack.Pop(int(arity))
	vm.Stack.Push(a)
}

// Split pops a Data node and pushes its params in order, so that
// params[0] ends up on top (spec §4.D; the reverse push order is what
// makes pack immediately followed by split a round trip).
func (vm *VM) Split() {
	a := vm.Stack.Top()
	vm.Stack.Pop(1)
	n := vm.mustData(a)
	for i := len(n.Params) - 1; i >= 0; i-- {
		vm.Stack.Push(n.Params[i])
	}
}

// Slide replaces the n items below the top with nothing, keeping the top.
func (vm *VM) Slide(n int) {
	t := vm.Stack.Top()
	vm.Stack.SetOffset(n, t)
	vm.Stack.Pop(n)
}

// Pop drops the top n items.
func (vm *VM) Pop(n int) {
	vm.Stack.Pop(n)
}

// AllocPlaceholders pushes n freshly-allocated Ind(NullAddr) nodes —
// placeholders for mutually-recursive letrec bindings, later fixed up by
// Update (spec §4.D "alloc(n)").
func (vm *VM) AllocPlaceholders(n int) {
	for i := 0; i < n; i++ {
		a := vm.Alloc()
		*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindInd, To: heap.NullAddr}
		vm.Stack.Push(a)
	}
}

func (vm *VM) arithBinop(op func(x, y int32) int32) {
	x := vm.mustInt(vm.Stack.Offset(0))
	y := vm.mustInt(vm.Stack.Offset(1))
	a := vm.Alloc()
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindInt, Value: op(x, y)}
	vm.Stack.Pop(1)
	vm.Stack.SetTop(a)
}

// Add, Sub, Mul, Div, Rem implement 32-bit two's-complement arithmetic;
// Div and Rem truncate toward zero, matching Go's own integer division,
// and trap on division by zero rather than leaving it undefined (spec
// §4.D, §7).
func (vm *VM) Add() { vm.arithBinop(func(x, y int32) int32 { return x + y }) }
func (vm *VM) Sub() { vm.arithBinop(func(x, y int32) int32 { return x - y }) }
func (vm *VM) Mul() { vm.arithBinop(func(x, y int32) int32 { return x * y }) }

func (vm *VM) Div() {
	vm.arithBinop(func(x, y int32) int32 {
		if y == 0 {
			vm.trap(ErrDivByZero, "div %d / %d", x, y)
		}
		return x / y
	})
}

func (vm *VM) Rem() {
	vm.arithBinop(func(x, y int32) int32 {
		if y == 0 {
			vm.trap(ErrDivByZero, "rem %d %% %d", x, y)
		}
		return x % y
	})
}

func (vm *VM) cmpBinop(op func(x, y int32) bool) {
	x := vm.mustInt(vm.Stack.Offset(0))
	y := vm.mustInt(vm.Stack.Offset(1))
	a := vm.Alloc()
	var tag uint32
	if op(x, y) {
		tag = 1
	}
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindData, Tag: tag}
	vm.Stack.Pop(1)
	vm.Stack.SetTop(a)
}

// Iseq, Isne, Islt, Isle, Isgt, Isge compare two Ints and push a boolean
// Data node (false = tag 0, true = tag 1).
func (vm *VM) Iseq() { vm.cmpBinop(func(x, y int32) bool { return x == y }) }
func (vm *VM) Isne() { vm.cmpBinop(func(x, y int32) bool { return x != y }) }
func (vm *VM) Islt() { vm.cmpBinop(func(x, y int32) bool { return x < y }) }
func (vm *VM) Isle() { vm.cmpBinop(func(x, y int32) bool { return x <= y }) }
func (vm *VM) Isgt() { vm.cmpBinop(func(x, y int32) bool { return x > y }) }
func (vm *VM) Isge() { vm.cmpBinop(func(x, y int32) bool { return x >= y }) }

// Not flips a boolean-shaped Data node's tag. Defined only when the top
// of stack is already Data — a precondition the compiler is assumed to
// guarantee (spec §9's second open question), not checked at runtime.
func (vm *VM) Not() {
	top := vm.Stack.Top()
	srcTag := vm.Heap.NodeAt(top).Tag
	a := vm.Alloc()
	var tag uint32
	if srcTag == 0 {
		tag = 1
	}
	*vm.Heap.NodeAt(a) = heap.Node{Kind: heap.KindData, Tag: tag}
	vm.Stack.SetTop(a)
}
