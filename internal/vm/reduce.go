package vm

import (
	"github.com/gmachine-lang/gmachine/internal/code"
	"github.com/gmachine-lang/gmachine/internal/heap"
)

// Exec runs one Global's code body against this VM — the "code pointer
// to a sequence of core operations" spec §1 leaves to an external
// compiler. A body that ends in Unwind (the typical supercombinator
// shape: update, pop, unwind) is always executed from inside Unwind's
// own spine-walking loop (see the KindGlobal case below); that trailing
// Unwind instruction is a control transfer back to that same loop, not
// a fresh nested reduction, so Exec stops there and lets the caller's
// loop continue — see the OpUnwind case.
func (vm *VM) Exec(c code.Code) {
	for _, instr := range c {
		switch instr.Op {
		case code.OpPushg:
			vm.Pushg(heap.Addr(instr.A))
		case code.OpPushi:
			vm.Pushi(int32(instr.A))
		case code.OpPush:
			vm.Push(int(instr.A))
		case code.OpMkapp:
			vm.Mkapp()
		case code.OpUpdate:
			vm.Update(int(instr.A))
		case code.OpPack:
			vm.Pack(uint32(instr.A), uint32(instr.B))
		case code.OpSplit:
			vm.Split()
		case code.OpSlide:
			vm.Slide(int(instr.A))
		case code.OpPop:
			vm.Pop(int(instr.A))
		case code.OpAlloc:
			vm.AllocPlaceholders(int(instr.A))
		case code.OpEval:
			vm.Eval()
		case code.OpUnwind:
			// Hand control back to the enclosing Unwind loop instead of
			// recursing into a fresh Unwind call: the frame this body is
			// running in was opened once, by the Eval (or outer Unwind)
			// that dispatched here, and must be collapsed exactly once.
			// A nested vm.Unwind() call would perform that collapse
			// itself and then, on return, be collapsed a second time by
			// the very loop that invoked Exec.
			return
		case code.OpAdd:
			vm.Add()
		case code.OpSub:
			vm.Sub()
		case code.OpMul:
			vm.Mul()
		case code.OpDiv:
			vm.Div()
		case code.OpRem:
			vm.Rem()
		case code.OpIseq:
			vm.Iseq()
		case code.OpIsne:
			vm.Isne()
		case code.OpIslt:
			vm.Islt()
		case code.OpIsle:
			vm.Isle()
		case code.OpIsgt:
			vm.Isgt()
		case code.OpIsge:
			vm.Isge()
		case code.OpNot:
			vm.Not()
		default:
			vm.trap(ErrTypeMismatch, "unknown opcode %v", instr.Op)
		}
	}
}

// Eval forces the item on top of the stack to WHNF: it opens a nested
// frame (saving the current bp where the argument used to be, so the
// frame chain stays walkable by GC), pushes the argument back as the
// frame's sole initial item, and hands off to Unwind (spec §4.E).
//
// An `eval` instruction inside a supercombinator body recurses back into
// this function (Exec -> Eval -> Unwind -> Exec -> ...), one Go call
// frame per nesting level; vm.maxEvalDepth, when configured, traps
// before that recursion can exhaust the host stack (spec §7's "stack
// exhaustion").
func (vm *VM) Eval() {
	vm.evalDepth++
	defer func() { vm.evalDepth-- }()
	if vm.maxEvalDepth > 0 && vm.evalDepth > vm.maxEvalDepth {
		vm.trap(ErrStackExhausted, "eval: nesting depth exceeded configured cap %d", vm.maxEvalDepth)
	}

	a := vm.Stack.Top()
	vm.Stack.SetTop(heap.Addr(vm.Stack.BP()))
	vm.Stack.SetBP(vm.Stack.SP())
	vm.Stack.Push(a)
	vm.Unwind()
}

// Unwind drives WHNF reduction by walking the spine on top of the
// stack, exactly as spec §4.E specifies:
//   - App: push the left child and keep walking.
//   - Ind: forward transparently by overwriting the top.
//   - Global: if saturated, replace each spine App with its argument
//     and run the global's code; otherwise collapse the frame, handing
//     back the under-saturated application as the result. A saturated
//     body always ends in its own Unwind instruction, which Exec treats
//     as a return rather than a recursive call (see Exec's OpUnwind
//     case) — control comes straight back to the top of this same for
//     loop, which re-reads the (now reduced, via update) stack top and
//     performs the single collapse that frame is owed.
//   - Data/Int (already WHNF): collapse the frame and return.
//
// Both collapse paths restore sp/bp from the frame Eval installed; only
// the address they leave on top differs (the already-reduced value `a`
// for Data/Int, versus the original, still-reachable application root
// for an under-saturated global — see spec §9's open question and
// SPEC_FULL.md §14 for why no extra pop of the spine apps is needed:
// they remain reachable through that root until Update overwrites it).
func (vm *VM) Unwind() {
	for {
		a := vm.Stack.Top()
		if a == heap.NullAddr {
			vm.trap(ErrNullDeref, "unwind: read an alloc() placeholder before its update()")
		}
		n := vm.Heap.NodeAt(a)
		switch n.Kind {
		case heap.KindApp:
			vm.Stack.Push(n.Left)
		case heap.KindInd:
			vm.Stack.SetTop(n.To)
		case heap.KindGlobal:
			arity := int(n.Arity)
			if vm.Stack.Depth() >= arity {
				for i := 0; i < arity; i++ {
					arg := vm.Heap.NodeAt(vm.Stack.Offset(i + 1))
					vm.Stack.SetOffset(i, arg.Right)
				}
				vm.Exec(n.Code)
			} else {
				sp := vm.Stack.BP()
				vm.Stack.SetSP(sp)
				savedBP := int(vm.Stack.Top())
				root := vm.Stack.ValueAt(sp)
				vm.Stack.SetBP(savedBP)
				vm.Stack.SetTop(root)
				return
			}
		default: // Data or Int: already WHNF.
			sp := vm.Stack.BP()
			vm.Stack.SetSP(sp)
			savedBP := int(vm.Stack.Top())
			vm.Stack.SetBP(savedBP)
			vm.Stack.SetTop(a)
			return
		}
	}
}
