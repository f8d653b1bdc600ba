// Package code defines the instruction encoding a Global node's code
// pointer refers to: a flat sequence of opcodes, each with up to two
// integer operands. It is deliberately thin — the compiler that emits
// these sequences for user-defined globals is an external collaborator
// (see spec §1); this package only names the wire shape the VM interprets.
package code

// OpCode identifies one of the G-machine's core instructions (spec §4.D).
type OpCode uint8

const (
	OpPushg OpCode = iota
	OpPushi
	OpPush
	OpMkapp
	OpUpdate
	OpPack
	OpSplit
	OpSlide
	OpPop
	OpAlloc
	OpEval
	OpUnwind
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpIseq
	OpIsne
	OpIslt
	OpIsle
	OpIsgt
	OpIsge
	OpNot
)

var opNames = map[OpCode]string{
	OpPushg: "pushg", OpPushi: "pushi", OpPush: "push", OpMkapp: "mkapp",
	OpUpdate: "update", OpPack: "pack", OpSplit: "split", OpSlide: "slide",
	OpPop: "pop", OpAlloc: "alloc", OpEval: "eval", OpUnwind: "unwind",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpRem: "rem",
	OpIseq: "iseq", OpIsne: "isne", OpIslt: "islt", OpIsle: "isle",
	OpIsgt: "isgt", OpIsge: "isge", OpNot: "not",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// Instr is one instruction. A and B hold its operands; most instructions
// use only A (an offset, count, or address), pack uses both (tag, arity).
type Instr struct {
	Op OpCode
	A  int64
	B  int64
}

// Code is a supercombinator body: the ordered instruction sequence a
// Global's code pointer refers to.
type Code []Instr

// The constructors below let example/test globals read close to the
// `name k = op; op; ...` notation used in spec §8, one per opcode.

func Pushg(addr int64) Instr       { return Instr{Op: OpPushg, A: addr} }
func Pushi(n int32) Instr          { return Instr{Op: OpPushi, A: int64(n)} }
func Push(k int) Instr             { return Instr{Op: OpPush, A: int64(k)} }
func Mkapp() Instr                 { return Instr{Op: OpMkapp} }
func Update(k int) Instr           { return Instr{Op: OpUpdate, A: int64(k)} }
func Pack(tag, arity uint32) Instr { return Instr{Op: OpPack, A: int64(tag), B: int64(arity)} }
func Split() Instr                 { return Instr{Op: OpSplit} }
func Slide(n int) Instr            { return Instr{Op: OpSlide, A: int64(n)} }
func Pop(n int) Instr              { return Instr{Op: OpPop, A: int64(n)} }
func Alloc(n int) Instr            { return Instr{Op: OpAlloc, A: int64(n)} }
func Eval() Instr                  { return Instr{Op: OpEval} }
func Unwind() Instr                { return Instr{Op: OpUnwind} }
func Add() Instr                   { return Instr{Op: OpAdd} }
func Sub() Instr                   { return Instr{Op: OpSub} }
func Mul() Instr                   { return Instr{Op: OpMul} }
func Div() Instr                   { return Instr{Op: OpDiv} }
func Rem() Instr                   { return Instr{Op: OpRem} }
func Iseq() Instr                  { return Instr{Op: OpIseq} }
func Isne() Instr                  { return Instr{Op: OpIsne} }
func Islt() Instr                  { return Instr{Op: OpIslt} }
func Isle() Instr                  { return Instr{Op: OpIsle} }
func Isgt() Instr                  { return Instr{Op: OpIsgt} }
func Isge() Instr                  { return Instr{Op: OpIsge} }
func Not() Instr                   { return Instr{Op: OpNot} }
