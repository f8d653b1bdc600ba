package heap

import "github.com/gmachine-lang/gmachine/internal/code"

// Kind identifies which of a Node's five shapes is active (spec §3.1).
type Kind uint8

const (
	KindApp Kind = iota
	KindGlobal
	KindInd
	KindData
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindApp:
		return "App"
	case KindGlobal:
		return "Global"
	case KindInd:
		return "Ind"
	case KindData:
		return "Data"
	case KindInt:
		return "Int"
	default:
		return "Unknown"
	}
}

// Node is a tagged union of the five node shapes the reducer operates on.
// Only the fields belonging to Kind are meaningful at any given time;
// callers that rewrite a node's Kind (update, and nowhere else) must
// repopulate every field the new Kind uses, since stale fields from the
// previous shape are not cleared automatically.
//
// Mark is the transient mark bit used only during a GC cycle (package gc);
// it is meaningless outside of Collect.
type Node struct {
	Kind Kind
	Mark bool

	// App
	Left, Right Addr

	// Global — never allocated after init, never collected.
	Arity uint32
	Code  code.Code

	// Ind — forwards transparently to To.
	To Addr

	// Data — a constructor application; len(Params) == arity.
	Tag    uint32
	Params []Addr

	// Int
	Value int32
}
