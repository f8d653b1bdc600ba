package vm

import "github.com/pkg/errors"

// Sentinel errors for the fatal conditions spec §7 names. They are
// wrapped with context via github.com/pkg/errors at the point of trap
// and surfaced to the entry harness, which logs them and exits non-zero
// (§6 "non-zero is reserved for future error surfaces").
var (
	// ErrTypeMismatch covers arithmetic on a non-Int, split of a
	// non-Data, or a comparison between mismatched shapes.
	ErrTypeMismatch = errors.New("gmachine: type mismatch")

	// ErrDivByZero is undefined by spec §4.D ("division by zero is
	// undefined; caller ensures") — this implementation chooses to trap.
	ErrDivByZero = errors.New("gmachine: division by zero")

	// ErrNullDeref marks unwind reading NullAddr off the stack — an
	// alloc() placeholder (Ind -> NullAddr) dereferenced before its
	// matching update() fixed it up (spec §9's design note on the
	// NULL_ADDR sentinel).
	ErrNullDeref = errors.New("gmachine: dereference of NullAddr")

	// ErrSlabExhausted marks a slab growth failure.
	ErrSlabExhausted = errors.New("gmachine: slab allocation failure")

	// ErrStackExhausted marks evaluation depth exceeding what the host
	// can support.
	ErrStackExhausted = errors.New("gmachine: stack exhausted")

	// ErrBadInput marks a malformed integer on stdin.
	ErrBadInput = errors.New("gmachine: malformed input")
)
