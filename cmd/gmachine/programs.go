package main

import (
	"github.com/gmachine-lang/gmachine/internal/examples"
	"github.com/gmachine-lang/gmachine/internal/heap"
	"github.com/gmachine-lang/gmachine/internal/vm"
)

// program builds one demonstration global and reports whether the entry
// harness should apply it to the integer read from stdin (spec §4.F).
// The compiler that would normally translate user source into a program
// like this is out of scope (spec §1); internal/examples hand-assembles
// the fixed set this harness can run.
type program struct {
	arity    bool // true if the global takes the stdin integer as its argument
	register func(v *vm.VM) heap.Addr
}

var programs = map[string]program{
	"constant": {
		arity:    false,
		register: func(v *vm.VM) heap.Addr { return examples.Constant(v, 42) },
	},
	"arithmetic": {
		arity:    false,
		register: func(v *vm.VM) heap.Addr { return examples.Arithmetic(v, 3, 4) },
	},
	"identity-list": {
		arity:    true,
		register: examples.IdentityList,
	},
	"sqr": {
		arity:    true,
		register: examples.Sqr,
	},
	"from": {
		arity:    true,
		register: examples.From,
	},
	"mutual-cons": {
		arity:    false,
		register: examples.MutualCons,
	},
}
