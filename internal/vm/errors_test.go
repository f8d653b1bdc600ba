package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmachine-lang/gmachine/internal/code"
	"github.com/gmachine-lang/gmachine/internal/examples"
	"github.com/gmachine-lang/gmachine/internal/vm"
)

// recoverErr runs fn and returns the error it panicked with (failing the
// test if it didn't panic, or panicked with a non-error value).
func recoverErr(t *testing.T, fn func()) (caught error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		caught = err
	}()
	fn()
	return nil
}

func TestUnwindTrapsOnUnfixedPlaceholder(t *testing.T) {
	v := newVM(t)
	g := v.NewGlobal(0, code.Code{
		code.Alloc(1), // a placeholder Ind -> NullAddr, never update()d
		code.Unwind(),
	})
	v.Pushg(g)

	err := recoverErr(t, v.Eval)
	assert.ErrorIs(t, err, vm.ErrNullDeref)
}

func TestAllocTrapsWhenSlabCapacityExhausted(t *testing.T) {
	v := vm.New(vm.Config{InitialGCThreshold: 1 << 20, MaxSlabCapacity: 1})
	v.Pushi(1) // first allocation fits under the cap

	err := recoverErr(t, func() { v.Pushi(2) })
	assert.ErrorIs(t, err, vm.ErrSlabExhausted)
}

func TestEvalTrapsWhenNestingExceedsMaxDepth(t *testing.T) {
	v := vm.New(vm.Config{InitialGCThreshold: 1 << 20, MaxEvalDepth: 1})
	addr := examples.Sqr(v)
	v.Pushi(3)
	v.Pushg(addr)
	v.Mkapp()

	// The outer Eval() already consumes depth 1; Sqr's own internal
	// `eval` of its argument is the nested call that must trip the cap.
	err := recoverErr(t, v.Eval)
	assert.ErrorIs(t, err, vm.ErrStackExhausted)
}
