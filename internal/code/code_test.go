package code_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gmachine-lang/gmachine/internal/code"
)

func TestOpCodeString(t *testing.T) {
	assert.Equal(t, "pushg", code.OpPushg.String())
	assert.Equal(t, "unwind", code.OpUnwind.String())
	assert.Equal(t, "unknown", code.OpCode(255).String())
}

func TestConstructorsSetOperands(t *testing.T) {
	assert.DeepEqual(t, code.Instr{Op: code.OpPushi, A: 42}, code.Pushi(42))
	assert.DeepEqual(t, code.Instr{Op: code.OpPack, A: 1, B: 2}, code.Pack(1, 2))
	assert.DeepEqual(t, code.Instr{Op: code.OpUnwind}, code.Unwind())
}
