package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructions(t *testing.T) {
	assert := assert.New(t)

	cycles := map[Op]int{
		OP_HLT: 0, OP_RDI: 2, OP_RDK: 2, OP_LDA: 1,
		OP_STA: 2, OP_ADD: 1, OP_SUB: 1, OP_MOD: 1,
		OP_JNZ: 1, OP_JEZ: 1, OP_CAL: 3, OP_RET: 1,
		OP_PSH: 1, OP_POP: 1, OP_OUT: 1, OP_OUC: 1,
	}

	count := 0
	for op, inst := range Instructions() {
		count++
		assert.Equal(op.String(), inst.Name)
		assert.Equal(cycles[op], inst.Cycles, inst.Name)
		assert.NotNil(inst.Effect, inst.Name)

		lop, ok := LookupOp(inst.Name)
		assert.True(ok)
		assert.Equal(op, lop)
	}
	assert.Equal(16, count)
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	inst, ok := Lookup(OP_CAL)
	assert.True(ok)
	assert.Equal("cal", inst.Name)

	_, ok = Lookup(Op(16))
	assert.False(ok)

	_, ok = Lookup(Op(opPending))
	assert.False(ok)

	_, ok = LookupOp("AC")
	assert.False(ok)
	_, ok = LookupOp("HLT")
	assert.False(ok)
}
