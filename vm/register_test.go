package vm_test

import (
	"testing"

	"rv32i-emu/vm"
	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_X0AlwaysZero(t *testing.T) {
	var r vm.RegisterFile
	r.Set(0, 0xDEADBEEF)
	assert.Equal(t, uint32(0), r.Get(0), "x0 must read as zero after a write")
}

func TestRegisterFile_GetSet(t *testing.T) {
	var r vm.RegisterFile
	r.Set(5, 42)
	assert.Equal(t, uint32(42), r.Get(5))
	r.Set(31, 0xFFFFFFFF)
	assert.Equal(t, uint32(0xFFFFFFFF), r.Get(31))
}

func TestRegisterFile_OutOfRangeIsZero(t *testing.T) {
	var r vm.RegisterFile
	assert.Equal(t, uint32(0), r.Get(32))
}

func TestRegisterFile_Reset(t *testing.T) {
	var r vm.RegisterFile
	r.Set(3, 7)
	r.Reset()
	assert.Equal(t, uint32(0), r.Get(3))
}
