package vm_test

import (
	"testing"

	"rv32i-emu/vm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeR builds an R-type word: funct7 rs2 rs1 funct3 rd opcode.
func encodeR(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

// encodeI builds an I-type word: imm[11:0] rs1 funct3 rd opcode.
func encodeI(opcode, rd, funct3, rs1, imm uint32) uint32 {
	return (imm&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func TestDecode_AddIsAFunction(t *testing.T) {
	word := encodeR(vm.OpcodeRType, 3, vm.Funct3ADDSUB, 1, 2, vm.Funct7Base)
	in1, trap1 := vm.Decode(word, 0)
	in2, trap2 := vm.Decode(word, 0)
	require.Nil(t, trap1)
	require.Nil(t, trap2)
	assert.Equal(t, in1, in2, "decode must be a pure function: same word yields same result")
}

func TestDecode_RType_AddSub(t *testing.T) {
	add, trap := vm.Decode(encodeR(vm.OpcodeRType, 3, vm.Funct3ADDSUB, 1, 2, vm.Funct7Base), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.ADD, add.Mnemonic)
	assert.Equal(t, vm.RType{Rd: 3, Rs1: 1, Rs2: 2}, add.AsR())

	sub, trap := vm.Decode(encodeR(vm.OpcodeRType, 3, vm.Funct3ADDSUB, 1, 2, vm.Funct7Alt), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.SUB, sub.Mnemonic)
}

func TestDecode_RType_ShiftVariants(t *testing.T) {
	srl, trap := vm.Decode(encodeR(vm.OpcodeRType, 1, vm.Funct3SRLSRA, 1, 2, vm.Funct7Base), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.SRL, srl.Mnemonic)

	sra, trap := vm.Decode(encodeR(vm.OpcodeRType, 1, vm.Funct3SRLSRA, 1, 2, vm.Funct7Alt), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.SRA, sra.Mnemonic)
}

func TestDecode_IType_Immediate12Bit_SignBitSetStoredZeroExtended(t *testing.T) {
	// imm with bit 11 set: e.g. 0xFFF (-1 in 12-bit two's complement).
	in, trap := vm.Decode(encodeI(vm.OpcodeIType, 1, vm.Funct3ADDSUB, 1, 0xFFF), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.ADDI, in.Mnemonic)
	assert.Equal(t, uint32(0xFFF), in.Imm, "imm is stored zero-extended, sign extension happens at use time")
}

func TestDecode_SLLI_Shamt(t *testing.T) {
	in, trap := vm.Decode(encodeI(vm.OpcodeIType, 5, vm.Funct3SLL, 5, 2), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.SLLI, in.Mnemonic)
	assert.Equal(t, uint32(2), in.Imm)
}

func TestDecode_Loads(t *testing.T) {
	cases := []struct {
		funct3 uint32
		want   vm.Mnemonic
	}{
		{vm.Funct3LB, vm.LB},
		{vm.Funct3LH, vm.LH},
		{vm.Funct3LW, vm.LW},
		{vm.Funct3LBU, vm.LBU},
		{vm.Funct3LHU, vm.LHU},
	}
	for _, c := range cases {
		in, trap := vm.Decode(encodeI(vm.OpcodeLoad, 1, c.funct3, 2, 4), 0)
		require.Nil(t, trap)
		assert.Equal(t, c.want, in.Mnemonic)
	}
}

func TestDecode_StoreImmediateStitching(t *testing.T) {
	// S-type imm = {inst[31:25], inst[11:7]}. Encode imm=0x81 (0b0_1000_0001):
	// high7 = 0b0000100 (0x04), low5 = 0b00001 (0x01).
	word := uint32(0x04)<<25 | 2<<20 | 1<<15 | vm.Funct3SW<<12 | 0x01<<7 | vm.OpcodeStore
	in, trap := vm.Decode(word, 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.SW, in.Mnemonic)
	assert.Equal(t, uint32(0x81), in.Imm)
}

func TestDecode_BranchImmediateStitching(t *testing.T) {
	// B-type imm = {inst[31], inst[7], inst[30:25], inst[11:8], 0}: bit 0 is
	// never encoded, so the round trip uses an even offset. imm=0x1A5A sets
	// bit 12, bit 11, imm[10:5]=0x12 and imm[4:1]=0xD.
	imm := uint32(0x1A5A)
	imm11 := (imm >> 11) & 0x1
	imm4_1 := (imm >> 1) & 0xF
	imm10_5 := (imm >> 5) & 0x3F
	imm12 := (imm >> 12) & 0x1
	word := imm12<<31 | imm10_5<<25 | 2<<20 | 1<<15 | vm.Funct3BEQ<<12 | imm4_1<<8 | imm11<<7 | vm.OpcodeBranch
	in, trap := vm.Decode(word, 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.BEQ, in.Mnemonic)
	assert.Equal(t, imm, in.Imm)
}

func TestDecode_JALImmediateStitching(t *testing.T) {
	imm := uint32(0xFFFFFFFC) // -4, low 21 bits meaningful
	imm20 := (imm >> 20) & 0x1
	imm19_12 := (imm >> 12) & 0xFF
	imm11 := (imm >> 11) & 0x1
	imm10_1 := (imm >> 1) & 0x3FF
	word := imm20<<31 | imm10_1<<21 | imm11<<20 | imm19_12<<12 | 1<<7 | vm.OpcodeJAL
	in, trap := vm.Decode(word, 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.JAL, in.Mnemonic)
	assert.Equal(t, imm&0x1FFFFF, in.Imm)
}

func TestDecode_LUI_ImmAlreadyShifted(t *testing.T) {
	word := uint32(0x12345)<<12 | 1<<7 | vm.OpcodeLUI
	in, trap := vm.Decode(word, 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.LUI, in.Mnemonic)
	assert.Equal(t, uint32(0x12345000), in.Imm)
	assert.Equal(t, uint32(0), in.Imm&0xFFF, "low 12 bits of U-type imm are always zero")
}

func TestDecode_JALR_MisalignedImmTrapsAtDecodeTime(t *testing.T) {
	word := encodeI(vm.OpcodeJALR, 1, 0, 2, 0x81) // imm mod 4 != 0
	_, trap := vm.Decode(word, 0x10)
	require.NotNil(t, trap)
	assert.Equal(t, vm.InstructionAddressMisaligned, trap.Kind)
}

func TestDecode_CSR_Variants(t *testing.T) {
	in, trap := vm.Decode(encodeI(vm.OpcodeSystem, 1, vm.Funct3CSRRW, 2, vm.MSTATUS), 0)
	require.Nil(t, trap)
	assert.Equal(t, vm.CSRRW, in.Mnemonic)
	assert.Equal(t, uint32(vm.MSTATUS), in.Imm)
	assert.Equal(t, uint32(2), in.Rs1)
}

func TestDecode_UnrecognizedOpcodeIsIllegal(t *testing.T) {
	_, trap := vm.Decode(0b1111111, 0) // opcode bits all set, not in scope
	require.NotNil(t, trap)
	assert.Equal(t, vm.IllegalInstruction, trap.Kind)
}

func TestDecode_UnrecognizedRTypeFunctIsIllegal(t *testing.T) {
	_, trap := vm.Decode(encodeR(vm.OpcodeRType, 1, vm.Funct3ADDSUB, 1, 2, 0b1111111), 0)
	require.NotNil(t, trap)
	assert.Equal(t, vm.IllegalInstruction, trap.Kind)
}
