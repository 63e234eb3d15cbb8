package vm

// Mnemonic tags a decoded Instruction with the specific operation the
// executor must perform. Decode is a pure function from a 32-bit word to
// exactly one Mnemonic plus the operand fields its encoding class
// populates.
type Mnemonic int

const (
	ADD Mnemonic = iota
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND

	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI

	LB
	LH
	LW
	LBU
	LHU

	SB
	SH
	SW

	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU

	JAL
	JALR

	LUI
	AUIPC

	CSRRW
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI
)

var mnemonicNames = [...]string{
	ADD: "add", SUB: "sub", SLL: "sll", SLT: "slt", SLTU: "sltu",
	XOR: "xor", SRL: "srl", SRA: "sra", OR: "or", AND: "and",
	ADDI: "addi", SLTI: "slti", SLTIU: "sltiu", XORI: "xori", ORI: "ori",
	ANDI: "andi", SLLI: "slli", SRLI: "srli", SRAI: "srai",
	LB: "lb", LH: "lh", LW: "lw", LBU: "lbu", LHU: "lhu",
	SB: "sb", SH: "sh", SW: "sw",
	BEQ: "beq", BNE: "bne", BLT: "blt", BGE: "bge", BLTU: "bltu", BGEU: "bgeu",
	JAL: "jal", JALR: "jalr",
	LUI: "lui", AUIPC: "auipc",
	CSRRW: "csrrw", CSRRS: "csrrs", CSRRC: "csrrc",
	CSRRWI: "csrrwi", CSRRSI: "csrrsi", CSRRCI: "csrrci",
}

func (m Mnemonic) String() string {
	if int(m) < 0 || int(m) >= len(mnemonicNames) {
		return "unknown"
	}
	return mnemonicNames[m]
}

// Instruction is the decoder's output: a Mnemonic tag plus the operand
// fields populated by whichever encoding class produced it. Only the
// fields relevant to Mnemonic's encoding class are meaningful; the rest
// are zero. The As* accessors below expose the typed per-class payload
// records called for by §3, without forcing every caller of Decode to
// type-switch on an interface.
type Instruction struct {
	Mnemonic Mnemonic

	Rd, Rs1, Rs2 uint32

	// Imm carries the format's immediate, stored exactly as §3 specifies:
	// zero-extended at its native width, already shifted for U-type, with
	// the implicit low zero bit included for B/J-type. Sign extension is
	// the executor's job, applied at use time via sign.go's helpers.
	Imm uint32
}

// RType is the {rd, rs1, rs2} payload of register-register instructions.
type RType struct{ Rd, Rs1, Rs2 uint32 }

// IType is the {rd, rs1, imm} payload of register-immediate and load
// instructions (and JALR, which also decodes as I-type).
type IType struct {
	Rd, Rs1 uint32
	Imm     uint32 // 12 bits, zero-extended
}

// SType is the {rs1, rs2, imm} payload of store instructions.
type SType struct {
	Rs1, Rs2 uint32
	Imm      uint32 // 12 bits, zero-extended
}

// BType is the {rs1, rs2, imm} payload of branch instructions.
type BType struct {
	Rs1, Rs2 uint32
	Imm      uint32 // 13 bits, zero-extended, low bit always 0
}

// UType is the {rd, imm} payload of LUI/AUIPC.
type UType struct {
	Rd  uint32
	Imm uint32 // already shifted left by 12; low 12 bits are zero
}

// JType is the {rd, imm} payload of JAL.
type JType struct {
	Rd  uint32
	Imm uint32 // 21 bits, zero-extended, low bit always 0
}

func (in Instruction) AsR() RType { return RType{Rd: in.Rd, Rs1: in.Rs1, Rs2: in.Rs2} }
func (in Instruction) AsI() IType { return IType{Rd: in.Rd, Rs1: in.Rs1, Imm: in.Imm} }
func (in Instruction) AsS() SType { return SType{Rs1: in.Rs1, Rs2: in.Rs2, Imm: in.Imm} }
func (in Instruction) AsB() BType { return BType{Rs1: in.Rs1, Rs2: in.Rs2, Imm: in.Imm} }
func (in Instruction) AsU() UType { return UType{Rd: in.Rd, Imm: in.Imm} }
func (in Instruction) AsJ() JType { return JType{Rd: in.Rd, Imm: in.Imm} }
