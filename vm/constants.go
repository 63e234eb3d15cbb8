package vm

// ============================================================================
// RV32I Instruction Encoding Constants
// ============================================================================
// These values are defined by the RISC-V unprivileged ISA specification and
// should not be modified.

const (
	// InstructionSize is the width of a fixed-length RV32I instruction in bytes.
	InstructionSize = 4

	// NumRegisters is the number of general purpose registers, x0-x31.
	// x0 is hard-wired to zero.
	NumRegisters = 32

	// NumCSRs is the number of addressable control/status registers.
	NumCSRs = 4096
)

// Instruction field bit positions, shared by the decoder and executor.
const (
	OpcodeShift = 0
	RdShift     = 7
	Funct3Shift = 12
	Rs1Shift    = 15
	Rs2Shift    = 20
	Funct7Shift = 25
)

// Field extraction masks (applied after shifting).
const (
	OpcodeMask = 0x7F
	RegMask    = 0x1F // 5-bit register index
	Funct3Mask = 0x7
	Funct7Mask = 0x7F
	Imm12Mask  = 0xFFF
	Shamt5Mask = 0x1F
)

// Opcodes in scope for this core (bits [6:0] of the instruction word).
const (
	OpcodeRType  = 0b0110011 // register-register ALU
	OpcodeIType  = 0b0010011 // register-immediate ALU
	OpcodeLoad   = 0b0000011 // LB/LH/LW/LBU/LHU
	OpcodeStore  = 0b0100011 // SB/SH/SW
	OpcodeBranch = 0b1100011 // BEQ/BNE/BLT/BGE/BLTU/BGEU
	OpcodeJALR   = 0b1100111
	OpcodeJAL    = 0b1101111
	OpcodeLUI    = 0b0110111
	OpcodeAUIPC  = 0b0010111
	OpcodeSystem = 0b1110011 // CSRRW/CSRRS/CSRRC/*I
)

// funct3 values for R-type and I-type ALU instructions.
const (
	Funct3ADDSUB = 0b000
	Funct3SLL    = 0b001
	Funct3SLT    = 0b010
	Funct3SLTU   = 0b011
	Funct3XOR    = 0b100
	Funct3SRLSRA = 0b101
	Funct3OR     = 0b110
	Funct3AND    = 0b111
)

// funct7 values distinguishing ADD/SUB and SRL/SRA.
const (
	Funct7Base = 0b0000000
	Funct7Alt  = 0b0100000
)

// funct3 values for loads.
const (
	Funct3LB  = 0b000
	Funct3LH  = 0b001
	Funct3LW  = 0b010
	Funct3LBU = 0b100
	Funct3LHU = 0b101
)

// funct3 values for stores.
const (
	Funct3SB = 0b000
	Funct3SH = 0b001
	Funct3SW = 0b010
)

// funct3 values for branches.
const (
	Funct3BEQ  = 0b000
	Funct3BNE  = 0b001
	Funct3BLT  = 0b100
	Funct3BGE  = 0b101
	Funct3BLTU = 0b110
	Funct3BGEU = 0b111
)

// funct3 values for CSR instructions (opcode OpcodeSystem).
const (
	Funct3CSRRW  = 0b001
	Funct3CSRRS  = 0b010
	Funct3CSRRC  = 0b011
	Funct3CSRRWI = 0b101
	Funct3CSRRSI = 0b110
	Funct3CSRRCI = 0b111
)

// ============================================================================
// CSR Address Field Layout
// ============================================================================
// The 12-bit CSR address encodes access policy directly in its bits, per the
// Zicsr extension's convention:
//
//	bits [11:10]: 0b11 => read-only, anything else => read/write
//	bits  [9:8]: minimum privilege mode required for any access

const (
	csrReadOnlyShift = 10
	csrReadOnlyMask  = 0x3
	csrReadOnlyValue = 0b11

	csrPrivShift = 8
	csrPrivMask  = 0x3
)

// Canonical CSR addresses, following the naming used throughout the RISC-V
// privileged specification. Only a handful are meaningful without the
// trap-delegation machinery this core does not implement, but they are
// exposed for callers that want to probe or pre-seed them.
const (
	USTATUS = 0x000
	UIE     = 0x004
	UTVEC   = 0x005

	SSTATUS = 0x100
	SIE     = 0x104
	STVEC   = 0x105
	SEPC    = 0x141
	SCAUSE  = 0x142
	STVAL   = 0x143
	SIP     = 0x144

	MSTATUS  = 0x300
	MISA     = 0x301
	MIE      = 0x304
	MTVEC    = 0x305
	MEPC     = 0x341
	MCAUSE   = 0x342
	MTVAL    = 0x343
	MIP      = 0x344
	MVENDORID = 0xF11
	MARCHID   = 0xF12
	MIMPID    = 0xF13
	MHARTID   = 0xF14
)

// Default host-level limits for callers that drive the loop themselves. They
// concern the host, not the ISA, and nothing in this package applies them:
// Run has no tick cap and NewByteMemory/NewNullMemory always take an
// explicit size.
const (
	// DefaultMaxTicks is a tick cap a caller can pass to RunUpTo.
	DefaultMaxTicks = 1_000_000

	// DefaultMemorySize is a backing store size a caller can pass to a
	// Memory constructor.
	DefaultMemorySize = 1 << 20 // 1 MiB
)
