package vm

// Decode is a pure function from a 32-bit instruction word to a decoded
// Instruction, per §4.1. It never touches memory, registers or CSR state;
// pc is only carried along so a resulting Trap can be stamped with the
// address that produced it.
func Decode(word uint32, pc uint32) (Instruction, *Trap) {
	opcode := word & OpcodeMask
	rd := (word >> RdShift) & RegMask
	funct3 := (word >> Funct3Shift) & Funct3Mask
	rs1 := (word >> Rs1Shift) & RegMask
	rs2 := (word >> Rs2Shift) & RegMask
	funct7 := (word >> Funct7Shift) & Funct7Mask

	switch opcode {
	case OpcodeRType:
		return decodeRType(word, pc, rd, funct3, rs1, rs2, funct7)
	case OpcodeIType:
		return decodeIType(word, pc, rd, funct3, rs1, funct7)
	case OpcodeLoad:
		return decodeLoad(word, pc, rd, funct3, rs1)
	case OpcodeStore:
		return decodeStore(word, pc, funct3, rs1, rs2)
	case OpcodeBranch:
		return decodeBranch(word, pc, funct3, rs1, rs2)
	case OpcodeJALR:
		return decodeJALR(word, pc, rd, funct3, rs1)
	case OpcodeJAL:
		return decodeJAL(word, pc, rd)
	case OpcodeLUI:
		return Instruction{Mnemonic: LUI, Rd: rd, Imm: word &^ Imm12Mask}, nil
	case OpcodeAUIPC:
		return Instruction{Mnemonic: AUIPC, Rd: rd, Imm: word &^ Imm12Mask}, nil
	case OpcodeSystem:
		return decodeSystem(word, pc, rd, funct3, rs1)
	default:
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized opcode 0b%07b", opcode)
	}
}

func decodeRType(word, pc, rd, funct3, rs1, rs2, funct7 uint32) (Instruction, *Trap) {
	r := RType{Rd: rd, Rs1: rs1, Rs2: rs2}
	switch funct3 {
	case Funct3ADDSUB:
		switch funct7 {
		case Funct7Base:
			return rInstr(ADD, r), nil
		case Funct7Alt:
			return rInstr(SUB, r), nil
		}
	case Funct3SLL:
		if funct7 == Funct7Base {
			return rInstr(SLL, r), nil
		}
	case Funct3SLT:
		if funct7 == Funct7Base {
			return rInstr(SLT, r), nil
		}
	case Funct3SLTU:
		if funct7 == Funct7Base {
			return rInstr(SLTU, r), nil
		}
	case Funct3XOR:
		if funct7 == Funct7Base {
			return rInstr(XOR, r), nil
		}
	case Funct3SRLSRA:
		switch funct7 {
		case Funct7Base:
			return rInstr(SRL, r), nil
		case Funct7Alt:
			return rInstr(SRA, r), nil
		}
	case Funct3OR:
		if funct7 == Funct7Base {
			return rInstr(OR, r), nil
		}
	case Funct3AND:
		if funct7 == Funct7Base {
			return rInstr(AND, r), nil
		}
	}
	return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized R-type funct3=0b%03b funct7=0b%07b", funct3, funct7)
}

func rInstr(m Mnemonic, r RType) Instruction {
	return Instruction{Mnemonic: m, Rd: r.Rd, Rs1: r.Rs1, Rs2: r.Rs2}
}

func iInstr(m Mnemonic, rd, rs1, imm uint32) Instruction {
	return Instruction{Mnemonic: m, Rd: rd, Rs1: rs1, Imm: imm}
}

func decodeIType(word, pc, rd, funct3, rs1, funct7 uint32) (Instruction, *Trap) {
	imm12 := word >> 20 & Imm12Mask
	switch funct3 {
	case Funct3ADDSUB: // ADDI reuses the ADD/SUB funct3 encoding
		return iInstr(ADDI, rd, rs1, imm12), nil
	case Funct3SLT:
		return iInstr(SLTI, rd, rs1, imm12), nil
	case Funct3SLTU:
		return iInstr(SLTIU, rd, rs1, imm12), nil
	case Funct3XOR:
		return iInstr(XORI, rd, rs1, imm12), nil
	case Funct3OR:
		return iInstr(ORI, rd, rs1, imm12), nil
	case Funct3AND:
		return iInstr(ANDI, rd, rs1, imm12), nil
	case Funct3SLL:
		if funct7 == Funct7Base {
			return iInstr(SLLI, rd, rs1, imm12&Shamt5Mask), nil
		}
	case Funct3SRLSRA:
		switch funct7 {
		case Funct7Base:
			return iInstr(SRLI, rd, rs1, imm12&Shamt5Mask), nil
		case Funct7Alt:
			return iInstr(SRAI, rd, rs1, imm12&Shamt5Mask), nil
		}
	}
	return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized I-type ALU funct3=0b%03b funct7=0b%07b", funct3, funct7)
}

func decodeLoad(word, pc, rd, funct3, rs1 uint32) (Instruction, *Trap) {
	imm12 := word >> 20 & Imm12Mask
	switch funct3 {
	case Funct3LB:
		return iInstr(LB, rd, rs1, imm12), nil
	case Funct3LH:
		return iInstr(LH, rd, rs1, imm12), nil
	case Funct3LW:
		return iInstr(LW, rd, rs1, imm12), nil
	case Funct3LBU:
		return iInstr(LBU, rd, rs1, imm12), nil
	case Funct3LHU:
		return iInstr(LHU, rd, rs1, imm12), nil
	default:
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized load funct3=0b%03b", funct3)
	}
}

func decodeStore(word, pc, funct3, rs1, rs2 uint32) (Instruction, *Trap) {
	imm := (((word >> 25) & Funct7Mask) << 5) | ((word >> RdShift) & RegMask)
	s := Instruction{Rs1: rs1, Rs2: rs2, Imm: imm}
	switch funct3 {
	case Funct3SB:
		s.Mnemonic = SB
	case Funct3SH:
		s.Mnemonic = SH
	case Funct3SW:
		s.Mnemonic = SW
	default:
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized store funct3=0b%03b", funct3)
	}
	return s, nil
}

func decodeBranch(word, pc, funct3, rs1, rs2 uint32) (Instruction, *Trap) {
	imm11 := (word >> 7) & 0x1
	imm4_1 := (word >> 8) & 0xF
	imm10_5 := (word >> 25) & 0x3F
	imm12 := (word >> 31) & 0x1
	imm := (imm12 << 12) | (imm11 << 11) | (imm10_5 << 5) | (imm4_1 << 1)

	b := Instruction{Rs1: rs1, Rs2: rs2, Imm: imm}
	switch funct3 {
	case Funct3BEQ:
		b.Mnemonic = BEQ
	case Funct3BNE:
		b.Mnemonic = BNE
	case Funct3BLT:
		b.Mnemonic = BLT
	case Funct3BGE:
		b.Mnemonic = BGE
	case Funct3BLTU:
		b.Mnemonic = BLTU
	case Funct3BGEU:
		b.Mnemonic = BGEU
	default:
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized branch funct3=0b%03b", funct3)
	}
	return b, nil
}

func decodeJALR(word, pc, rd, funct3, rs1 uint32) (Instruction, *Trap) {
	if funct3 != 0 {
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized JALR funct3=0b%03b", funct3)
	}
	imm12 := word >> 20 & Imm12Mask
	// Fast-path sanity check: the runtime check after adding rs1 is the
	// authoritative one (§4.1), since this one can't see rs1's value.
	if signExtend12(imm12)%4 != 0 {
		return Instruction{}, newTrap(InstructionAddressMisaligned, pc, "JALR immediate 0x%03x is not a multiple of 4", imm12)
	}
	return iInstr(JALR, rd, rs1, imm12), nil
}

func decodeJAL(word, pc, rd uint32) (Instruction, *Trap) {
	imm20 := (word >> 31) & 0x1
	imm10_1 := (word >> 21) & 0x3FF
	imm11 := (word >> 20) & 0x1
	imm19_12 := (word >> 12) & 0xFF
	imm := (imm20 << 20) | (imm19_12 << 12) | (imm11 << 11) | (imm10_1 << 1)
	return Instruction{Mnemonic: JAL, Rd: rd, Imm: imm}, nil
}

func decodeSystem(word, pc, rd, funct3, rs1 uint32) (Instruction, *Trap) {
	csrAddr := word >> 20 & Imm12Mask
	switch funct3 {
	case Funct3CSRRW:
		return iInstr(CSRRW, rd, rs1, csrAddr), nil
	case Funct3CSRRS:
		return iInstr(CSRRS, rd, rs1, csrAddr), nil
	case Funct3CSRRC:
		return iInstr(CSRRC, rd, rs1, csrAddr), nil
	case Funct3CSRRWI:
		return iInstr(CSRRWI, rd, rs1, csrAddr), nil
	case Funct3CSRRSI:
		return iInstr(CSRRSI, rd, rs1, csrAddr), nil
	case Funct3CSRRCI:
		return iInstr(CSRRCI, rd, rs1, csrAddr), nil
	default:
		return Instruction{}, newTrap(IllegalInstruction, pc, "unrecognized SYSTEM funct3=0b%03b", funct3)
	}
}
