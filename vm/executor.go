package vm

// execute dispatches a decoded Instruction to the handler for its
// Mnemonic and applies its effects to registers, memory, CSRs and PC.
// All arithmetic below is modulo 2^32 (plain uint32 overflow); signed
// comparisons and shifts reinterpret the 32-bit value as two's
// complement via asSigned, per §4.2.
func (p *Processor) execute(inst Instruction) *Trap {
	switch inst.Mnemonic {
	case ADD, SUB, SLL, SLT, SLTU, XOR, SRL, SRA, OR, AND:
		return p.executeRType(inst)
	case ADDI, SLTI, SLTIU, XORI, ORI, ANDI, SLLI, SRLI, SRAI:
		return p.executeIType(inst)
	case LB, LH, LW, LBU, LHU:
		return p.executeLoad(inst)
	case SB, SH, SW:
		return p.executeStore(inst)
	case BEQ, BNE, BLT, BGE, BLTU, BGEU:
		return p.executeBranch(inst)
	case JAL:
		return p.executeJAL(inst)
	case JALR:
		return p.executeJALR(inst)
	case LUI:
		p.Regs.Set(inst.Rd, inst.Imm)
		return nil
	case AUIPC:
		p.Regs.Set(inst.Rd, p.PC+inst.Imm)
		return nil
	case CSRRW, CSRRS, CSRRC, CSRRWI, CSRRSI, CSRRCI:
		return p.executeCSR(inst)
	default:
		return newTrap(IllegalInstruction, p.PC, "executor has no handler for mnemonic %s", inst.Mnemonic)
	}
}

func (p *Processor) executeRType(inst Instruction) *Trap {
	r := inst.AsR()
	a := p.Regs.Get(r.Rs1)
	b := p.Regs.Get(r.Rs2)

	var result uint32
	switch inst.Mnemonic {
	case ADD:
		result = a + b
	case SUB:
		result = a - b
	case SLL:
		result = a << (b & Shamt5Mask)
	case SRL:
		result = a >> (b & Shamt5Mask)
	case SRA:
		result = uint32(asSigned(a) >> (b & Shamt5Mask))
	case SLT:
		result = boolToWord(asSigned(a) < asSigned(b))
	case SLTU:
		result = boolToWord(a < b)
	case XOR:
		result = a ^ b
	case OR:
		result = a | b
	case AND:
		result = a & b
	}
	p.Regs.Set(r.Rd, result)
	return nil
}

func (p *Processor) executeIType(inst Instruction) *Trap {
	i := inst.AsI()
	a := p.Regs.Get(i.Rs1)

	var result uint32
	switch inst.Mnemonic {
	case ADDI:
		result = a + signExtend12(i.Imm)
	case SLTI:
		result = boolToWord(asSigned(a) < asSigned(signExtend12(i.Imm)))
	case SLTIU:
		result = boolToWord(a < signExtend12(i.Imm))
	case XORI:
		result = a ^ signExtend12(i.Imm)
	case ORI:
		result = a | signExtend12(i.Imm)
	case ANDI:
		result = a & signExtend12(i.Imm)
	case SLLI:
		result = a << (i.Imm & Shamt5Mask)
	case SRLI:
		result = a >> (i.Imm & Shamt5Mask)
	case SRAI:
		result = uint32(asSigned(a) >> (i.Imm & Shamt5Mask))
	}
	p.Regs.Set(i.Rd, result)
	return nil
}

func (p *Processor) executeLoad(inst Instruction) *Trap {
	i := inst.AsI()
	addr := p.Regs.Get(i.Rs1) + signExtend12(i.Imm)

	switch inst.Mnemonic {
	case LB:
		v, err := p.Mem.ReadByte(addr)
		if err != nil {
			return newTrap(LoadAccessFault, p.PC, "%s", err)
		}
		p.Regs.Set(i.Rd, signExtend(uint32(v), 8))
	case LBU:
		v, err := p.Mem.ReadByte(addr)
		if err != nil {
			return newTrap(LoadAccessFault, p.PC, "%s", err)
		}
		p.Regs.Set(i.Rd, uint32(v))
	case LH:
		v, err := p.Mem.ReadHalfword(addr)
		if err != nil {
			return newTrap(LoadAccessFault, p.PC, "%s", err)
		}
		p.Regs.Set(i.Rd, signExtend(uint32(v), 16))
	case LHU:
		v, err := p.Mem.ReadHalfword(addr)
		if err != nil {
			return newTrap(LoadAccessFault, p.PC, "%s", err)
		}
		p.Regs.Set(i.Rd, uint32(v))
	case LW:
		v, err := p.Mem.ReadWord(addr)
		if err != nil {
			return newTrap(LoadAccessFault, p.PC, "%s", err)
		}
		p.Regs.Set(i.Rd, v)
	}
	return nil
}

func (p *Processor) executeStore(inst Instruction) *Trap {
	s := inst.AsS()
	addr := p.Regs.Get(s.Rs1) + signExtend12(s.Imm)
	value := p.Regs.Get(s.Rs2)

	var err error
	switch inst.Mnemonic {
	case SB:
		err = p.Mem.WriteByte(addr, uint8(value))
	case SH:
		err = p.Mem.WriteHalfword(addr, uint16(value))
	case SW:
		err = p.Mem.WriteWord(addr, value)
	}
	if err != nil {
		return newTrap(StoreAccessFault, p.PC, "%s", err)
	}
	return nil
}

func (p *Processor) executeBranch(inst Instruction) *Trap {
	b := inst.AsB()
	a := p.Regs.Get(b.Rs1)
	c := p.Regs.Get(b.Rs2)

	var taken bool
	switch inst.Mnemonic {
	case BEQ:
		taken = a == c
	case BNE:
		taken = a != c
	case BLT:
		taken = asSigned(a) < asSigned(c)
	case BGE:
		taken = asSigned(a) >= asSigned(c)
	case BLTU:
		taken = a < c
	case BGEU:
		taken = a >= c
	}
	if !taken {
		return nil
	}

	offset := signExtend13(b.Imm)
	if offset%4 != 0 {
		return newTrap(InstructionAddressMisaligned, p.PC, "taken branch target is not 4-byte aligned (offset=0x%x)", offset)
	}
	p.PC += offset
	p.jumped = true
	return nil
}

func (p *Processor) executeJAL(inst Instruction) *Trap {
	j := inst.AsJ()
	offset := signExtend21(j.Imm)
	target := p.PC + offset
	if target%4 != 0 {
		return newTrap(InstructionAddressMisaligned, p.PC, "JAL target 0x%08x is not 4-byte aligned", target)
	}
	p.Regs.Set(j.Rd, p.PC+4)
	p.PC = target
	p.jumped = true
	return nil
}

func (p *Processor) executeJALR(inst Instruction) *Trap {
	i := inst.AsI()
	target := (p.Regs.Get(i.Rs1) + signExtend12(i.Imm)) &^ 1
	if target%4 != 0 {
		return newTrap(InstructionAddressMisaligned, p.PC, "JALR target 0x%08x is not 4-byte aligned", target)
	}
	p.Regs.Set(i.Rd, p.PC+4)
	p.PC = target
	p.jumped = true
	return nil
}

func (p *Processor) executeCSR(inst Instruction) *Trap {
	i := inst.AsI()
	addr := i.Imm

	old, trap := p.CSR.Read(addr, p.Mode, p.PC)
	if trap != nil {
		return trap
	}

	var newVal uint32
	switch inst.Mnemonic {
	case CSRRW:
		newVal = p.Regs.Get(i.Rs1)
	case CSRRS:
		newVal = old | p.Regs.Get(i.Rs1)
	case CSRRC:
		newVal = old &^ p.Regs.Get(i.Rs1)
	case CSRRWI:
		newVal = i.Rs1 // rs1 field carries the 5-bit zimm for *I variants
	case CSRRSI:
		newVal = old | i.Rs1
	case CSRRCI:
		newVal = old &^ i.Rs1
	}

	if trap := p.CSR.Write(addr, newVal, p.Mode, p.PC); trap != nil {
		return trap
	}
	p.Regs.Set(i.Rd, old)
	return nil
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
