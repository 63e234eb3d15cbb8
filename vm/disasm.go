package vm

import "fmt"

// String renders a decoded Instruction in a textual form resembling
// RISC-V assembly. It exists for diagnostics — test failure messages,
// an external debugger, a trace log — not as part of execution itself.
func (in Instruction) String() string {
	switch in.Mnemonic {
	case ADD, SUB, SLL, SLT, SLTU, XOR, SRL, SRA, OR, AND:
		r := in.AsR()
		return fmt.Sprintf("%s x%d, x%d, x%d", in.Mnemonic, r.Rd, r.Rs1, r.Rs2)
	case ADDI, SLTI, SLTIU, XORI, ORI, ANDI, SLLI, SRLI, SRAI:
		i := in.AsI()
		return fmt.Sprintf("%s x%d, x%d, %d", in.Mnemonic, i.Rd, i.Rs1, int32(signExtend12(i.Imm)))
	case LB, LH, LW, LBU, LHU:
		i := in.AsI()
		return fmt.Sprintf("%s x%d, %d(x%d)", in.Mnemonic, i.Rd, int32(signExtend12(i.Imm)), i.Rs1)
	case SB, SH, SW:
		s := in.AsS()
		return fmt.Sprintf("%s x%d, %d(x%d)", in.Mnemonic, s.Rs2, int32(signExtend12(s.Imm)), s.Rs1)
	case BEQ, BNE, BLT, BGE, BLTU, BGEU:
		b := in.AsB()
		return fmt.Sprintf("%s x%d, x%d, %d", in.Mnemonic, b.Rs1, b.Rs2, int32(signExtend13(b.Imm)))
	case JAL:
		j := in.AsJ()
		return fmt.Sprintf("jal x%d, %d", j.Rd, int32(signExtend21(j.Imm)))
	case JALR:
		i := in.AsI()
		return fmt.Sprintf("jalr x%d, %d(x%d)", i.Rd, int32(signExtend12(i.Imm)), i.Rs1)
	case LUI, AUIPC:
		u := in.AsU()
		return fmt.Sprintf("%s x%d, 0x%x", in.Mnemonic, u.Rd, u.Imm>>12)
	case CSRRW, CSRRS, CSRRC:
		i := in.AsI()
		return fmt.Sprintf("%s x%d, 0x%03x, x%d", in.Mnemonic, i.Rd, i.Imm, i.Rs1)
	case CSRRWI, CSRRSI, CSRRCI:
		i := in.AsI()
		return fmt.Sprintf("%s x%d, 0x%03x, %d", in.Mnemonic, i.Rd, i.Imm, i.Rs1)
	default:
		return fmt.Sprintf("<unknown instruction: mnemonic=%d>", in.Mnemonic)
	}
}
