package vm

import "fmt"

// TrapKind enumerates the synchronous exceptions this core can raise. This
// core implements no interrupt controller and no trap delegation, so a trap
// is always fatal to the driver loop that receives it.
type TrapKind int

const (
	// IllegalInstruction covers unknown opcode/funct combinations, reserved
	// encodings, and CSR accesses denied by privilege.
	IllegalInstruction TrapKind = iota

	// InstructionAddressMisaligned fires when a taken branch or jump (or a
	// JALR target) is not a multiple of 4.
	InstructionAddressMisaligned

	// InstructionAccessFault fires when a fetch would read past the end of
	// memory.
	InstructionAccessFault

	// LoadAccessFault and StoreAccessFault are raised by the executor when
	// the backing Memory implementation returns an error from a load or
	// store (for the built-in stores: an out-of-range address).
	LoadAccessFault
	StoreAccessFault
)

// String gives each trap kind the name used throughout the RISC-V
// privileged spec's cause table.
func (k TrapKind) String() string {
	switch k {
	case IllegalInstruction:
		return "IllegalInstruction"
	case InstructionAddressMisaligned:
		return "InstructionAddressMisaligned"
	case InstructionAccessFault:
		return "InstructionAccessFault"
	case LoadAccessFault:
		return "LoadAccessFault"
	case StoreAccessFault:
		return "StoreAccessFault"
	default:
		return "UnknownTrap"
	}
}

// Trap is the typed error returned by decode, CSR access and the executor
// whenever an instruction cannot complete. It satisfies the error
// interface so it can be propagated and wrapped like any other error, but
// callers that need to branch on cause should type-assert or use
// errors.As against *Trap rather than string-matching Error().
type Trap struct {
	Kind TrapKind
	PC   uint32 // address of the instruction that raised the trap
	Msg  string // human-readable detail, not part of trap identity
}

func (t *Trap) Error() string {
	if t.Msg != "" {
		return fmt.Sprintf("%s at pc=0x%08x: %s", t.Kind, t.PC, t.Msg)
	}
	return fmt.Sprintf("%s at pc=0x%08x", t.Kind, t.PC)
}

// newTrap builds a Trap; pc is supplied by the caller (Decode receives it as
// a parameter, the executor uses the processor's current PC).
func newTrap(kind TrapKind, pc uint32, format string, args ...any) *Trap {
	return &Trap{Kind: kind, PC: pc, Msg: fmt.Sprintf(format, args...)}
}
