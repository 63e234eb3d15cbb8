package vm

import "time"

// Processor owns the architectural state of a single hart: the register
// file, the program counter, the current privilege mode, the CSR file and
// a Memory implementation. It drives the fetch -> decode -> execute ->
// advance cycle one tick at a time; there is no concurrency between ticks
// and no concurrency between harts (§5 — this core emulates exactly one).
type Processor struct {
	Regs RegisterFile
	PC   uint32
	Mode Mode
	CSR  CSRFile
	Mem  Memory

	// jumped is tick-local transient state: it suppresses the default
	// PC+=4 advance when a taken branch or jump already redirected PC
	// during the current tick. It is always cleared before the next tick
	// begins, per §3.
	jumped bool

	// tickInterval paces Run with a fixed sleep between ticks, for a host
	// that wants to watch execution progress rather than run flat out.
	// It sits outside the tick itself and adds no ordering guarantees
	// beyond wall-clock delay (§5).
	tickInterval time.Duration
}

// NewProcessor constructs a Processor over the given Memory with zeroed
// architectural state, mode Machine, per §4.2.
func NewProcessor(mem Memory) *Processor {
	return &Processor{
		Mem:  mem,
		Mode: Machine,
	}
}

// SetPC configures the starting program counter. new_pc must be 4-aligned;
// an unaligned value here is a configuration error made by the host, not
// a trap raised by the emulated program, so it panics rather than
// returning a Trap — there is no instruction context to attach one to.
func (p *Processor) SetPC(pc uint32) {
	if pc%4 != 0 {
		panic("vm: SetPC requires a 4-byte-aligned address")
	}
	p.PC = pc
}

// SetTickInterval configures an optional wall-clock pause applied between
// ticks by Run. A zero duration (the default) runs flat out.
func (p *Processor) SetTickInterval(d time.Duration) {
	p.tickInterval = d
}

// Load writes a sequence of 32-bit instruction words into memory starting
// at base, using the big-endian instruction encoding (§3, §4.2). base
// must be 4-aligned; like SetPC, misconfiguration here is a host error,
// not a trap.
func (p *Processor) Load(base uint32, words []uint32) error {
	if base%4 != 0 {
		panic("vm: Load requires a 4-byte-aligned base address")
	}
	for i, w := range words {
		addr := base + uint32(i)*InstructionSize
		if err := p.Mem.WriteInst(addr, w); err != nil {
			return err
		}
	}
	return nil
}

// Tick executes exactly one fetch/decode/execute/advance cycle, per the
// algorithm in §4.2. It returns a non-nil Trap when the cycle could not
// complete; the caller (Run, or a host driving ticks itself) decides
// whether that trap is fatal.
func (p *Processor) Tick() *Trap {
	defer func() { p.jumped = false }()

	if uint64(p.PC)+InstructionSize > uint64(p.Mem.Len()) {
		return newTrap(InstructionAccessFault, p.PC, "fetch of 4 bytes at pc=0x%08x would exceed memory of size 0x%x", p.PC, p.Mem.Len())
	}

	word, err := p.Mem.ReadInst(p.PC)
	if err != nil {
		return newTrap(InstructionAccessFault, p.PC, "%s", err)
	}

	inst, trap := Decode(word, p.PC)
	if trap != nil {
		return trap
	}

	if trap := p.execute(inst); trap != nil {
		return trap
	}

	if !p.jumped {
		p.PC += InstructionSize
	}
	return nil
}

// Run ticks the processor until a trap fires, returning that trap. Every
// trap in this core is terminal: there is no interrupt controller and no
// trap delegation (§1 non-goals), so the loop always stops on the first
// one.
func (p *Processor) Run() *Trap {
	for {
		if trap := p.Tick(); trap != nil {
			return trap
		}
		if p.tickInterval > 0 {
			time.Sleep(p.tickInterval)
		}
	}
}

// RunUpTo behaves like Run but also stops after maxTicks ticks without a
// trap, returning nil in that case. This is a host-level convenience for
// bounding runaway programs under test; it has no ISA meaning and is not
// itself a trap.
func (p *Processor) RunUpTo(maxTicks uint64) *Trap {
	var n uint64
	for n < maxTicks {
		if trap := p.Tick(); trap != nil {
			return trap
		}
		if p.tickInterval > 0 {
			time.Sleep(p.tickInterval)
		}
		n++
	}
	return nil
}
