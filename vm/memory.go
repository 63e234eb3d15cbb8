package vm

import "fmt"

// Memory is the capability interface the execution engine depends on. Any
// backing store — the zero-filled NullMemory below, ByteMemory, or a
// caller's own implementation — can drive a Processor as long as it
// satisfies this surface. Dynamic dispatch here (rather than compiling the
// engine against one concrete store) is what lets the same executor run
// against a real image or a throwaway store for arithmetic unit tests.
//
// Byte/halfword/word data access is little-endian. Instruction fetch and
// the matching write-side helper used by loaders are big-endian — an
// explicit, documented choice of this core (§3), not a RISC-V convention;
// a host-side loader must write instruction words with WriteInst so that
// ReadInst reassembles them correctly.
type Memory interface {
	Len() uint32

	ReadByte(addr uint32) (uint8, error)
	ReadHalfword(addr uint32) (uint16, error)
	ReadWord(addr uint32) (uint32, error)
	ReadInst(addr uint32) (uint32, error)

	WriteByte(addr uint32, value uint8) error
	WriteHalfword(addr uint32, value uint16) error
	WriteWord(addr uint32, value uint32) error
	WriteInst(addr uint32, value uint32) error
}

// NullMemory is a zero-filled, write-ignoring backing store of a
// configured size. In-range reads always return 0 (or, for ReadInst, a
// word of zero bits — the all-zero 32-bit word happens to be an illegal
// RV32I encoding, which is a convenient property for tests that fetch past
// whatever they actually set up). In-range writes are silently accepted
// and discarded; out-of-range accesses return an error, as in ByteMemory.
// It exists so arithmetic/decoder unit tests can drive a
// Processor without allocating a real backing array.
type NullMemory struct {
	size uint32
}

// NewNullMemory returns a NullMemory of the given byte length.
func NewNullMemory(size uint32) *NullMemory {
	return &NullMemory{size: size}
}

func (m *NullMemory) Len() uint32 { return m.size }

func (m *NullMemory) checkBounds(addr uint32, width uint32) error {
	if addr >= m.size || width > m.size-addr {
		return fmt.Errorf("memory: address 0x%08x out of range (size=0x%x)", addr, m.size)
	}
	return nil
}

func (m *NullMemory) ReadByte(addr uint32) (uint8, error) {
	if err := m.checkBounds(addr, 1); err != nil {
		return 0, err
	}
	return 0, nil
}

func (m *NullMemory) ReadHalfword(addr uint32) (uint16, error) {
	if err := m.checkBounds(addr, 2); err != nil {
		return 0, err
	}
	return 0, nil
}

func (m *NullMemory) ReadWord(addr uint32) (uint32, error) {
	if err := m.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	return 0, nil
}

func (m *NullMemory) ReadInst(addr uint32) (uint32, error) {
	if err := m.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	return 0, nil
}

func (m *NullMemory) WriteByte(addr uint32, _ uint8) error {
	return m.checkBounds(addr, 1)
}

func (m *NullMemory) WriteHalfword(addr uint32, _ uint16) error {
	return m.checkBounds(addr, 2)
}

func (m *NullMemory) WriteWord(addr uint32, _ uint32) error {
	return m.checkBounds(addr, 4)
}

func (m *NullMemory) WriteInst(addr uint32, _ uint32) error {
	return m.checkBounds(addr, 4)
}

// ByteMemory is a straight byte-array-backed implementation of Memory, the
// one a real run loads a program image into.
type ByteMemory struct {
	bytes []byte
}

// NewByteMemory allocates a zero-filled ByteMemory of the given size.
func NewByteMemory(size uint32) *ByteMemory {
	return &ByteMemory{bytes: make([]byte, size)}
}

func (m *ByteMemory) Len() uint32 { return uint32(len(m.bytes)) }

func (m *ByteMemory) checkBounds(addr uint32, width uint32) error {
	size := uint32(len(m.bytes))
	if addr >= size || width > size-addr {
		return fmt.Errorf("memory: address 0x%08x out of range (size=0x%x)", addr, size)
	}
	return nil
}

func (m *ByteMemory) ReadByte(addr uint32) (uint8, error) {
	if err := m.checkBounds(addr, 1); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

func (m *ByteMemory) ReadHalfword(addr uint32) (uint16, error) {
	if err := m.checkBounds(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m.bytes[addr]) | uint16(m.bytes[addr+1])<<8, nil
}

func (m *ByteMemory) ReadWord(addr uint32) (uint32, error) {
	if err := m.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	return uint32(m.bytes[addr]) |
		uint32(m.bytes[addr+1])<<8 |
		uint32(m.bytes[addr+2])<<16 |
		uint32(m.bytes[addr+3])<<24, nil
}

func (m *ByteMemory) ReadInst(addr uint32) (uint32, error) {
	if err := m.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	return uint32(m.bytes[addr])<<24 |
		uint32(m.bytes[addr+1])<<16 |
		uint32(m.bytes[addr+2])<<8 |
		uint32(m.bytes[addr+3]), nil
}

func (m *ByteMemory) WriteByte(addr uint32, value uint8) error {
	if err := m.checkBounds(addr, 1); err != nil {
		return err
	}
	m.bytes[addr] = value
	return nil
}

func (m *ByteMemory) WriteHalfword(addr uint32, value uint16) error {
	if err := m.checkBounds(addr, 2); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	return nil
}

func (m *ByteMemory) WriteWord(addr uint32, value uint32) error {
	if err := m.checkBounds(addr, 4); err != nil {
		return err
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	m.bytes[addr+2] = byte(value >> 16)
	m.bytes[addr+3] = byte(value >> 24)
	return nil
}

func (m *ByteMemory) WriteInst(addr uint32, value uint32) error {
	if err := m.checkBounds(addr, 4); err != nil {
		return err
	}
	m.bytes[addr] = byte(value >> 24)
	m.bytes[addr+1] = byte(value >> 16)
	m.bytes[addr+2] = byte(value >> 8)
	m.bytes[addr+3] = byte(value)
	return nil
}
