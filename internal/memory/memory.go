// Package memory implements the CHIP-8 address space and return stack.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, holds the hex font at FontAddress
//	0x200-0xFFF: User program space (3584 bytes)
//
// The return stack is kept outside of the addressable memory.
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address where programs are loaded and start execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest ROM that fits into program space.
	MaxProgramSize = Size - ProgramStart

	// StackSize is the number of return addresses the stack can hold.
	StackSize = 16
)

var (
	// ErrAddressOutOfRange is returned for accesses outside of the address space.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrStackOverflow is returned when a subroutine call exceeds the stack size.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Memory holds the addressable storage and the return stack.
type Memory struct {
	storage [Size]byte
	stack   [StackSize]uint16
}

// New returns a zero filled memory.
func New() *Memory {
	return &Memory{}
}

// LoadROM copies the ROM content into program space starting at ProgramStart.
// Content that does not fit is dropped. It returns the number of bytes copied.
func (m *Memory) LoadROM(rom []byte) int {
	return copy(m.storage[ProgramStart:], rom)
}

// Range returns a read-only view of the bytes in [start, end).
func (m *Memory) Range(start, end uint16) ([]byte, error) {
	if end > Size || start > end {
		return nil, fmt.Errorf("reading range $%04X-$%04X: %w", start, end, ErrAddressOutOfRange)
	}
	return m.storage[start:end:end], nil
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) (byte, error) {
	if address >= Size {
		return 0, fmt.Errorf("reading address $%04X: %w", address, ErrAddressOutOfRange)
	}
	return m.storage[address], nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address uint16, value byte) error {
	if address >= Size {
		return fmt.Errorf("writing address $%04X: %w", address, ErrAddressOutOfRange)
	}
	m.storage[address] = value
	return nil
}

// Word returns the big endian 16-bit word stored at the given address.
func (m *Memory) Word(address uint16) (uint16, error) {
	if address >= Size-1 {
		return 0, fmt.Errorf("fetching word at $%04X: %w", address, ErrAddressOutOfRange)
	}
	return uint16(m.storage[address])<<8 | uint16(m.storage[address+1]), nil
}

// StackEntry returns the return address stored in the given stack slot.
func (m *Memory) StackEntry(index uint8) (uint16, error) {
	if int(index) >= StackSize {
		return 0, fmt.Errorf("reading stack slot %d: %w", index, ErrStackOverflow)
	}
	return m.stack[index], nil
}

// SetStackEntry stores a return address in the given stack slot.
func (m *Memory) SetStackEntry(index uint8, value uint16) error {
	if int(index) >= StackSize {
		return fmt.Errorf("writing stack slot %d: %w", index, ErrStackOverflow)
	}
	m.stack[index] = value
	return nil
}

