// Package instruction decodes CHIP-8 opcode words into their operand fields
// and resolves the instruction mnemonic from the retrogolib CHIP-8 opcode table.
package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Size is the size of CHIP-8 instructions in bytes.
const Size = 2

// Instruction is a decoded CHIP-8 opcode word.
type Instruction struct {
	opcode uint16
	ins    *chip8.Instruction
}

// Decode splits the opcode word into its fields and identifies the
// instruction by matching the opcode masks of its first nibble family.
func Decode(opcode uint16) Instruction {
	i := Instruction{opcode: opcode}
	for _, op := range chip8.Opcodes[int(i.Family())] {
		if op.Info.Mask&opcode == op.Info.Value {
			i.ins = op.Instruction
			break
		}
	}
	return i
}

// FromBytes decodes the big endian opcode word stored in data.
func FromBytes(data []byte) (Instruction, bool) {
	if len(data) < Size {
		return Instruction{}, false
	}
	return Decode(uint16(data[0])<<8 | uint16(data[1])), true
}

// Opcode returns the raw opcode word.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// Family returns the high nibble that selects the opcode family.
func (i Instruction) Family() uint8 {
	return uint8(i.opcode >> 12)
}

// X returns the register index encoded in bits 11-8.
func (i Instruction) X() uint8 {
	return uint8((i.opcode & 0x0F00) >> 8)
}

// Y returns the register index encoded in bits 7-4.
func (i Instruction) Y() uint8 {
	return uint8((i.opcode & 0x00F0) >> 4)
}

// N returns the low nibble.
func (i Instruction) N() uint8 {
	return uint8(i.opcode & 0x000F)
}

// KK returns the immediate byte encoded in the low byte.
func (i Instruction) KK() uint8 {
	return uint8(i.opcode & 0x00FF)
}

// NNN returns the 12-bit address encoded in the low bits.
func (i Instruction) NNN() uint16 {
	return i.opcode & 0x0FFF
}

// IsNil returns true if the opcode does not match any known instruction.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.Call
}

// IsJump returns true if the instruction is a jump instruction.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.Jp
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.Ret
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// ChangesFlow returns true if the instruction sets the instruction pointer
// itself instead of advancing to the following instruction.
func (i Instruction) ChangesFlow() bool {
	return i.IsJump() || i.IsCall() || i.IsReturn() || i.IsSkip()
}

// String returns the instruction in assembly notation, for example "ld V2, $34".
func (i Instruction) String() string {
	if i.ins == nil {
		return fmt.Sprintf(".word $%04X", i.opcode)
	}
	if params := formatParams(i.ins.Name, i.opcode); params != "" {
		return fmt.Sprintf("%s %s", i.ins.Name, params)
	}
	return i.ins.Name
}
