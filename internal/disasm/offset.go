package disasm

import "github.com/retroenv/retrochip8/internal/instruction"

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	DataOffset
	CodeAsData        // instruction that is the target of a branch into its second byte
	BranchDestination // opcode is the destination of a jump
	CallDestination   // opcode is the destination of a call, indicating a subroutine
	DataReference     // address is loaded into the index register
)

// Offset contains the disassembly information of a single ROM byte.
// Only the first byte of an instruction carries its opcode bytes.
type Offset struct {
	Address uint16
	Type    OffsetType
	Data    []byte
	Code    string
	Label   string
	Comment string

	BranchFrom  []uint16 // addresses of instructions referencing this offset
	BranchingTo string   // label name of the referenced offset

	instruction instruction.Instruction
}

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType unsets the type of the offset.
func (o *Offset) ClearType(typ OffsetType) {
	o.Type &= ^typ
}
