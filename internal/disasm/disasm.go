// Package disasm implements a CHIP-8 disassembler that follows the execution
// flow of a ROM to separate code from data and writes an assembly listing.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options defines options to control the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
}

// NewOptions returns a new options instance with default options.
func NewOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options

	rom     []byte
	offsets []Offset // one entry per ROM byte, index 0 maps to the program start

	branchDestinations set.Set[uint16] // set of all addresses that are branched to or referenced

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the ROM content. Bytes that do not fit
// into the program memory are ignored.
func New(logger *log.Logger, rom []byte, options Options) *Disasm {
	size := min(len(rom), memory.MaxProgramSize)
	dis := &Disasm{
		logger:              logger,
		options:             options,
		rom:                 rom[:size],
		offsets:             make([]Offset, size),
		branchDestinations:  set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	for i := range dis.offsets {
		dis.offsets[i].Address = memory.ProgramStart + uint16(i)
	}
	return dis
}

// Process disassembles the ROM and writes the listing.
func (dis *Disasm) Process(ctx context.Context, writer io.Writer) error {
	if len(dis.offsets) == 0 {
		return nil
	}

	dis.offsets[0].Label = "Start"
	dis.addAddressToParse(memory.ProgramStart, 0, false)

	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processData()
	dis.processJumpDestinations()

	if err := dis.write(writer); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Offsets returns the disassembly information of all ROM bytes.
func (dis *Disasm) Offsets() []Offset {
	return dis.offsets
}

// offsetInfo returns the offset of the address or nil if the address is
// outside of the ROM content.
func (dis *Disasm) offsetInfo(address uint16) *Offset {
	if address < memory.ProgramStart {
		return nil
	}
	index := int(address - memory.ProgramStart)
	if index >= len(dis.offsets) {
		return nil
	}
	return &dis.offsets[index]
}

// addAddressToParse adds an address to the list to be processed if the address
// has not been processed yet.
func (dis *Disasm) addAddressToParse(address, from uint16, isABranchDestination bool) {
	offsetInfo := dis.offsetInfo(address)
	if offsetInfo == nil {
		return
	}

	if isABranchDestination {
		offsetInfo.SetType(BranchDestination)
		offsetInfo.BranchFrom = append(offsetInfo.BranchFrom, from)
		dis.branchDestinations.Add(address)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// addDataReference marks the address that an instruction loads into the
// index register.
func (dis *Disasm) addDataReference(address, from uint16) {
	offsetInfo := dis.offsetInfo(address)
	if offsetInfo == nil {
		return // font or interpreter area
	}
	offsetInfo.SetType(DataReference)
	offsetInfo.BranchFrom = append(offsetInfo.BranchFrom, from)
	dis.branchDestinations.Add(address)
}

func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for len(dis.offsetsToParse) > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("following execution flow: %w", ctx.Err())
		default:
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}
	return nil
}

// processOffset decodes the instruction at the address and queues the
// addresses that execution can continue at.
func (dis *Disasm) processOffset(address uint16) {
	offsetInfo := dis.offsetInfo(address)
	if offsetInfo.IsType(CodeOffset) {
		return // second byte of an instruction, handled with the jump destinations
	}

	index := int(address - memory.ProgramStart)
	ins, ok := instruction.FromBytes(dis.rom[index:])
	if !ok || ins.IsNil() || ins.Opcode() == 0 {
		// unknown opcodes and the halt opcode end the flow
		offsetInfo.SetType(DataOffset)
		return
	}

	second := dis.offsetInfo(address + 1)
	if second.IsType(CodeOffset) {
		offsetInfo.SetType(DataOffset)
		offsetInfo.Comment = fmt.Sprintf("overlaps instruction at $%04X", second.Address)
		return
	}

	offsetInfo.SetType(CodeOffset)
	offsetInfo.Data = dis.rom[index : index+instruction.Size]
	offsetInfo.Code = ins.String()
	offsetInfo.instruction = ins
	second.SetType(CodeOffset)

	dis.handleControlFlow(address, offsetInfo, ins)
}

// handleControlFlow processes control flow based on instruction type.
func (dis *Disasm) handleControlFlow(address uint16, offsetInfo *Offset, ins instruction.Instruction) {
	next := address + instruction.Size

	if !ins.ChangesFlow() {
		if ins.Family() == 0xA {
			dis.addDataReference(ins.NNN(), address)
		}
		dis.addAddressToParse(next, address, false)
		return
	}

	// a return ends the execution flow, there is nothing to follow
	switch {
	case ins.IsJump() && ins.Family() == 0x1:
		dis.addAddressToParse(ins.NNN(), address, true)

	case ins.IsJump():
		offsetInfo.Comment = "indirect jump"
		dis.logger.Debug("Indirect jump target can not be followed", log.Hex("address", address))

	case ins.IsCall():
		dis.addAddressToParse(ins.NNN(), address, true)
		if target := dis.offsetInfo(ins.NNN()); target != nil {
			target.SetType(CallDestination)
		}
		dis.addAddressToParse(next, address, false)

	case ins.IsSkip():
		dis.addAddressToParse(next, address, false)
		dis.addAddressToParse(next+instruction.Size, address, false)
	}
}

// processData marks all bytes that were not reached by the execution flow as data.
func (dis *Disasm) processData() {
	for i := range dis.offsets {
		offsetInfo := &dis.offsets[i]
		if !offsetInfo.IsType(CodeOffset) {
			offsetInfo.SetType(DataOffset)
		}
	}
}
