package disasm

import (
	"fmt"
	"slices"
)

const (
	dataNaming  = "_data_%04x"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations processes all jump destinations and updates the callers with
// the generated jump destination label name.
func (dis *Disasm) processJumpDestinations() {
	branchDestinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		branchDestinations = append(branchDestinations, dest)
	}
	slices.Sort(branchDestinations)

	for _, address := range branchDestinations {
		offsetInfo := dis.offsetInfo(address)

		// if the offset is marked as code but does not have opcode bytes, the jump destination
		// is inside the second byte of an instruction.
		if offsetInfo.IsType(CodeOffset) && len(offsetInfo.Data) == 0 {
			if !offsetInfo.IsType(BranchDestination) {
				continue // data references into an instruction keep their address
			}
			dis.handleJumpIntoInstruction(address)
		}

		name := offsetInfo.Label
		if name == "" {
			switch {
			case offsetInfo.IsType(CallDestination):
				name = fmt.Sprintf(funcNaming, address)
			case offsetInfo.IsType(BranchDestination):
				name = fmt.Sprintf(labelNaming, address)
			default:
				name = fmt.Sprintf(dataNaming, address)
			}
			offsetInfo.Label = name
		}

		for _, from := range offsetInfo.BranchFrom {
			reference := dis.offsetInfo(from)
			reference.BranchingTo = name
			if reference.IsType(CodeOffset) {
				reference.Code = referenceCode(reference, name)
			}
		}
	}
}

// referenceCode returns the instruction code with the address parameter
// replaced by the label name.
func referenceCode(offsetInfo *Offset, name string) string {
	ins := offsetInfo.instruction
	if ins.Family() == 0xA {
		return fmt.Sprintf("%s I, %s", ins.Name(), name)
	}
	return fmt.Sprintf("%s %s", ins.Name(), name)
}

// handleJumpIntoInstruction converts an instruction that has a jump destination label inside
// its second opcode byte into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	second := dis.offsetInfo(address)
	second.ClearType(CodeOffset)
	second.SetType(DataOffset)

	offsetInfo := dis.offsetInfo(address - 1)
	offsetInfo.Comment = "branch into instruction detected: " + offsetInfo.Code
	offsetInfo.Code = ""
	offsetInfo.Data = nil
	offsetInfo.ClearType(CodeOffset)
	offsetInfo.SetType(DataOffset | CodeAsData)
}
