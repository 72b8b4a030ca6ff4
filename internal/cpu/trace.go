package cpu

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/instruction"
)

// TraceFunc is called with the state of the CPU before an instruction is executed.
type TraceFunc func(Trace)

// Trace describes an instruction that is about to be executed.
type Trace struct {
	Address     uint16
	Instruction instruction.Instruction
	State       State
}

// String returns the trace formatted as a single disassembly line.
func (t Trace) String() string {
	return fmt.Sprintf("%04X  %04X  %-18s %s", t.Address, t.Instruction.Opcode(), t.Instruction, t.State)
}

// State is a snapshot of all CPU registers.
type State struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	SP         uint8
	DelayTimer uint8
	SoundTimer uint8
}

// State returns a snapshot of the current register values.
func (c *CPU) State() State {
	s := State{
		I:          c.i.Get(),
		PC:         c.pc.Get(),
		SP:         c.sp.Get(),
		DelayTimer: c.delay.Get(),
		SoundTimer: c.sound.Get(),
	}
	for index := range c.v {
		s.V[index] = c.v[index].Get()
	}
	return s
}

// String returns the register values in a compact form.
func (s State) String() string {
	var sb strings.Builder
	for index, value := range s.V {
		fmt.Fprintf(&sb, "V%X=%02X ", index, value)
	}
	fmt.Fprintf(&sb, "I=%04X PC=%04X SP=%02X DT=%02X ST=%02X", s.I, s.PC, s.SP, s.DelayTimer, s.SoundTimer)
	return sb.String()
}
