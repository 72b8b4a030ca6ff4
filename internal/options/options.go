// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output .asm file of the disassembly (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	System    string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Speed     int    `flag:"speed" usage:"instructions per second, 0 for unthrottled" default:"700"`
	MaxCycles uint64 `flag:"cycles" usage:"stop after the given number of instructions, 0 for no limit"`
	Seed      uint64 `flag:"seed" usage:"seed of the random number generator, 0 for a random seed"`
	Trace     bool   `flag:"trace" usage:"log every executed instruction"`
	Disasm    bool   `flag:"disasm" usage:"write a disassembly listing instead of running the ROM"`
	Keys      string `flag:"keys" usage:"hex digits of the keys held down during the run"`
	Screen    bool   `flag:"screen" usage:"print the display content after the run"`
	StatsView bool   `flag:"statsview" usage:"start the runtime statistics server"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains disassembly output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// DefaultSpeed is the default instruction rate in instructions per second.
const DefaultSpeed = 700
