// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if msg := validateArgs(args); msg != "" {
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if msg := normalizeOptions(&opts); msg != "" {
		return opts, &UsageError{flags: flags, msg: msg}
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the usage information and all flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order and returns a
// message describing the problem.
func validateArgs(args []string) string {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg)
		}
	}
	return ""
}

// normalizeOptions normalizes and validates option values and returns a
// message describing an invalid value.
func normalizeOptions(opts *options.Program) string {
	opts.System = strings.ToLower(opts.System)
	if opts.System != "" {
		if system, _ := arch.SystemFromString(opts.System); system == "" {
			return fmt.Sprintf("unsupported system: %s. Valid options: %s", opts.System, arch.CHIP8System)
		}
	}

	if opts.Speed < 0 {
		return fmt.Sprintf("invalid speed %d, must not be negative", opts.Speed)
	}

	opts.Keys = strings.ToLower(opts.Keys)
	if i := strings.IndexFunc(opts.Keys, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdef", r)
	}); i >= 0 {
		return fmt.Sprintf("invalid key %q, keys are hex digits 0-f", opts.Keys[i])
	}
	return ""
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file of the disassembly, printed on console if no name given")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions to execute per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after executing the given number of instructions, 0 for no limit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator used by RND, 0 picks a random seed")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction with the register state, implies -debug")
	flags.BoolVar(&opts.Disasm, "disasm", false, "write a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.StringVar(&opts.Keys, "keys", "", "hex digits of the keys held down during the run, for example 5a")
	flags.BoolVar(&opts.Screen, "screen", false, "print the display content after the run")
	flags.BoolVar(&opts.StatsView, "statsview", false, "start a local HTTP server offering runtime statistics")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
