// Package emulator orchestrates the workflow of running a ROM.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Emulator orchestrates the complete run workflow.
type Emulator struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// Result describes the machine state after a run.
type Result struct {
	State  cpu.State
	Cycles uint64
	Halted bool // halt opcode reached, false if the cycle limit stopped the run
	Screen *display.Framebuffer
	Drawn  bool // the program cleared or drew to the screen
}

// New creates a new emulator.
func New(logger *log.Logger) *Emulator {
	return &Emulator{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline: detect the system, load the ROM and
// execute it until it halts, the cycle limit is reached or the context is
// cancelled.
func (e *Emulator) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	if _, err := e.detector.Detect(opts); err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	rom, err := e.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	return e.ExecuteROM(ctx, rom, opts)
}

// ExecuteROM runs a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (e *Emulator) ExecuteROM(ctx context.Context, rom *loader.ROM, opts options.Program) (*Result, error) {
	mem := memory.New()
	mem.LoadFont()
	loaded := mem.LoadROM(rom.Data)
	if loaded < rom.Size() {
		e.logger.Warn("ROM exceeds the program memory and was truncated",
			log.Int("size", rom.Size()),
			log.Int("loaded", loaded))
	}

	screen := display.New()
	keys := keypad.New()
	for _, key := range opts.Keys {
		digit, err := strconv.ParseUint(string(key), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parsing key %q: %w", key, err)
		}
		keys.Press(uint8(digit))
	}
	cpuOptions := []cpu.Option{
		cpu.WithDisplay(screen),
		cpu.WithKeypad(keys),
		cpu.WithRandom(randomSource(opts.Seed)),
	}
	if opts.Trace {
		cpuOptions = append(cpuOptions, cpu.WithTrace(e.traceInstruction))
	}

	c := cpu.New(e.logger, mem, config.CPUConfig(opts), cpuOptions...)

	e.printInfo(opts, rom)

	err := c.Run(ctx)
	result := &Result{
		State:  c.State(),
		Cycles: c.Cycles(),
		Halted: err == nil,
		Screen: screen,
		Drawn:  screen.Dirty(),
	}

	switch {
	case err == nil:
		e.logger.Info("Halt opcode reached",
			log.Hex("address", result.State.PC),
			log.String("cycles", strconv.FormatUint(result.Cycles, 10)))
	case errors.Is(err, cpu.ErrCycleLimit):
		e.logger.Info("Cycle limit reached",
			log.Hex("address", result.State.PC),
			log.String("cycles", strconv.FormatUint(result.Cycles, 10)))
	default:
		return result, fmt.Errorf("running ROM: %w", err)
	}
	return result, nil
}

// PrintState logs the register values of a finished run.
func PrintState(logger *log.Logger, opts options.Program, result *Result) {
	if opts.Quiet {
		return
	}
	logger.Info("Registers", log.Stringer("state", result.State))
}

func (e *Emulator) traceInstruction(trace cpu.Trace) {
	e.logger.Debug("Executing",
		log.Hex("address", trace.Address),
		log.Hex("opcode", trace.Instruction.Opcode()),
		log.Stringer("instruction", trace.Instruction),
		log.Stringer("state", trace.State))
}

// printInfo prints information about the ROM being run.
func (e *Emulator) printInfo(opts options.Program, rom *loader.ROM) {
	if opts.Quiet {
		return
	}

	speed := strconv.Itoa(opts.Speed)
	if opts.Speed == 0 {
		speed = "unthrottled"
	}
	e.logger.Info("Running Chip-8 ROM",
		log.String("file", rom.Name),
		log.Int("size", rom.Size()),
		log.String("speed", speed),
	)
}

// randomSource returns the byte generator used by the RND instruction.
// A zero seed selects a random seed.
func randomSource(seed uint64) func() uint8 {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	return func() uint8 {
		return uint8(rng.UintN(256))
	}
}
