// Package cpu implements the CHIP-8 fetch, decode and execute core.
package cpu

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/register"
	"github.com/retroenv/retrogolib/log"
)

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// FlagRegister is the index of the general purpose register that receives
// carry, borrow, shift and collision flags.
const FlagRegister = 0xF

// haltOpcode is the opcode word that terminates the run loop.
const haltOpcode = 0x0000

var (
	// ErrStopped is returned by Run when Stop was called.
	ErrStopped = errors.New("execution stopped")
	// ErrCycleLimit is returned by Run when the configured cycle limit was reached.
	ErrCycleLimit = errors.New("cycle limit reached")
)

// Display receives the draw requests of the CPU.
type Display interface {
	// Clear turns all pixels off.
	Clear()
	// Draw XORs the sprite onto the screen and returns true if a set pixel got erased.
	Draw(x, y uint8, sprite []byte) bool
}

// Keypad answers key state queries of the CPU.
type Keypad interface {
	// Pressed returns whether the key with the given index is pressed.
	Pressed(key uint8) bool
}

// Config controls the execution speed and limits of a run.
type Config struct {
	Speed     int    // instructions per second, 0 runs unthrottled
	MaxCycles uint64 // number of instructions to execute before stopping, 0 for no limit
}

// CPU implements the CHIP-8 interpreter core. It exclusively owns its
// registers and the memory while running.
type CPU struct {
	logger  *log.Logger
	config  Config
	mem     *memory.Memory
	display Display
	keypad  Keypad
	trace   TraceFunc
	now     func() time.Time
	sleep   func(time.Duration)
	random  func() uint8

	v     [RegisterCount]register.Register[uint8]
	flag  *register.Register[uint8] // aliases v[FlagRegister]
	delay register.Register[uint8]
	sound register.Register[uint8]
	sp    register.Register[uint8]
	pc    register.Register[uint16]
	i     register.Register[uint16]

	cycles    uint64
	lastTick  time.Time
	runStart  time.Time
	runCycles uint64
	stopped   atomic.Bool
}

// New returns a CPU operating on the given memory. Without options the CPU
// draws to a headless framebuffer and reads an idle keypad.
func New(logger *log.Logger, mem *memory.Memory, config Config, options ...Option) *CPU {
	c := &CPU{
		logger:  logger,
		config:  config,
		mem:     mem,
		display: display.New(),
		keypad:  keypad.New(),
		now:     time.Now,
		sleep:   time.Sleep,
		random: func() uint8 {
			return uint8(rand.UintN(256))
		},
	}
	for _, option := range options {
		option(c)
	}
	c.Reset()
	return c
}

// Reset sets all registers to their power on state and points the
// instruction pointer to the program start.
func (c *CPU) Reset() {
	for index := range c.v {
		c.v[index] = register.New(fmt.Sprintf("V%X", index), uint8(0))
	}
	c.flag = &c.v[FlagRegister]
	c.delay = register.New("DT", uint8(0))
	c.sound = register.New("ST", uint8(0))
	c.sp = register.New("SP", uint8(0))
	c.pc = register.New("PC", uint16(memory.ProgramStart))
	c.i = register.New("I", uint16(0))
	c.cycles = 0
}

// Step fetches, decodes and executes a single instruction. It returns false
// without changing any state if the halt opcode was fetched.
func (c *CPU) Step() (bool, error) {
	address, opcode, err := c.fetch()
	if err != nil || opcode == haltOpcode {
		return false, err
	}
	if err := c.executeOpcode(address, opcode); err != nil {
		return false, err
	}
	return true, nil
}

// fetch reads the opcode at the instruction pointer.
func (c *CPU) fetch() (uint16, uint16, error) {
	address := c.pc.Get()
	opcode, err := c.mem.Word(address)
	if err != nil {
		return address, 0, fmt.Errorf("fetching instruction: %w", err)
	}
	if opcode == haltOpcode {
		c.logger.Debug("Halt opcode reached", log.Hex("address", address))
	}
	return address, opcode, nil
}

func (c *CPU) executeOpcode(address, opcode uint16) error {
	ins := instruction.Decode(opcode)
	if c.trace != nil {
		c.trace(Trace{
			Address:     address,
			Instruction: ins,
			State:       c.State(),
		})
	}

	c.pc.Set(address + instruction.Size)
	if err := c.execute(ins); err != nil {
		c.pc.Set(address)
		return fmt.Errorf("executing opcode $%04X at $%04X: %w", opcode, address, err)
	}
	c.cycles++
	return nil
}

// Run executes instructions until the halt opcode is reached, an error
// occurs, the context is cancelled or Stop is called. Execution continues
// at the current instruction pointer. The timers are decremented at 60 Hz
// of wall clock time, independent of the instruction rate. Fetching the
// halt opcode leaves the timers untouched.
func (c *CPU) Run(ctx context.Context) error {
	c.stopped.Store(false)
	c.runStart = c.now()
	c.runCycles = 0
	c.lastTick = c.runStart

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running: %w", ctx.Err())
		default:
		}
		if c.stopped.Load() {
			return ErrStopped
		}
		if c.config.MaxCycles > 0 && c.runCycles >= c.config.MaxCycles {
			return ErrCycleLimit
		}

		address, opcode, err := c.fetch()
		if err != nil {
			return err
		}
		if opcode == haltOpcode {
			return nil
		}

		c.tickTimers()
		if err := c.executeOpcode(address, opcode); err != nil {
			return err
		}
		c.runCycles++
		c.throttle()
	}
}

// Stop requests a running loop to return before the next fetch.
func (c *CPU) Stop() {
	c.stopped.Store(true)
}

// Cycles returns the number of instructions executed since the last reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// V returns the value of the general purpose register with the given index.
func (c *CPU) V(index uint8) uint8 {
	return c.v[index&0x0F].Get()
}

// SetV sets the value of the general purpose register with the given index.
func (c *CPU) SetV(index, value uint8) {
	c.v[index&0x0F].Set(value)
}

// Flag returns the value of the flag register VF.
func (c *CPU) Flag() uint8 {
	return c.flag.Get()
}

// I returns the value of the index register.
func (c *CPU) I() uint16 {
	return c.i.Get()
}

// PC returns the value of the instruction pointer.
func (c *CPU) PC() uint16 {
	return c.pc.Get()
}

// SetPC sets the instruction pointer.
func (c *CPU) SetPC(address uint16) {
	c.pc.Set(address)
}

// SP returns the value of the stack pointer.
func (c *CPU) SP() uint8 {
	return c.sp.Get()
}

// DelayTimer returns the value of the delay timer.
func (c *CPU) DelayTimer() uint8 {
	return c.delay.Get()
}

// SoundTimer returns the value of the sound timer.
func (c *CPU) SoundTimer() uint8 {
	return c.sound.Get()
}

// throttle delays the loop to match the configured instruction rate.
func (c *CPU) throttle() {
	if c.config.Speed <= 0 {
		return
	}
	elapsed := time.Duration(c.runCycles) * time.Second / time.Duration(c.config.Speed)
	if wait := c.runStart.Add(elapsed).Sub(c.now()); wait > 0 {
		c.sleep(wait)
	}
}
