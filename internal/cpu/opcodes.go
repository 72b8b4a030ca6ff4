package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// handler executes a decoded instruction. When a handler is called the
// instruction pointer already points to the following instruction, control
// flow handlers overwrite it.
type handler func(c *CPU, ins instruction.Instruction) error

// families dispatches on the high nibble of the opcode.
var families = [16]handler{
	0x0: (*CPU).system,
	0x1: (*CPU).jump,
	0x2: (*CPU).call,
	0x3: (*CPU).skipEqualByte,
	0x4: (*CPU).skipNotEqualByte,
	0x5: (*CPU).skipEqualRegister,
	0x6: (*CPU).loadByte,
	0x7: (*CPU).addByte,
	0x8: (*CPU).arithmetic,
	0x9: (*CPU).skipNotEqualRegister,
	0xA: (*CPU).loadIndex,
	0xB: (*CPU).jumpOffset,
	0xC: (*CPU).randomByte,
	0xD: (*CPU).draw,
	0xE: (*CPU).keySkip,
	0xF: (*CPU).misc,
}

// systemOps dispatches the 0nnn family on the low byte.
var systemOps = map[uint8]handler{
	0xE0: (*CPU).clearScreen,
	0xEE: (*CPU).ret,
}

// arithmeticOps dispatches the 8xyn family on the low nibble.
var arithmeticOps = [16]handler{
	0x0: (*CPU).loadRegister,
	0x1: (*CPU).or,
	0x2: (*CPU).and,
	0x3: (*CPU).xor,
	0x4: (*CPU).addRegister,
	0x5: (*CPU).sub,
	0x6: (*CPU).shr,
	0x7: (*CPU).subn,
	0xE: (*CPU).shl,
}

// keyOps dispatches the Exkk family on the low byte.
var keyOps = map[uint8]handler{
	0x9E: (*CPU).skipKeyPressed,
	0xA1: (*CPU).skipKeyNotPressed,
}

// miscOps dispatches the Fxkk family on the low byte.
var miscOps = map[uint8]handler{
	0x07: (*CPU).loadDelayTimer,
	0x0A: (*CPU).waitKey,
	0x15: (*CPU).setDelayTimer,
	0x18: (*CPU).setSoundTimer,
	0x1E: (*CPU).addIndex,
	0x29: (*CPU).loadGlyph,
	0x33: (*CPU).storeBCD,
	0x55: (*CPU).storeRegisters,
	0x65: (*CPU).loadRegisters,
}

func (c *CPU) execute(ins instruction.Instruction) error {
	return families[ins.Family()](c, ins)
}

// unknown handles opcodes that do not map to any instruction. They are
// executed as no-op.
func (c *CPU) unknown(ins instruction.Instruction) error {
	c.logger.Debug("Unknown opcode",
		log.Hex("address", c.pc.Get()-instruction.Size),
		log.Hex("opcode", ins.Opcode()))
	return nil
}

func (c *CPU) system(ins instruction.Instruction) error {
	if h, ok := systemOps[ins.KK()]; ok && ins.X() == 0 {
		return h(c, ins)
	}
	// 0nnn calls machine code routines of the original hardware, modern
	// interpreters ignore it.
	return c.unknown(ins)
}

func (c *CPU) arithmetic(ins instruction.Instruction) error {
	if h := arithmeticOps[ins.N()]; h != nil {
		return h(c, ins)
	}
	return c.unknown(ins)
}

func (c *CPU) keySkip(ins instruction.Instruction) error {
	if h, ok := keyOps[ins.KK()]; ok {
		return h(c, ins)
	}
	return c.unknown(ins)
}

func (c *CPU) misc(ins instruction.Instruction) error {
	if h, ok := miscOps[ins.KK()]; ok {
		return h(c, ins)
	}
	return c.unknown(ins)
}

// skipIf advances the instruction pointer past the next instruction.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc.Add(instruction.Size)
	}
}

// 00E0 - CLS
func (c *CPU) clearScreen(_ instruction.Instruction) error {
	c.display.Clear()
	return nil
}

// 00EE - RET
func (c *CPU) ret(_ instruction.Instruction) error {
	sp := c.sp.Get()
	if sp == 0 {
		return memory.ErrStackUnderflow
	}
	address, err := c.mem.StackEntry(sp - 1)
	if err != nil {
		return err
	}
	c.sp.Set(sp - 1)
	c.pc.Set(address)
	return nil
}

// 1nnn - JP addr
func (c *CPU) jump(ins instruction.Instruction) error {
	c.pc.Set(ins.NNN())
	return nil
}

// 2nnn - CALL addr
func (c *CPU) call(ins instruction.Instruction) error {
	sp := c.sp.Get()
	if err := c.mem.SetStackEntry(sp, c.pc.Get()); err != nil {
		return err
	}
	c.sp.Add(1)
	c.pc.Set(ins.NNN())
	return nil
}

// 3xkk - SE Vx, byte
func (c *CPU) skipEqualByte(ins instruction.Instruction) error {
	c.skipIf(c.v[ins.X()].Get() == ins.KK())
	return nil
}

// 4xkk - SNE Vx, byte
func (c *CPU) skipNotEqualByte(ins instruction.Instruction) error {
	c.skipIf(c.v[ins.X()].Get() != ins.KK())
	return nil
}

// 5xy0 - SE Vx, Vy
func (c *CPU) skipEqualRegister(ins instruction.Instruction) error {
	if ins.N() != 0 {
		return c.unknown(ins)
	}
	c.skipIf(c.v[ins.X()].Get() == c.v[ins.Y()].Get())
	return nil
}

// 9xy0 - SNE Vx, Vy
func (c *CPU) skipNotEqualRegister(ins instruction.Instruction) error {
	if ins.N() != 0 {
		return c.unknown(ins)
	}
	c.skipIf(c.v[ins.X()].Get() != c.v[ins.Y()].Get())
	return nil
}

// 6xkk - LD Vx, byte
func (c *CPU) loadByte(ins instruction.Instruction) error {
	c.v[ins.X()].Set(ins.KK())
	return nil
}

// 7xkk - ADD Vx, byte
func (c *CPU) addByte(ins instruction.Instruction) error {
	c.v[ins.X()].Add(ins.KK())
	return nil
}

// 8xy0 - LD Vx, Vy
func (c *CPU) loadRegister(ins instruction.Instruction) error {
	c.v[ins.X()].Set(c.v[ins.Y()].Get())
	return nil
}

// 8xy1 - OR Vx, Vy
func (c *CPU) or(ins instruction.Instruction) error {
	c.v[ins.X()].Or(c.v[ins.Y()].Get())
	return nil
}

// 8xy2 - AND Vx, Vy
func (c *CPU) and(ins instruction.Instruction) error {
	c.v[ins.X()].And(c.v[ins.Y()].Get())
	return nil
}

// 8xy3 - XOR Vx, Vy
func (c *CPU) xor(ins instruction.Instruction) error {
	c.v[ins.X()].Xor(c.v[ins.Y()].Get())
	return nil
}

// 8xy4 - ADD Vx, Vy. VF is 1 if the sum fit into 8 bits and 0 on carry.
func (c *CPU) addRegister(ins instruction.Instruction) error {
	flag := c.v[ins.X()].AddWithCarry(c.v[ins.Y()].Get())
	c.flag.Set(flag)
	return nil
}

// 8xy5 - SUB Vx, Vy. VF is 1 if the subtraction borrowed.
func (c *CPU) sub(ins instruction.Instruction) error {
	flag := c.v[ins.X()].SubWithBorrow(c.v[ins.Y()].Get())
	c.flag.Set(flag)
	return nil
}

// 8xy6 - SHR Vx
func (c *CPU) shr(ins instruction.Instruction) error {
	vx := &c.v[ins.X()]
	flag := vx.Shr(vx.Get(), 1)
	c.flag.Set(flag)
	return nil
}

// 8xy7 - SUBN Vx, Vy. VF is 1 if the subtraction borrowed.
func (c *CPU) subn(ins instruction.Instruction) error {
	vx := c.v[ins.X()]
	result := c.v[ins.Y()]
	var flag uint8
	if vx.Get() > result.Get() {
		flag = 1
	}
	result.Subtract(vx)
	c.v[ins.X()].Set(result.Get())
	c.flag.Set(flag)
	return nil
}

// 8xyE - SHL Vx
func (c *CPU) shl(ins instruction.Instruction) error {
	vx := &c.v[ins.X()]
	flag := vx.Shl(vx.Get(), 1)
	c.flag.Set(flag)
	return nil
}

// Annn - LD I, addr
func (c *CPU) loadIndex(ins instruction.Instruction) error {
	c.i.Set(ins.NNN())
	return nil
}

// Bnnn - JP V0, addr
func (c *CPU) jumpOffset(ins instruction.Instruction) error {
	target := ins.NNN() + uint16(c.v[0].Get())
	if target >= memory.Size {
		return fmt.Errorf("jump target $%04X: %w", target, memory.ErrAddressOutOfRange)
	}
	c.pc.Set(target)
	return nil
}

// Cxkk - RND Vx, byte
func (c *CPU) randomByte(ins instruction.Instruction) error {
	c.v[ins.X()].Set(c.random() & ins.KK())
	return nil
}

// Dxyn - DRW Vx, Vy, nibble. VF is set to 1 if a set pixel was erased.
func (c *CPU) draw(ins instruction.Instruction) error {
	start := c.i.Get()
	sprite, err := c.mem.Range(start, start+uint16(ins.N()))
	if err != nil {
		return err
	}

	var flag uint8
	if c.display.Draw(c.v[ins.X()].Get(), c.v[ins.Y()].Get(), sprite) {
		flag = 1
	}
	c.flag.Set(flag)
	return nil
}

// Ex9E - SKP Vx
func (c *CPU) skipKeyPressed(ins instruction.Instruction) error {
	c.skipIf(c.keypad.Pressed(c.v[ins.X()].Get() & 0x0F))
	return nil
}

// ExA1 - SKNP Vx
func (c *CPU) skipKeyNotPressed(ins instruction.Instruction) error {
	c.skipIf(!c.keypad.Pressed(c.v[ins.X()].Get() & 0x0F))
	return nil
}

// Fx07 - LD Vx, DT
func (c *CPU) loadDelayTimer(ins instruction.Instruction) error {
	c.v[ins.X()].Set(c.delay.Get())
	return nil
}

// Fx0A - LD Vx, K. Without a pressed key the instruction pointer stays on
// this instruction so that it is executed again in the next cycle.
func (c *CPU) waitKey(ins instruction.Instruction) error {
	for key := range uint8(16) {
		if c.keypad.Pressed(key) {
			c.v[ins.X()].Set(key)
			return nil
		}
	}
	c.pc.Set(c.pc.Get() - instruction.Size)
	return nil
}

// Fx15 - LD DT, Vx
func (c *CPU) setDelayTimer(ins instruction.Instruction) error {
	c.delay.Set(c.v[ins.X()].Get())
	return nil
}

// Fx18 - LD ST, Vx
func (c *CPU) setSoundTimer(ins instruction.Instruction) error {
	c.sound.Set(c.v[ins.X()].Get())
	return nil
}

// Fx1E - ADD I, Vx
func (c *CPU) addIndex(ins instruction.Instruction) error {
	target := uint32(c.i.Get()) + uint32(c.v[ins.X()].Get())
	if target >= memory.Size {
		return fmt.Errorf("index $%04X: %w", target, memory.ErrAddressOutOfRange)
	}
	c.i.Set(uint16(target))
	return nil
}

// Fx29 - LD F, Vx
func (c *CPU) loadGlyph(ins instruction.Instruction) error {
	c.i.Set(memory.GlyphAddress(c.v[ins.X()].Get()))
	return nil
}

// Fx33 - LD B, Vx
func (c *CPU) storeBCD(ins instruction.Instruction) error {
	value := c.v[ins.X()].Get()
	digits := [3]byte{value / 100, value / 10 % 10, value % 10}
	return c.writeIndexed(digits[:])
}

// Fx55 - LD [I], Vx
func (c *CPU) storeRegisters(ins instruction.Instruction) error {
	values := make([]byte, ins.X()+1)
	for index := range values {
		values[index] = c.v[index].Get()
	}
	return c.writeIndexed(values)
}

// Fx65 - LD Vx, [I]
func (c *CPU) loadRegisters(ins instruction.Instruction) error {
	start := c.i.Get()
	data, err := c.mem.Range(start, start+uint16(ins.X())+1)
	if err != nil {
		return err
	}
	for index, value := range data {
		c.v[index].Set(value)
	}
	return nil
}

// writeIndexed writes the values to memory starting at the address in I.
// The index register is not modified.
func (c *CPU) writeIndexed(values []byte) error {
	start := uint32(c.i.Get())
	if start+uint32(len(values)) > memory.Size {
		return fmt.Errorf("writing %d bytes at $%04X: %w", len(values), start, memory.ErrAddressOutOfRange)
	}
	for offset, value := range values {
		if err := c.mem.Write(uint16(start)+uint16(offset), value); err != nil {
			return err
		}
	}
	return nil
}
