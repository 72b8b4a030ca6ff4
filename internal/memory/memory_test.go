package memory

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	mem := New()
	data, err := mem.Range(0, Size)
	assert.NoError(t, err)
	assert.Len(t, data, Size)
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte at $%04X is $%02X, expected zero", i, b)
		}
	}
}

func TestMemory_LoadROM(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		copied int
	}{
		{"empty", 0, 0},
		{"small", 4, 4},
		{"exact fit", MaxProgramSize, MaxProgramSize},
		{"truncated", MaxProgramSize + 100, MaxProgramSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = byte(i%255 + 1)
			}

			mem := New()
			copied := mem.LoadROM(rom)
			assert.Equal(t, tt.copied, copied)

			reserved, err := mem.Range(0, ProgramStart)
			assert.NoError(t, err)
			for _, b := range reserved {
				assert.Equal(t, byte(0), b)
			}

			program, err := mem.Range(ProgramStart, uint16(ProgramStart+copied))
			assert.NoError(t, err)
			assert.Equal(t, rom[:copied], program)

			rest, err := mem.Range(uint16(ProgramStart+copied), Size)
			assert.NoError(t, err)
			for _, b := range rest {
				assert.Equal(t, byte(0), b)
			}
		})
	}
}

func TestMemory_Range(t *testing.T) {
	mem := New()
	mem.LoadROM([]byte{0x12, 0x34, 0x56})

	data, err := mem.Range(0x200, 0x202)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34}, data)

	data, err = mem.Range(0x300, 0x300)
	assert.NoError(t, err)
	assert.Len(t, data, 0)

	_, err = mem.Range(0xFFF, 0x1001)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	_, err = mem.Range(0x300, 0x200)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestMemory_ReadWrite(t *testing.T) {
	mem := New()

	assert.NoError(t, mem.Write(0xFFF, 0xAB))
	b, err := mem.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	err = mem.Write(Size, 0x01)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	_, err = mem.Read(Size)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestMemory_Word(t *testing.T) {
	mem := New()
	mem.LoadROM([]byte{0x71, 0x05})

	word, err := mem.Word(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x7105), word)

	_, err = mem.Word(0xFFE)
	assert.NoError(t, err)

	_, err = mem.Word(0xFFF)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	_, err = mem.Word(0xFFFF)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestMemory_Stack(t *testing.T) {
	mem := New()

	for i := range uint8(StackSize) {
		assert.NoError(t, mem.SetStackEntry(i, 0x200+uint16(i)*2))
	}
	for i := range uint8(StackSize) {
		value, err := mem.StackEntry(i)
		assert.NoError(t, err)
		assert.Equal(t, 0x200+uint16(i)*2, value)
	}

	err := mem.SetStackEntry(StackSize, 0x300)
	assert.True(t, errors.Is(err, ErrStackOverflow))

	_, err = mem.StackEntry(StackSize)
	assert.True(t, errors.Is(err, ErrStackOverflow))
}

func TestMemory_Font(t *testing.T) {
	mem := New()
	mem.LoadFont()

	glyph, err := mem.Range(GlyphAddress(0xA), GlyphAddress(0xA)+FontGlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0xF0, 0x90, 0x90}, glyph)

	assert.Equal(t, uint16(0x4B), GlyphAddress(0xF))
	assert.Equal(t, uint16(0x05), GlyphAddress(0x11))
}
