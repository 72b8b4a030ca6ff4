package register

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRegister_SetGet(t *testing.T) {
	var r Register[uint8]
	for v := range 256 {
		r.Set(uint8(v))
		assert.Equal(t, uint8(v), r.Get())
	}

	var r16 Register[uint16]
	for _, v := range []uint16{0, 1, 0x200, 0x7FFF, 0xFFFF} {
		r16.Set(v)
		assert.Equal(t, v, r16.Get())
	}
}

func TestRegister_String(t *testing.T) {
	tests := []struct {
		name     string
		register fmt.Stringer
		expected string
	}{
		{"8 bit", New[uint8]("V3", 0x0A), "V3=$0A"},
		{"16 bit", New[uint16]("PC", 0x200), "PC=$0200"},
		{"32 bit", New[uint32]("X", 0xBEEF), "X=$0000BEEF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.register.String())
		})
	}
}

func TestRegister_Add(t *testing.T) {
	r := New[uint8]("V1", 0x02)
	r.Add(0x05)
	assert.Equal(t, uint8(0x07), r.Get())

	r.Set(0xFF)
	r.Add(0x02)
	assert.Equal(t, uint8(0x01), r.Get())
}

func TestRegister_Subtract(t *testing.T) {
	r := New[uint8]("V0", 0x10)
	r.Subtract(New[uint8]("V1", 0x01))
	assert.Equal(t, uint8(0x0F), r.Get())

	r.Set(0x00)
	r.Subtract(New[uint8]("V1", 0x01))
	assert.Equal(t, uint8(0xFF), r.Get())
}

func TestRegister_Bitwise(t *testing.T) {
	tests := []struct {
		name     string
		op       func(r *Register[uint8], v uint8)
		initial  uint8
		operand  uint8
		expected uint8
	}{
		{"or", (*Register[uint8]).Or, 0b1010_0000, 0b0000_0101, 0b1010_0101},
		{"and", (*Register[uint8]).And, 0b1100_1100, 0b1010_1010, 0b1000_1000},
		{"xor", (*Register[uint8]).Xor, 0b1100_1100, 0b1010_1010, 0b0110_0110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("V0", tt.initial)
			tt.op(&r, tt.operand)
			assert.Equal(t, tt.expected, r.Get())
		})
	}
}

func TestRegister_AddWithCarry(t *testing.T) {
	var r Register[uint8]
	for a := range 256 {
		for b := range 256 {
			r.Set(uint8(a))
			flag := r.AddWithCarry(uint8(b))

			expectedFlag := uint8(0)
			if a+b <= 0xFF {
				expectedFlag = 1
			}
			if flag != expectedFlag || r.Get() != uint8((a+b)%256) {
				t.Fatalf("AddWithCarry(%d, %d) = value %d flag %d", a, b, r.Get(), flag)
			}
		}
	}
}

func TestRegister_AddWithCarry16(t *testing.T) {
	r := New[uint16]("I", 0xFFFF)
	assert.Equal(t, uint16(0), r.AddWithCarry(1))
	assert.Equal(t, uint16(0), r.Get())
	assert.Equal(t, uint16(1), r.AddWithCarry(0x1234))
	assert.Equal(t, uint16(0x1234), r.Get())
}

func TestRegister_SubWithBorrow(t *testing.T) {
	var r Register[uint8]
	for a := range 256 {
		for b := range 256 {
			r.Set(uint8(a))
			flag := r.SubWithBorrow(uint8(b))

			expectedFlag := uint8(0)
			if b > a {
				expectedFlag = 1
			}
			if flag != expectedFlag || r.Get() != uint8((a-b+256)%256) {
				t.Fatalf("SubWithBorrow(%d, %d) = value %d flag %d", a, b, r.Get(), flag)
			}
		}
	}
}

func TestRegister_Shr(t *testing.T) {
	var r Register[uint8]
	for v := range 256 {
		r.Set(0xAA)
		flag := r.Shr(uint8(v), 1)
		assert.Equal(t, uint8(v)&1, flag)
		assert.Equal(t, uint8(v)>>1, r.Get())
	}
}

func TestRegister_Shl(t *testing.T) {
	tests := []struct {
		name          string
		value         uint8
		expectedFlag  uint8
		expectedValue uint8
	}{
		{"top bit set", 0x81, 1, 0x02},
		{"top bit clear", 0x41, 0, 0x82},
		{"zero", 0x00, 0, 0x00},
		{"all bits", 0xFF, 1, 0xFE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Register[uint8]
			flag := r.Shl(tt.value, 1)
			assert.Equal(t, tt.expectedFlag, flag)
			assert.Equal(t, tt.expectedValue, r.Get())
		})
	}

	r16 := New[uint16]("X", 0)
	assert.Equal(t, uint16(1), r16.Shl(0x8000, 1))
	assert.Equal(t, uint16(0), r16.Get())
}
