package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	k := New()
	for key := range uint8(Keys) {
		assert.False(t, k.Pressed(key))
	}

	k.Press(0xA)
	assert.True(t, k.Pressed(0xA))
	assert.True(t, k.Pressed(0x1A))
	assert.False(t, k.Pressed(0xB))

	k.Press(0x1F)
	assert.True(t, k.Pressed(0xF))
	assert.True(t, k.Pressed(0xA))
}
