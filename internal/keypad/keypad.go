// Package keypad holds the state of the 16 key CHIP-8 hex keypad.
package keypad

import "sync"

// Keys is the number of keys on the keypad.
const Keys = 16

// Keypad stores which keys are currently pressed. It is safe to update the
// key state from a different goroutine than the one running the CPU.
type Keypad struct {
	mu      sync.RWMutex
	pressed [Keys]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Pressed returns whether the key is pressed. Only the low nibble of key is used.
func (k *Keypad) Pressed(key uint8) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pressed[key&0x0F]
}

// Press marks the key as pressed. Only the low nibble of key is used.
func (k *Keypad) Press(key uint8) {
	k.mu.Lock()
	k.pressed[key&0x0F] = true
	k.mu.Unlock()
}
