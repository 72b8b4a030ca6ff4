package cpu

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// mockDisplay records the requests it receives.
type mockDisplay struct {
	clears    int
	draws     []mockDraw
	collision bool
}

type mockDraw struct {
	x, y   uint8
	sprite []byte
}

func (m *mockDisplay) Clear() {
	m.clears++
}

func (m *mockDisplay) Draw(x, y uint8, sprite []byte) bool {
	m.draws = append(m.draws, mockDraw{x: x, y: y, sprite: append([]byte(nil), sprite...)})
	return m.collision
}

// mockKeypad reports a fixed set of pressed keys.
type mockKeypad struct {
	pressed map[uint8]bool
}

func (m *mockKeypad) Pressed(key uint8) bool {
	return m.pressed[key]
}

// fakeClock returns a time that advances by step on every call.
type fakeClock struct {
	now   time.Time
	step  time.Duration
	slept time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		step: step,
	}
}

func (f *fakeClock) Now() time.Time {
	t := f.now
	f.now = f.now.Add(f.step)
	return t
}

func (f *fakeClock) Sleep(d time.Duration) {
	f.slept += d
	f.now = f.now.Add(d)
}

// newTestCPU returns a CPU with the program words loaded at the program start.
func newTestCPU(t *testing.T, config Config, program []uint16, options ...Option) (*CPU, *memory.Memory) {
	t.Helper()

	mem := memory.New()
	mem.LoadFont()
	rom := make([]byte, 0, len(program)*2)
	for _, word := range program {
		rom = append(rom, byte(word>>8), byte(word))
	}
	mem.LoadROM(rom)

	return New(log.NewTestLogger(t), mem, config, options...), mem
}

// step executes the given number of instructions and fails the test on error.
func step(t *testing.T, c *CPU, count int) {
	t.Helper()
	for range count {
		running, err := c.Step()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !running {
			t.Fatalf("unexpected halt at $%04X", c.PC())
		}
	}
}
