package cpu

import "time"

// Option configures optional collaborators of the CPU.
type Option func(*CPU)

// WithDisplay sets the display that receives clear and draw requests.
func WithDisplay(display Display) Option {
	return func(c *CPU) {
		c.display = display
	}
}

// WithKeypad sets the keypad that is queried by the key instructions.
func WithKeypad(keypad Keypad) Option {
	return func(c *CPU) {
		c.keypad = keypad
	}
}

// WithTrace sets a hook that is called before every executed instruction.
func WithTrace(trace TraceFunc) Option {
	return func(c *CPU) {
		c.trace = trace
	}
}

// WithClock sets the time source used for the timers and throttling.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(c *CPU) {
		c.now = now
		c.sleep = sleep
	}
}

// WithRandom sets the random byte source used by the RND instruction.
func WithRandom(random func() uint8) Option {
	return func(c *CPU) {
		c.random = random
	}
}
