package cpu

import "time"

// TimerFrequency is the rate in Hz at which the delay and sound timers count down.
const TimerFrequency = 60

const timerPeriod = time.Second / TimerFrequency

// tickTimers decrements the delay and sound timers once for every full
// timer period that passed since the last tick.
func (c *CPU) tickTimers() {
	now := c.now()
	ticks := now.Sub(c.lastTick) / timerPeriod
	if ticks <= 0 {
		return
	}
	c.lastTick = c.lastTick.Add(ticks * timerPeriod)

	decrementTimer(c.delay.Get(), ticks, c.delay.Set)
	decrementTimer(c.sound.Get(), ticks, c.sound.Set)
}

func decrementTimer(value uint8, ticks time.Duration, set func(uint8)) {
	if value == 0 {
		return
	}
	if ticks >= time.Duration(value) {
		set(0)
		return
	}
	set(value - uint8(ticks))
}
