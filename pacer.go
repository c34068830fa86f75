package z80

import (
	"time"
)

// Clock is the pluggable wall-clock abstraction behind real-time pacing:
// tests drive the core with NopClock so they never sleep, while a host
// that wants ~4 MHz real-time behaviour uses RealClock.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock paces at ~4 MHz (1 T-state ≈ 250ns). If the host falls behind
// schedule, Sleep is skipped and the reference resynchronizes to now rather
// than trying to catch up.
type RealClock struct{}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// NopClock never sleeps; Now advances a synthetic counter so elapsed-time
// arithmetic stays well-defined without relying on wall-clock jitter.
type NopClock struct {
	t time.Time
}

func (c *NopClock) Now() time.Time { return c.t }
func (c *NopClock) Sleep(d time.Duration) {
	c.t = c.t.Add(d)
}

const tStateNanos = 250 // 1 T-state ≈ 250ns at 4MHz

type pacer struct {
	clock    Clock
	enabled  bool
	ref      time.Time
	refCycle uint64
}

func newPacer(clock Clock) *pacer {
	if clock == nil {
		clock = &NopClock{}
	}
	return &pacer{clock: clock, ref: clock.Now()}
}

// wait paces toward totalCycles T-states since reset, if enabled,
// sleeping to approximate 1 T-state per 250ns. If the host is behind
// schedule, it skips the sleep and resynchronizes ref to now.
func (p *pacer) wait(totalCycles uint64) {
	if !p.enabled {
		return
	}
	target := p.ref.Add(time.Duration(totalCycles-p.refCycle) * tStateNanos * time.Nanosecond)
	now := p.clock.Now()
	if now.Before(target) {
		p.clock.Sleep(target.Sub(now))
		return
	}
	p.ref = now
	p.refCycle = totalCycles
}
