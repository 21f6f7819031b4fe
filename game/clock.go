package game

import (
	"fmt"
	"time"
)

// Clock is one side's countdown: time left plus, while running, the instant it
// started owing wall-clock time. Elapsed time since StartedAt is implicitly
// owed and must be reconciled before Remaining is trusted.
type Clock struct {
	Remaining time.Duration
	StartedAt time.Time // zero when not running
}

func (c Clock) Running() bool {
	return !c.StartedAt.IsZero()
}

func (c Clock) String() string {
	rem := c.Remaining
	if rem < 0 {
		rem = 0
	}
	return fmt.Sprintf("%d:%02d", int(rem.Minutes()), int(rem.Seconds())%60)
}

// ClockPair holds both sides' clocks. At most one side is running at a time.
type ClockPair struct {
	Clocks [2]Clock // indexed by Side
}

func NewClockPair(allotment time.Duration) ClockPair {
	return ClockPair{Clocks: [2]Clock{
		{Remaining: allotment},
		{Remaining: allotment},
	}}
}

// RunningSide reports which side's clock is running, if any.
func (cp *ClockPair) RunningSide() (Side, bool) {
	for s := range cp.Clocks {
		if cp.Clocks[s].Running() {
			return Side(s), true
		}
	}
	return White, false
}

func (cp *ClockPair) Remaining(s Side) time.Duration {
	return cp.Clocks[s].Remaining
}

// Reconcile charges the running side for the time elapsed up to now and reports
// whether that side is out of time. It does not clamp; the caller decides when
// to clamp, at completion time. Must not be invoked with a now earlier than the
// previous reconciliation.
func (cp *ClockPair) Reconcile(now time.Time) bool {
	side, ok := cp.RunningSide()
	if !ok {
		return false
	}
	c := &cp.Clocks[side]
	c.Remaining -= now.Sub(c.StartedAt)
	c.StartedAt = now
	return c.Remaining <= 0
}

// SwitchTurn stops whichever clock is running, folding its elapsed time into
// Remaining, and starts the given side's clock at now.
func (cp *ClockPair) SwitchTurn(now time.Time, side Side) {
	if prev, ok := cp.RunningSide(); ok {
		c := &cp.Clocks[prev]
		c.Remaining -= now.Sub(c.StartedAt)
		c.StartedAt = time.Time{}
	}
	cp.Clocks[side].StartedAt = now
}

// ForceExpire zeroes the running side's remaining time and stops its clock. The
// non-running side is left untouched.
func (cp *ClockPair) ForceExpire() {
	side, ok := cp.RunningSide()
	if !ok {
		return
	}
	cp.Clocks[side].Remaining = 0
	cp.Clocks[side].StartedAt = time.Time{}
}
