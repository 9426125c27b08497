package game

import "time"

// FixedStep turns variable frame times into a whole number of fixed ticks.
// Probability checks run once per tick so they do not depend on frame rate.
type FixedStep struct {
	Step     float64 // seconds per tick
	MaxTicks int
	acc      float64
}

func NewFixedStep(interval time.Duration) *FixedStep {
	return &FixedStep{Step: interval.Seconds(), MaxTicks: MaxTicksFrame}
}

// Advance accumulates dt and returns how many fixed ticks elapsed. Backlog
// beyond MaxTicks is dropped so a long stall cannot trigger a burst.
func (f *FixedStep) Advance(dt float64) int {
	if dt <= 0 || f.Step <= 0 {
		return 0
	}
	f.acc += dt
	n := int(f.acc / f.Step)
	f.acc -= float64(n) * f.Step
	if f.MaxTicks > 0 && n > f.MaxTicks {
		n = f.MaxTicks
		f.acc = 0
	}
	return n
}

// Pending is the fraction of a tick accumulated but not yet consumed.
func (f *FixedStep) Pending() float64 {
	return f.acc
}

// ClampFrame limits a frame delta to [0, MaxFrameDelta].
func ClampFrame(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}
