package pipeline

import (
	"sync"
	"time"
)

// FrameClock measures wall time per frame, enforces a target FPS by
// sleeping, and supplies delta_time (§4.7).
type FrameClock struct {
	timeSource TimeSource

	lockEnabled bool
	mu          sync.Mutex

	targetFPS float64

	frameStart      time.Time
	worldStart      time.Time
	fpsSleep        time.Duration
	frameCountTotal int64
}

// NewFrameClock constructs a clock. ts may be nil; FrameBegin then requires a
// nonzero user delta every call (ErrMissingTimeSource otherwise).
func NewFrameClock(ts TimeSource) *FrameClock {
	c := &FrameClock{timeSource: ts}
	if ts != nil {
		c.worldStart = ts.Now()
	}
	return c
}

// EnableLocking makes FrameBegin/FrameEnd acquire/release an internal lock,
// modeling the optional world lock of §4.7.
func (c *FrameClock) EnableLocking(enabled bool) { c.lockEnabled = enabled }

// SetTargetFPS sets the throttle target; zero disables throttling.
func (c *FrameClock) SetTargetFPS(fps float64) { c.targetFPS = fps }

// FrameCountTotal returns the number of frames FrameEnd has completed.
func (c *FrameClock) FrameCountTotal() int64 { return c.frameCountTotal }

// FrameBegin acquires the optional lock, measures the start of this frame,
// and returns the effective delta_time: userDelta if nonzero, else the
// measured time since the previous FrameBegin, else 1/target_fps or 1/60 as
// a fallback on the very first frame. It retries until the measured delta is
// nonzero, never returning a zero-length tick (§8 property 7).
func (c *FrameClock) FrameBegin(userDelta time.Duration) (time.Duration, error) {
	if c.lockEnabled {
		c.mu.Lock()
	}

	if userDelta == 0 && c.timeSource == nil {
		if c.lockEnabled {
			c.mu.Unlock()
		}
		return 0, ErrMissingTimeSource
	}

	if userDelta == 0 {
		userDelta = c.measure()
	}
	return userDelta, nil
}

func (c *FrameClock) measure() time.Duration {
	var delta time.Duration
	for delta == 0 {
		now := c.timeSource.Now()
		if !c.frameStart.IsZero() {
			delta = now.Sub(c.frameStart)
		} else if c.targetFPS > 0 {
			delta = time.Duration(float64(time.Second) / c.targetFPS)
		} else {
			delta = time.Second / 60
		}
		c.frameStart = now
	}
	return delta
}

// FrameEnd increments frame_count_total, releases the optional lock, and —
// if a target FPS is set — sleeps for max(0, 1/target_fps - delta + carry),
// where carry is the previous sleep value (§4.7's crude drift compensator).
func (c *FrameClock) FrameEnd(deltaTime time.Duration) {
	c.frameCountTotal++
	if c.lockEnabled {
		c.mu.Unlock()
	}

	if c.targetFPS <= 0 {
		return
	}
	target := time.Duration(float64(time.Second) / c.targetFPS)
	sleep := target - deltaTime + c.fpsSleep
	if sleep > 0 {
		if c.timeSource != nil {
			c.timeSource.Sleep(sleep)
		}
	}
	c.fpsSleep = sleep
}
