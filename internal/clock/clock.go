// Package clock provides frame clocks: a shared frame counter plus a
// blocking wait for the next display refresh.
package clock

import (
	"context"
	"time"
)

// Region timing
const (
	NTSCFramesPerSecond = 60
	PALFramesPerSecond  = 50
)

// Counter is the frame counter the vertical blank increments and the
// animation sequencers read and zero. It wraps like an 8-bit register.
type Counter struct {
	count  uint8
	frames uint64
}

// Count returns the counter value
func (c *Counter) Count() uint8 {
	return c.count
}

// ResetCount zeroes the counter
func (c *Counter) ResetCount() {
	c.count = 0
}

// Frames returns the number of frames since the clock was created.
// It is never reset.
func (c *Counter) Frames() uint64 {
	return c.frames
}

func (c *Counter) tick() {
	c.count++
	c.frames++
}

// Manual is a clock whose frames are driven by the host. WaitForNextFrame
// returns at once; use it when something else (the ebiten game loop, a
// test) already paces frames.
type Manual struct {
	Counter
}

// NewManual creates a manual clock
func NewManual() *Manual {
	return &Manual{}
}

// WaitForNextFrame advances the counter and returns immediately
func (m *Manual) WaitForNextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.tick()
	return nil
}

// Paced is a clock that waits on a ticker running at the region rate.
type Paced struct {
	Counter
	ticker *time.Ticker
	period time.Duration
}

// NewPaced creates a clock ticking framesPerSecond times a second
func NewPaced(framesPerSecond int) *Paced {
	if framesPerSecond <= 0 {
		framesPerSecond = NTSCFramesPerSecond
	}
	period := time.Second / time.Duration(framesPerSecond)
	return &Paced{
		ticker: time.NewTicker(period),
		period: period,
	}
}

// WaitForNextFrame blocks until the next tick or until ctx is done
func (p *Paced) WaitForNextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		p.tick()
		return nil
	}
}

// Period returns the frame period
func (p *Paced) Period() time.Duration {
	return p.period
}

// Stop releases the ticker
func (p *Paced) Stop() {
	p.ticker.Stop()
}
