package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/render"
	"github.com/coreman2200/funtimes-marquee/internal/selftest"
)

// Conductor owns the frame loop.
type Conductor struct {
	Eng   *render.Engine
	Clock clock.Clock
	Log   zerolog.Logger

	Frames int
	Errors int
}

func NewConductor(eng *render.Engine, clk clock.Clock, log zerolog.Logger) *Conductor {
	return &Conductor{Eng: eng, Clock: clk, Log: log}
}

// Step renders one frame at the clock's time. Driver errors are logged,
// the first one and then every hundredth.
func (c *Conductor) Step() {
	c.Frames++
	if err := c.Eng.RenderOnce(c.Clock.Now()); err != nil {
		c.Errors++
		if c.Errors%100 == 1 {
			c.Log.Error().Err(err).Int("errors", c.Errors).Msg("frame not sent")
		}
	}
}

// Run renders fps frames a second until ctx is done.
func (c *Conductor) Run(ctx context.Context, fps int) {
	tick := time.NewTicker(frameTime(fps))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.Step()
		}
	}
}

// RunSelfTest plays r through the engine's buffers and driver until the
// pattern completes or ctx is done.
func (c *Conductor) RunSelfTest(ctx context.Context, r *selftest.Runner, fps int) error {
	tick := time.NewTicker(frameTime(fps))
	defer tick.Stop()
	c.Log.Info().Str("test", string(r.Kind())).Int("steps", r.Steps()).Msg("self test")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if !r.Step(c.Eng.Top.Buf, c.Eng.Bottom.Buf) {
				return nil
			}
			c.Frames++
			if c.Eng.Drv == nil {
				continue
			}
			if err := c.Eng.Drv.Write(c.Eng.Channels()); err != nil {
				return err
			}
		}
	}
}

func frameTime(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
