package fake

import (
	"github.com/rs/zerolog"
)

// Driver keeps the last frame and logs a compact summary of every Nth
// one, useful for headless runs and tests.
type Driver struct {
	Count int
	// Every logs one frame in Every; zero never logs.
	Every int
	Log   zerolog.Logger

	last [][]byte
}

func (d *Driver) Write(channels [][]byte) error {
	d.Count++
	if len(d.last) != len(channels) {
		d.last = make([][]byte, len(channels))
	}
	for i, c := range channels {
		d.last[i] = append(d.last[i][:0], c...)
	}
	if d.Every > 0 && d.Count%d.Every == 0 {
		d.Log.Info().
			Int("frame", d.Count).
			Ints("lit", d.Lit()).
			Msg("frame")
	}
	return nil
}

// Last is a copy of the most recent frame.
func (d *Driver) Last() [][]byte { return d.last }

// Lit counts the LEDs that are not black, per channel.
func (d *Driver) Lit() []int {
	out := make([]int, len(d.last))
	for i, c := range d.last {
		for p := 0; p+2 < len(c); p += 3 {
			if c[p] != 0 || c[p+1] != 0 || c[p+2] != 0 {
				out[i]++
			}
		}
	}
	return out
}
