package render

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/message"
	"github.com/coreman2200/funtimes-marquee/internal/model"
	"github.com/coreman2200/funtimes-marquee/internal/odometer"
)

// fakeDriver captures the last frame written.
type fakeDriver struct {
	last   [][]byte
	frames int
	err    error
}

func (d *fakeDriver) Write(channels [][]byte) error {
	d.frames++
	d.last = make([][]byte, len(channels))
	for i, c := range channels {
		d.last[i] = append([]byte(nil), c...)
	}
	return d.err
}

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func optionsLeft(secs int) Options {
	o := DefaultOptions()
	o.Countdown = clock.Countdown{Deadline: noon.Add(time.Duration(secs) * time.Second)}
	return o
}

func maxByte(b []byte) byte {
	var m byte
	for _, v := range b {
		m = max(m, v)
	}
	return m
}

func TestEngineWritesEightPanels(t *testing.T) {
	drv := &fakeDriver{}
	e, err := NewEngine(optionsLeft(3600000), drv)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, e.RenderOnce(noon))
	}

	require.Len(t, drv.last, 8)
	for i, c := range drv.last {
		assert.Len(t, c, model.PanelPixels*model.Channels, "channel %d", i)
	}
	assert.Equal(t, e.Top.Buf.Panel(3), drv.last[3])
	assert.Equal(t, e.Bottom.Buf.Panel(0), drv.last[4])
	assert.NotZero(t, maxByte(drv.last[4]), "odometer is lit")
	assert.Equal(t, 100, drv.frames)
}

func TestEngineOdometerRequestsPerChange(t *testing.T) {
	const start = 3600000
	o := optionsLeft(start)
	var counts [7]int
	o.Hooks = odometer.Hooks{Requested: func(i int, from, to rune) { counts[i]++ }}
	e, err := NewEngine(o, nil)
	require.NoError(t, err)
	require.Equal(t, 14, e.Top.GlyphHeight())

	settle := func(now time.Time) {
		for f := 0; f < 30; f++ {
			require.NoError(t, e.RenderOnce(now))
		}
	}
	settle(noon)
	for i, r := range "3600000" {
		assert.Equal(t, r, e.Bank.Slot(i).Current())
		assert.Equal(t, odometer.Idle, e.Bank.Slot(i).State())
	}

	counts = [7]int{}
	var want [7]int
	prev := clock.Digits(start, 7)
	for k := 1; k <= 150; k++ {
		cur := clock.Digits(start-k, 7)
		for i := range want {
			if prev[i] != cur[i] {
				want[i]++
			}
		}
		prev = cur

		settle(noon.Add(time.Duration(k) * time.Second))
		for i, r := range cur {
			require.Equal(t, r, e.Bank.Slot(i).Current(), "tick %d slot %d", k, i)
			require.Equal(t, odometer.Idle, e.Bank.Slot(i).State(), "tick %d slot %d", k, i)
		}
	}

	assert.Equal(t, want, counts)
	assert.Zero(t, counts[0], "leading 3 never changes")
	assert.Equal(t, 150, counts[6])
}

func TestEngineOdometerCooldown(t *testing.T) {
	for _, every := range []int{1, 2, 3} {
		o := optionsLeft(42)
		o.OdometerEvery = every
		frame, settledAt := 0, -1
		o.Hooks = odometer.Hooks{Settled: func(int, rune) {
			if settledAt < 0 {
				settledAt = frame
			}
		}}
		e, err := NewEngine(o, nil)
		require.NoError(t, err)
		for frame = 0; frame < 60; frame++ {
			require.NoError(t, e.RenderOnce(noon))
		}
		assert.Equal(t, 13*every, settledAt, "every %d", every)
	}
}

func collectMessages(t *testing.T, e *Engine, now time.Time, n, frames int) []string {
	t.Helper()
	var seen []string
	last := "\x00"
	for f := 0; f < frames && len(seen) < n; f++ {
		require.NoError(t, e.RenderOnce(now))
		if c := e.Cursor(); c.Text != last {
			seen = append(seen, c.Text)
			last = c.Text
		}
	}
	return seen
}

func TestEngineMessageRotation(t *testing.T) {
	o := optionsLeft(90061)
	o.Static = []string{`\3one`, `\3two`}
	e, err := NewEngine(o, nil)
	require.NoError(t, err)

	cd := message.Countdown(o.Label, o.Done, 90061)
	seen := collectMessages(t, e, noon, 5, 20000)
	assert.Equal(t, []string{cd, `\3one`, cd, `\3two`, cd}, seen)
	assert.True(t, e.Cursor().Countdown)
}

func TestEngineCountdownOverSkipsStatic(t *testing.T) {
	o := optionsLeft(-10)
	e, err := NewEngine(o, nil)
	require.NoError(t, err)

	for f := 0; f < 3000; f++ {
		require.NoError(t, e.RenderOnce(noon))
		c := e.Cursor()
		require.True(t, c.Countdown, "frame %d", f)
		require.Equal(t, o.Done, c.Text, "frame %d", f)
	}
	for i := 0; i < e.Bank.Len()-1; i++ {
		assert.Equal(t, ' ', e.Bank.Slot(i).Current())
	}
	assert.Equal(t, '0', e.Bank.Slot(e.Bank.Len()-1).Current())
}

func TestEngineSkipsBadMessages(t *testing.T) {
	o := optionsLeft(90061)
	o.Static = []string{`\9bad`, `\3ok\7tail`}
	e, err := NewEngine(o, nil)
	require.NoError(t, err)

	cd := message.Countdown(o.Label, o.Done, 90061)
	seen := collectMessages(t, e, noon, 4, 20000)
	assert.Equal(t, []string{cd, `\3ok\7tail`, cd, `\3ok\7tail`}, seen)
}

func TestEngineBrightness(t *testing.T) {
	night := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want byte
	}{
		{"day", noon, 0xFF / 8},
		{"night", night, 0xFF / 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := DefaultOptions()
			o.Countdown = clock.Countdown{Deadline: c.now.Add(3600000 * time.Second)}
			e, err := NewEngine(o, nil)
			require.NoError(t, err)
			for f := 0; f < 100; f++ {
				require.NoError(t, e.RenderOnce(c.now))
			}
			assert.Equal(t, c.want, maxByte(e.Top.Buf.Bytes()), "top")
			assert.Equal(t, c.want, maxByte(e.Bottom.Buf.Bytes()), "bottom")
			assert.Equal(t, c.name == "night", e.Last.Night)
		})
	}
}

func TestEngineReturnsDriverErrors(t *testing.T) {
	boom := errors.New("boom")
	e, err := NewEngine(optionsLeft(5), &fakeDriver{err: boom})
	require.NoError(t, err)
	assert.ErrorIs(t, e.RenderOnce(noon), boom)
}

func TestNewEngineValidates(t *testing.T) {
	for name, mutate := range map[string]func(*Options){
		"panels":     func(o *Options) { o.Panels = 0 },
		"digits":     func(o *Options) { o.Digits = 0 },
		"every":      func(o *Options) { o.OdometerEvery = 0 },
		"brightness": func(o *Options) { o.Brightness.Night = 0 },
	} {
		o := DefaultOptions()
		mutate(&o)
		_, err := NewEngine(o, nil)
		assert.Error(t, err, name)
	}

	o := DefaultOptions()
	o.Brightness = Brightness{Day: 0, Night: 1}
	_, err := NewEngine(o, nil)
	assert.ErrorIs(t, err, model.ErrDivisor)
}
