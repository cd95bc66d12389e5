package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/config"
	"github.com/coreman2200/funtimes-marquee/internal/diagnostics"
	"github.com/coreman2200/funtimes-marquee/internal/driver/fake"
	"github.com/coreman2200/funtimes-marquee/internal/font"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/led"
	"github.com/coreman2200/funtimes-marquee/internal/model"
	"github.com/coreman2200/funtimes-marquee/internal/odometer"
	"github.com/coreman2200/funtimes-marquee/internal/render"
)

// LoadFont returns the configured font, or the built-in one.
func LoadFont(c config.Config) (*font.Font, error) {
	if c.Font.Path == "" {
		return font.Default(), nil
	}
	f, err := font.LoadTTF(c.Font.Path, c.Font.Size, font.DefaultFaceOptions())
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", c.Font.Path, err)
	}
	return f, nil
}

// EngineOptions turns a validated config into engine options.
func EngineOptions(c config.Config, log zerolog.Logger) (render.Options, error) {
	o := render.DefaultOptions()

	f, err := LoadFont(c)
	if err != nil {
		return o, err
	}

	deadline, err := c.DeadlineTime()
	if err != nil {
		return o, err
	}
	loc, err := c.Zone()
	if err != nil {
		return o, err
	}

	o.Panels = c.Panels
	o.Font = f
	o.Countdown = clock.Countdown{Deadline: deadline}
	o.DayNight = clock.DayNight{NightFrom: c.Night.From, NightUntil: c.Night.Until, Location: loc}
	o.Brightness = render.Brightness{Day: c.Brightness.Day, Night: c.Brightness.Night}
	o.TextRow = c.Text.Row
	o.Label = c.Countdown.Label
	o.Done = c.Countdown.Done
	if len(c.Messages) > 0 {
		o.Static = c.Messages
	}
	o.Digits = c.Odometer.Digits
	o.DigitSpacing = c.Odometer.Spacing
	o.OdometerEvery = c.Odometer.Every
	if len(c.Odometer.DayColors) > 0 {
		o.DayColors = colors(c.Odometer.DayColors)
	}
	if len(c.Odometer.NightColors) > 0 {
		o.NightColors = colors(c.Odometer.NightColors)
	}
	o.Hooks = odometer.Hooks{
		Requested: func(slot int, from, to rune) {
			log.Debug().Int("slot", slot).Str("from", string(from)).Str("to", string(to)).Msg("odometer roll")
		},
	}
	o.Log = log
	return o, nil
}

func colors(in []uint32) []model.Color {
	out := make([]model.Color, len(in))
	for i, c := range in {
		out[i] = model.Color(c)
	}
	return out
}

// StripSize is what each SPI chain is opened with: one panel of LEDs, since
// every channel carries a single panel.
func StripSize(c config.Config) (int, physic.Frequency) {
	freq := led.DefaultFreq
	if c.SPI.FreqKHz > 0 {
		freq = physic.Frequency(c.SPI.FreqKHz) * physic.KiloHertz
	}
	return model.PanelPixels, freq
}

// OpenStrips opens one chain per configured port through open.
func OpenStrips(c config.Config, open led.PortOpener, log zerolog.Logger) (*led.Strips, error) {
	pixels, freq := StripSize(c)
	return led.OpenStripsWith(open, c.SPI.Ports, pixels, freq, log)
}

// ErrPreflight means the config checks found errors.
var ErrPreflight = errors.New("config has errors")

// Preflight logs every diagnostic for c and fails when any is an error.
func Preflight(c config.Config, f *font.Font, now time.Time, log zerolog.Logger) ([]diagnostics.Diagnostic, error) {
	ds := diagnostics.Check(c, f, now)
	errs := 0
	for _, d := range ds {
		ev := log.Info()
		switch d.Severity {
		case diagnostics.Warn:
			ev = log.Warn()
		case diagnostics.Err:
			ev = log.Error()
			errs++
		}
		ev.Str("code", d.Code).Str("detail", d.Detail).Interface("evidence", d.Evidence).Msg(d.Summary)
	}
	if errs > 0 {
		return ds, fmt.Errorf("%d diagnostics: %w", errs, ErrPreflight)
	}
	return ds, nil
}

// OpenDriver builds the configured output. A failed SPI setup falls back
// to the console preview. It returns the driver and the name it ended up
// with.
func OpenDriver(c config.Config, log zerolog.Logger) (render.Driver, string) {
	l := layout.New(c.Panels)
	switch c.Driver {
	case "spi":
		s, err := OpenStrips(c, spireg.Open, log)
		if err == nil {
			return s, "spi"
		}
		log.Warn().Err(err).
			Str("driver", "spi").
			Strs("ports", c.SPI.Ports).
			Msg("SPI init failed; falling back to console")
		fallthrough
	case "console":
		con := led.NewConsole(l)
		con.Gain = c.Console.Gain
		con.Every = time.Duration(c.Console.EveryMS) * time.Millisecond
		return con, "console"
	default:
		return &fake.Driver{Every: c.FPS * 10, Log: log}, "sim"
	}
}
