package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-marquee/internal/app"
	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/config"
	"github.com/coreman2200/funtimes-marquee/internal/driver/fake"
	"github.com/coreman2200/funtimes-marquee/internal/odometer"
	"github.com/coreman2200/funtimes-marquee/internal/render"
)

// Headless run on a simulated clock: renders as fast as it can and logs
// what the display would have shown.
func main() {
	var (
		configPath = flag.String("config", "", "optional config.yaml")
		left       = flag.Int("left", 3600000, "seconds on the countdown at start")
		seconds    = flag.Int("seconds", 12, "simulated seconds to run")
		fps        = flag.Int("fps", 30, "simulated frames per second")
		night      = flag.Bool("night", false, "start at 22:00 instead of noon")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config")
		}
		cfg = *c
	}

	start := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	if *night {
		start = start.Add(10 * time.Hour)
	}
	cfg.Deadline = start.Add(time.Duration(*left) * time.Second).Format(time.RFC3339)

	opts, err := app.EngineOptions(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("engine options")
	}
	rolls := 0
	opts.Hooks = odometer.Hooks{
		Requested: func(slot int, from, to rune) { rolls++ },
		Settled: func(slot int, r rune) {
			log.Debug().Int("slot", slot).Str("digit", string(r)).Msg("settled")
		},
	}

	drv := &fake.Driver{Every: *fps, Log: log.Logger}
	eng, err := render.NewEngine(opts, drv)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}

	clk := clock.NewManual(start)
	cond := app.NewConductor(eng, clk, log.Logger)
	step := time.Second / time.Duration(max(*fps, 1))
	lastText := ""
	frames := *seconds * *fps
	for f := 0; f < frames; f++ {
		cond.Step()
		if c := eng.Cursor(); c.Text != lastText {
			log.Info().Bool("countdown", c.Countdown).Str("message", c.Text).Msg("scrolling")
			lastText = c.Text
		}
		clk.Advance(step)
	}

	log.Info().
		Int("frames", cond.Frames).
		Int("rolls", rolls).
		Str("odometer", eng.Bank.Text()).
		Bool("night", eng.Last.Night).
		Float64("render_ms", eng.Last.RenderMS).
		Msg("done")
}
