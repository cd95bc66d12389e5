package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-marquee/internal/app"
	"github.com/coreman2200/funtimes-marquee/internal/clock"
	"github.com/coreman2200/funtimes-marquee/internal/config"
	"github.com/coreman2200/funtimes-marquee/internal/layout"
	"github.com/coreman2200/funtimes-marquee/internal/render"
	"github.com/coreman2200/funtimes-marquee/internal/selftest"
)

func main() {
	// ---- Flags (config.yaml supplies the rest) ----
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "", "driver: spi | console | sim (overrides config)")
		fps        = flag.Int("fps", 0, "target frames per second (overrides config)")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		testName   = flag.String("selftest", "", "run a wiring pattern and exit: index_sweep | rgb_channels | panel_sweep | column_sweep")
		checkOnly  = flag.Bool("check", false, "report config diagnostics and exit")
		writeCfg   = flag.String("write-config", "", "write the effective config to this path and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Load config.yaml (optional) ----
	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = *c
	}
	if *driver != "" {
		cfg.Driver = *driver
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if *simOnly {
		cfg.Driver = "sim"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	if *writeCfg != "" {
		if err := config.Save(*writeCfg, &cfg); err != nil {
			log.Fatal().Err(err).Str("path", *writeCfg).Msg("write config")
		}
		log.Info().Str("path", *writeCfg).Msg("config written")
		return
	}

	// ---- Diagnostics ----
	f, err := app.LoadFont(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("font")
	}
	_, err = app.Preflight(cfg, f, time.Now(), log.Logger)
	if *checkOnly {
		if err != nil {
			os.Exit(1)
		}
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("refusing to start")
	}

	// ---- Hardware + engine ----
	if cfg.Driver == "spi" {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed")
		}
	}
	drv, selected := app.OpenDriver(cfg, log.Logger)

	opts, err := app.EngineOptions(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("engine options")
	}
	eng, err := render.NewEngine(opts, drv)
	if err != nil {
		log.Fatal().Err(err).Msg("engine")
	}
	cond := app.NewConductor(eng, clock.System{}, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		if c, ok := drv.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	if *testName != "" {
		kind, err := selftest.ParseKind(*testName)
		if err != nil {
			log.Fatal().Err(err).Msg("self test")
		}
		r := selftest.NewRunner(selftest.Plan{Kind: kind, Divisor: cfg.Brightness.Day}, layout.New(cfg.Panels))
		if err := cond.RunSelfTest(ctx, r, cfg.FPS); err != nil {
			log.Error().Err(err).Msg("self test stopped")
		}
		return
	}

	log.Info().Str("driver", selected).Int("fps", cfg.FPS).Str("deadline", cfg.Deadline).Msg("marquee starting")
	cond.Run(ctx, cfg.FPS)
	log.Info().Int("frames", cond.Frames).Int("errors", cond.Errors).Msg("shutting down")
}
