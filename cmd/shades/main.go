package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/xyshades/internal/app"
	"github.com/coreman2200/xyshades/internal/button"
	"github.com/coreman2200/xyshades/internal/config"
	diag "github.com/coreman2200/xyshades/internal/diagnostics"
	"github.com/coreman2200/xyshades/internal/led"
	"github.com/coreman2200/xyshades/internal/render"
	"github.com/coreman2200/xyshades/internal/render/post"
	"github.com/coreman2200/xyshades/internal/ws"
)

func main() {
	// ---- Flags (config.yaml overrides them where set) ----
	def := config.Default()
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", def.Driver, "driver: sim | spi | screen | term")
		addr       = flag.String("http", def.HTTPAddr, "HTTP listen address; empty disables")
		level      = flag.String("log-level", def.LogLevel, "log level")
		logFile    = flag.String("log-file", "", "log to this file instead of stdout")
		fps        = flag.Int("fps", def.FPS, "loop polls per second")
		start      = flag.String("start", def.Start, "routine selected at boot")
		seed       = flag.Uint64("seed", def.Seed, "random seed")
	)
	flag.Parse()

	cfg := config.Default()
	cfg.Driver, cfg.HTTPAddr, cfg.LogLevel = *driver, *addr, *level
	cfg.FPS, cfg.Start, cfg.Seed = *fps, *start, *seed

	// ---- Load config.yaml (optional) ----
	loadErr := config.LoadInto(*configPath, cfg)

	// ---- Logging ----
	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Msg("open log file")
		}
		defer f.Close()
		out = f
	} else if cfg.Driver == "term" {
		// the terminal belongs to the preview
		out = io.Discard
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level; using info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	persist := loadErr == nil
	if loadErr != nil {
		log.Warn().Err(loadErr).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid flags")
		}
	}

	m, err := cfg.Mapper()
	if err != nil {
		log.Fatal().Err(err).Msg("layout")
	}

	// ---- Driver selection ----
	var (
		sink led.Driver
		term *led.Term
	)
	switch cfg.Driver {
	case "spi":
		dev := cfg.SPI.Dev
		if dev == "" {
			dev = "/dev/spidev0.0"
		}
		s, err := led.Open(dev, m.Count(), cfg.SPI.SpeedHz)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", dev).
				Int("speed_hz", cfg.SPI.SpeedHz).
				Msg("SPI init failed; falling back to SIM")
			sink = led.NewSim(m.Count())
		} else {
			sink = s
		}
	case "screen":
		sink = led.NewScreen(m.Count())
	case "term":
		t, err := led.NewTerm(nil, m)
		if err != nil {
			log.Fatal().Err(err).Msg("terminal preview")
		}
		term, sink = t, t
	default:
		sink = led.NewSim(m.Count())
	}
	output := led.NewOutput(sink)
	defer output.Close()

	core, err := app.New(cfg, output)
	if err != nil {
		log.Fatal().Err(err).Msg("core")
	}

	// ---- Control surfaces ----
	state := ws.NewState(core, cfg.Dim(), cfg.FPS)
	state.Driver = cfg.Driver
	if persist {
		state.OnChange = func() {
			snap := core.Snapshot()
			if err := config.Save(*configPath, &snap); err != nil {
				log.Warn().Err(err).Str("path", *configPath).Msg("config save failed")
			}
		}
	}
	var rgb []byte
	core.OnFrame = func(name string, frame []render.Color) {
		rgb = post.PreviewRGB(rgb, frame)
		state.Publish(name, rgb)
	}
	core.OnSwitch = func(i int, name string) {
		log.Info().Int("index", i).Str("routine", name).Msg("routine")
		state.Switched(i, name)
	}
	core.OnError = func(n uint64, err error) { state.PushDiag(diag.WriteFailed(n, err)) }

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Buttons.Enabled {
		d := button.NewDispatcher(time.Duration(cfg.Buttons.DebounceMS) * time.Millisecond)
		d.Next = core.Next
		d.Brightness = core.StepBrightness
		d.OnPress = func(id button.ID) {
			state.PushDiag(diag.Diagnostic{Severity: diag.Info, Code: diag.ButtonPressed, Summary: "Button " + id.String()})
		}
		if c, err := button.Watch(cfg.Buttons, d); err != nil {
			log.Warn().Err(err).Msg("buttons unavailable")
		} else {
			defer c.Close()
		}
	}

	var srv *http.Server
	if cfg.HTTPAddr != "" {
		srv = &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      withCORS(state.Mux()),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.HTTPAddr).Str("driver", cfg.Driver).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	if term != nil {
		go term.Keys(ctx, func(k tcell.Key, r rune) {
			switch {
			case k == tcell.KeyEscape || k == tcell.KeyCtrlC || r == 'q':
				stop()
			case k == tcell.KeyRight || r == 'n' || r == ' ':
				core.Next()
			case r == 'b':
				core.StepBrightness()
			case r == 'a':
				core.SetAutocycle(!core.Autocycle())
			}
		})
	}

	// ---- Run loop until a signal ----
	log.Info().Int("routines", len(core.Routines())).Str("start", cfg.Start).Msg("running")
	core.Run(ctx, cfg.FPS)
	log.Info().Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
