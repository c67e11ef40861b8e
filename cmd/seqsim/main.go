// Command seqsim runs the effects core on a virtual clock, with no output
// hardware, and prints each routine switch. Use it to check an autocycle
// program without waiting for it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/xyshades/internal/app"
	"github.com/coreman2200/xyshades/internal/config"
	"github.com/coreman2200/xyshades/internal/driver/fake"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (default: built-in)")
		duration   = flag.Duration("duration", 2*time.Minute, "virtual time to simulate")
		stepMS     = flag.Int64("step-ms", 5, "virtual milliseconds per loop iteration")
		verbose    = flag.Bool("v", false, "log every frame")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("config")
		}
		cfg = c
	}
	if *stepMS <= 0 {
		log.Fatal().Int64("step_ms", *stepMS).Msg("step must be positive")
	}

	drv := &fake.Driver{}
	core, err := app.New(cfg, drv)
	if err != nil {
		log.Fatal().Err(err).Msg("core")
	}

	var now int64
	core.OnSwitch = func(i int, name string) {
		fmt.Printf("%8.2fs  [%2d] %s\n", float64(now)/1000, i, name)
	}
	dt := float64(*stepMS) / 1000
	for end := duration.Milliseconds(); now <= end; now += *stepMS {
		core.Step(now, dt)
	}
	fmt.Printf("done: %d frames in %s virtual\n", drv.Count(), *duration)
}
