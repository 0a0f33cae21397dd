// Command matatu drives the autonomous matatu down a three-lane road until
// it crashes or the viewer quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"matatu/internal/game"
	"matatu/internal/sim"
	"matatu/internal/spectate"
	"matatu/internal/term"
)

// seedEnv overrides the clock seed when -seed is not given.
const seedEnv = "MATATU_SEED"

var errUsage = errors.New("usage")

type options struct {
	ui       string
	seed     string
	ticks    int
	spectate string
	mute     bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("matatu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.ui, "ui", "gl", "frontend: gl, term or headless")
	fs.StringVar(&opts.seed, "seed", "", "random seed (default $"+seedEnv+", else the clock)")
	fs.IntVar(&opts.ticks, "ticks", 0, "stop after this many ticks (0 = until collision)")
	fs.StringVar(&opts.spectate, "spectate", "", "serve the websocket spectator feed on this address")
	fs.BoolVar(&opts.mute, "mute", false, "disable sound")
	fs.BoolVar(&opts.verbose, "v", false, "log every spawn")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", errUsage, err)
	}
	switch opts.ui {
	case "gl", "term", "headless":
	default:
		return opts, fmt.Errorf("%w: unknown -ui %q", errUsage, opts.ui)
	}
	if opts.ticks < 0 {
		return opts, fmt.Errorf("%w: -ticks must not be negative", errUsage)
	}
	return opts, nil
}

// resolveSeed picks the flag, then the environment, then the clock.
func resolveSeed(flagVal string, getenv func(string) string, now func() time.Time) (uint64, error) {
	if flagVal != "" {
		v, err := strconv.ParseUint(flagVal, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse -seed: %w", err)
		}
		return v, nil
	}
	if s := getenv(seedEnv); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", seedEnv, err)
		}
		return v, nil
	}
	return uint64(now().UnixNano()), nil
}

// setupLogging points the standard logrus logger at w. Spawns are logged at
// debug level, so only verbose runs show them.
func setupLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// logEvents writes simulation events to the standard logger.
func logEvents(bus *sim.EventBus) {
	bus.SubscribeAll(func(e sim.Event) {
		entry := log.WithFields(log.Fields{"tick": e.Tick, "lane": e.Lane, "event": e.Type.String()})
		switch e.Type {
		case sim.EventVehicleSpawned, sim.EventCrossingSpawned:
			entry.WithField("id", e.Data).Debug("spawn")
		case sim.EventLaneChange:
			entry.WithField("from", e.Data).Info("lane change")
		case sim.EventCrossingStop:
			entry.WithField("crossing", e.Data).Info("crossing stop")
		case sim.EventCollision:
			entry.WithField("score", e.Data).Warn("collision")
		default:
			entry.Info(e.Type.String())
		}
	})
}

// attacher is a frontend that reacts to simulation events (sound, effects).
type attacher interface {
	Attach(*sim.EventBus)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	setupLogging(stderr, false)

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	setupLogging(stderr, opts.verbose)
	seed, err := resolveSeed(opts.seed, getenv, time.Now)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	s, err := sim.New(sim.DefaultConfig(), sim.NewRand(seed))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	log.WithFields(log.Fields{"seed": seed, "ui": opts.ui}).Info("starting")

	res, err := drive(ctx, s, opts, seed, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "%s: score %d after %d ticks\n", res.Outcome, res.Score, res.Ticks)
	return 0
}

// drive opens the chosen frontends, runs the simulation to its end and
// releases everything before returning.
func drive(ctx context.Context, s *sim.Simulation, opts options, seed uint64, stderr io.Writer) (sim.Result, error) {
	var fe sim.Frontend = sim.Headless{}
	paced := true
	switch opts.ui {
	case "gl":
		d, err := game.NewDesktop(s.Config(), seed, opts.mute)
		if err != nil {
			return sim.Result{}, fmt.Errorf("desktop: %w", err)
		}
		defer d.Close()
		fe = d
	case "term":
		t, err := term.New(s.Config(), opts.mute)
		if err != nil {
			return sim.Result{}, fmt.Errorf("terminal: %w", err)
		}
		// The screen owns the terminal until Close.
		log.SetOutput(io.Discard)
		defer func() {
			t.Close()
			log.SetOutput(stderr)
		}()
		fe = t
	case "headless":
		paced = false
	}
	if c, ok := fe.(attacher); ok {
		c.Attach(s.Events)
	}
	logEvents(s.Events)

	if opts.spectate != "" {
		srv, err := spectate.Listen(opts.spectate)
		if err != nil {
			return sim.Result{}, err
		}
		log.WithField("url", fmt.Sprintf("ws://%s/ws", srv.Addr())).Info("spectator feed")
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				log.WithError(err).Warn("spectator shutdown")
			}
		}()
		fe = sim.Multi{fe, srv.Hub}
		// Viewers watch in real time.
		paced = true
	}

	res, err := sim.Run(ctx, s, fe, sim.RunOptions{Paced: paced, MaxTicks: opts.ticks})
	if err != nil {
		return res, fmt.Errorf("run: %w", err)
	}
	return res, nil
}
