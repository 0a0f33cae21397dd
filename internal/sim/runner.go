package sim

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Frontend is the platform collaborator: it supplies the quit signal at the
// top of each tick and draws the snapshot at the end of it. It never writes
// back into the simulation.
type Frontend interface {
	QuitRequested() bool
	Render(Snapshot) error
}

// Finisher is implemented by frontends that present the final result, such
// as a game-over screen.
type Finisher interface {
	Finish(Result)
}

// Result is what a finished run reports.
type Result struct {
	Outcome Outcome
	Score   int
	Ticks   int
}

// RunOptions tunes the loop. Zero values run unpaced and unbounded.
type RunOptions struct {
	Paced    bool // hold the configured tick rate
	MaxTicks int  // reaching it counts as a quit; 0 means no cap
}

// Run drives s until collision or quit. Context cancellation is a quit. The
// returned error is reserved for frontend failures.
func Run(ctx context.Context, s *Simulation, fe Frontend, opts RunOptions) (Result, error) {
	var ticker *time.Ticker
	if opts.Paced {
		ticker = time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
		defer ticker.Stop()
	}

	var runErr error
	for s.Outcome() == OutcomeRunning {
		quit := fe.QuitRequested() || ctx.Err() != nil
		if opts.MaxTicks > 0 && s.Ticks >= opts.MaxTicks {
			quit = true
		}
		if s.Step(quit) == OutcomeQuit {
			break
		}
		if err := fe.Render(s.Snapshot()); err != nil {
			runErr = fmt.Errorf("render tick %d: %w", s.Ticks, err)
			s.Step(true)
			break
		}
		if ticker == nil || s.Outcome() != OutcomeRunning {
			continue
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	res := Result{Outcome: s.Outcome(), Score: s.Score, Ticks: s.Ticks}
	if f, ok := fe.(Finisher); ok && runErr == nil {
		f.Finish(res)
	}
	return res, runErr
}

// Multi fans a tick out to several frontends. Quit is requested if any of
// them requests it; every frontend renders and errors are joined.
type Multi []Frontend

func (m Multi) QuitRequested() bool {
	quit := false
	for _, fe := range m {
		// Poll all of them so each drains its own input.
		if fe.QuitRequested() {
			quit = true
		}
	}
	return quit
}

func (m Multi) Render(snap Snapshot) error {
	var errs []error
	for _, fe := range m {
		if err := fe.Render(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Finish(res Result) {
	for _, fe := range m {
		if f, ok := fe.(Finisher); ok {
			f.Finish(res)
		}
	}
}

// Headless renders nothing and never asks to quit.
type Headless struct{}

func (Headless) QuitRequested() bool   { return false }
func (Headless) Render(Snapshot) error { return nil }
