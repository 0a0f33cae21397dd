// Package term renders the simulation in a terminal with tcell and plays
// sound effects through beep.
package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"matatu/internal/sim"
)

// Terminal is a sim frontend on a tcell screen. Esc, Ctrl-C and q quit.
type Terminal struct {
	screen  tcell.Screen
	events  chan tcell.Event
	done    chan struct{} // closed by Close; unblocks the poller
	polled  chan struct{} // closed when the poller exits
	stopped sync.Once

	quit     bool
	scroll   float64
	last     sim.Snapshot
	holdTick time.Duration
	hold     int // ticks to keep the game-over frame up
}

// New opens the process terminal. With mute unset it also starts the
// speaker; a speaker failure is logged and play continues silently.
func New(cfg *sim.Config, mute bool) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	if !mute {
		if err := initSpeaker(); err != nil {
			log.WithError(err).Warn("audio init failed, continuing without sound")
		}
	}
	return NewWithScreen(screen, cfg), nil
}

// NewWithScreen wraps an initialised screen and starts polling its events.
func NewWithScreen(screen tcell.Screen, cfg *sim.Config) *Terminal {
	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
		polled: make(chan struct{}),
		hold:   cfg.GameOverHold,
	}
	if cfg.TickRate > 0 {
		t.holdTick = time.Second / time.Duration(cfg.TickRate)
	}
	screen.HideCursor()
	go t.poll()
	return t
}

func (t *Terminal) poll() {
	defer close(t.polled)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Attach plays a sound for each event that has one.
func (t *Terminal) Attach(bus *sim.EventBus) {
	bus.SubscribeAll(func(e sim.Event) {
		if kind, ok := soundFor(e.Type); ok {
			play(kind)
		}
	})
}

// QuitRequested drains pending input without blocking.
func (t *Terminal) QuitRequested() bool {
	for {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			return t.quit
		}
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev.Key(), ev.Rune()) {
			t.quit = true
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func isQuitKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

// Render draws one tick and shows it.
func (t *Terminal) Render(snap sim.Snapshot) error {
	t.last = snap
	t.scroll += snap.Speed
	drawSnapshot(t.screen, &snap, t.scroll)
	t.screen.Show()
	return nil
}

// Finish keeps the game-over frame up for the hold, or until a quit key.
func (t *Terminal) Finish(res sim.Result) {
	if res.Outcome != sim.OutcomeCollision {
		return
	}
	drawSnapshot(t.screen, &t.last, t.scroll)
	t.screen.Show()
	for range t.hold {
		if t.QuitRequested() {
			return
		}
		time.Sleep(t.holdTick)
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.stopped.Do(func() {
		close(t.done)
		t.screen.Fini()
		<-t.polled
	})
}
