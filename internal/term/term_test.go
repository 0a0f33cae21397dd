package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatu/internal/sim"
)

// 60x41 cells: one HUD row, then 10x20 world units per cell.
func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *sim.Simulation) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 41)

	cfg := sim.DefaultConfig()
	cfg.GameOverHold = 2
	s, err := sim.New(cfg, sim.NewRand(3))
	require.NoError(t, err)

	term := NewWithScreen(screen, s.Config())
	t.Cleanup(term.Close)
	return term, screen, s
}

func cellRune(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y, n int) string {
	out := make([]rune, 0, n)
	for x := 0; x < n; x++ {
		out = append(out, cellRune(screen, x, y))
	}
	return string(out)
}

func TestRenderDrawsMatatuInStartLane(t *testing.T) {
	term, screen, s := newTestTerminal(t)
	require.NoError(t, term.Render(s.Snapshot()))

	// Actor spans x 270..330, y 660..780 -> cols 27..32, rows 33..38 (+1 HUD).
	assert.Equal(t, '█', cellRune(screen, 30, 36))
	assert.Equal(t, '█', cellRune(screen, 27, 34))
	assert.NotEqual(t, '█', cellRune(screen, 15, 36), "left lane is empty")
	assert.Equal(t, "SCORE 0", rowText(screen, 0, 7))
}

func TestRenderDrawsObstacles(t *testing.T) {
	term, screen, s := newTestTerminal(t)
	s.Traffic.SpawnVehicle(0, 100)
	s.Traffic.SpawnCrossing(400)
	require.NoError(t, term.Render(s.Snapshot()))

	// Vehicle in lane 0: x 120..180, y 100..220 -> cols 12..17, rows 5..10.
	assert.Equal(t, '█', cellRune(screen, 14, 1+7))
	// Crossing at y 400..430 -> rows 20..21 across x 120..480: white stripe
	// on the first seventh, yellow band on the second.
	assert.Equal(t, '█', cellRune(screen, 12, 1+20))
	assert.Equal(t, '▒', cellRune(screen, 20, 1+20))
	assert.Equal(t, '▒', cellRune(screen, 20, 1+21))
}

func TestRenderCrossingCountdown(t *testing.T) {
	term, screen, s := newTestTerminal(t)
	snap := s.Snapshot()
	snap.Crossing = sim.CrossingStopping
	snap.StopLeft = 250
	require.NoError(t, term.Render(snap))
	assert.Equal(t, "CROSSING 5", rowText(screen, 0, 60)[50:])
}

func TestFinishHoldsGameOver(t *testing.T) {
	term, screen, s := newTestTerminal(t)
	snap := s.Snapshot()
	snap.Outcome = sim.OutcomeCollision
	snap.Score = 42
	require.NoError(t, term.Render(snap))

	start := time.Now()
	term.Finish(sim.Result{Outcome: sim.OutcomeCollision, Score: 42})
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second/60)

	msg := " GAME OVER  SCORE 42 "
	x := (60 - len(msg)) / 2
	assert.Equal(t, msg, rowText(screen, 20, x+len(msg))[x:])
}

func TestFinishSkipsHoldOnQuit(t *testing.T) {
	term, screen, s := newTestTerminal(t)
	require.NoError(t, term.Render(s.Snapshot()))
	term.Finish(sim.Result{Outcome: sim.OutcomeQuit})
	assert.NotContains(t, rowText(screen, 20, 60), "GAME OVER")
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want bool
	}{
		{"escape", tcell.KeyEscape, 0, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, true},
		{"q", tcell.KeyRune, 'q', true},
		{"Q", tcell.KeyRune, 'Q', true},
		{"other rune", tcell.KeyRune, 'x', false},
		{"enter", tcell.KeyEnter, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isQuitKey(tt.key, tt.r))
		})
	}
}

func TestQuitRequestedIdle(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	assert.False(t, term.QuitRequested())
}

func TestSoundForEvents(t *testing.T) {
	_, ok := soundFor(sim.EventVehicleSpawned)
	assert.False(t, ok)
	kind, ok := soundFor(sim.EventCollision)
	require.True(t, ok)
	assert.Equal(t, soundCrash, kind)
}

func TestStreamersAreFinite(t *testing.T) {
	for _, kind := range []sound{soundLaneChange, soundBrake, soundCrossingStop, soundCrossingGo, soundCrash} {
		s := streamerFor(kind)
		require.NotNil(t, s)

		buf := make([][2]float64, 512)
		total, peak := 0, 0.0
		for {
			n, ok := s.Stream(buf)
			total += n
			for _, v := range buf[:n] {
				peak = max(peak, v[0], -v[0])
			}
			if !ok {
				break
			}
			require.Less(t, total, sampleRate.N(2*time.Second), "sound %d never ends", kind)
		}
		assert.Greater(t, total, 0)
		assert.Greater(t, peak, 0.0)
	}
}

func TestNoiseLength(t *testing.T) {
	s := noise(10*time.Millisecond, 1, 0)
	want := sampleRate.N(10 * time.Millisecond)
	buf := make([][2]float64, want+100)
	n, _ := s.Stream(buf)
	assert.Equal(t, want, n)
	n, ok := s.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestCloseWithFullEventBuffer(t *testing.T) {
	term, screen, _ := newTestTerminal(t)
	key := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	require.Eventually(t, func() bool {
		screen.PostEvent(key)
		return len(term.events) == cap(term.events)
	}, 2*time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		term.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked on a full event buffer")
	}
	select {
	case <-term.polled:
	default:
		t.Fatal("poller still running after Close")
	}
}
