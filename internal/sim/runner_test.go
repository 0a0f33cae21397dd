package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFrontend struct {
	quitAt    int // poll count that answers true; 0 never
	polls     int
	snaps     []Snapshot
	renderErr error
	finished  *Result
}

func (f *fakeFrontend) QuitRequested() bool {
	f.polls++
	return f.quitAt > 0 && f.polls >= f.quitAt
}

func (f *fakeFrontend) Render(s Snapshot) error {
	f.snaps = append(f.snaps, s)
	return f.renderErr
}

func (f *fakeFrontend) Finish(r Result) { f.finished = &r }

func TestRunStopsOnQuitSignal(t *testing.T) {
	s := newQuietSim(t)
	fe := &fakeFrontend{quitAt: 4}

	res, err := Run(context.Background(), s, fe, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: OutcomeQuit, Score: 3, Ticks: 3}, res)
	assert.Len(t, fe.snaps, 3)
	require.NotNil(t, fe.finished)
	assert.Equal(t, res, *fe.finished)
}

func TestRunStopsOnCollisionAndRendersFinalTick(t *testing.T) {
	s := newQuietSim(t)
	lane := s.Actor.Lane
	s.Traffic.SpawnVehicle(lane, s.Actor.Y-100)
	s.Traffic.SpawnVehicle(lane-1, s.Actor.Y)
	s.Traffic.SpawnVehicle(lane+1, s.Actor.Y)
	fe := &fakeFrontend{}

	res, err := Run(context.Background(), s, fe, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCollision, res.Outcome)
	require.NotEmpty(t, fe.snaps)
	last := fe.snaps[len(fe.snaps)-1]
	assert.Equal(t, OutcomeCollision, last.Outcome)
	assert.Equal(t, res.Score, last.Score)
}

func TestRunCancelledContextQuits(t *testing.T) {
	s := newQuietSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, s, &fakeFrontend{}, RunOptions{Paced: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, res.Outcome)
	assert.Equal(t, 0, res.Ticks)
}

func TestRunPacedHonorsTickCap(t *testing.T) {
	cfg := quietConfig()
	cfg.TickRate = 1000
	s, err := New(cfg, NewRand(1))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, Headless{}, RunOptions{Paced: true, MaxTicks: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Ticks)
	assert.Equal(t, OutcomeQuit, res.Outcome)
}

func TestRunReportsRenderError(t *testing.T) {
	s := newQuietSim(t)
	boom := errors.New("boom")
	fe := &fakeFrontend{renderErr: boom}

	res, err := Run(context.Background(), s, fe, RunOptions{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, OutcomeQuit, res.Outcome)
	assert.Nil(t, fe.finished)
}

func TestMultiFansOut(t *testing.T) {
	a := &fakeFrontend{}
	b := &fakeFrontend{quitAt: 2}
	m := Multi{a, b}

	assert.False(t, m.QuitRequested())
	assert.True(t, m.QuitRequested())
	assert.Equal(t, 2, a.polls)

	require.NoError(t, m.Render(Snapshot{Tick: 1}))
	assert.Len(t, a.snaps, 1)
	assert.Len(t, b.snaps, 1)

	b.renderErr = errors.New("down")
	assert.Error(t, m.Render(Snapshot{Tick: 2}))
	assert.Len(t, a.snaps, 2)

	m.Finish(Result{Score: 5})
	require.NotNil(t, a.finished)
	assert.Equal(t, 5, a.finished.Score)
}
