package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewActorStartsInMiddleLane(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)
	assert.Equal(t, 1, a.Lane)
	assert.Equal(t, 270.0, a.X)
	assert.Equal(t, 660.0, a.Y)
	assert.False(t, a.Braking)
}

func TestActorLaneChangesStopAtEdges(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)

	assert.True(t, a.MoveLeft())
	assert.Equal(t, 0, a.Lane)
	assert.False(t, a.MoveLeft())
	assert.Equal(t, 0, a.Lane)
	assert.Equal(t, 120.0, a.X)

	assert.True(t, a.MoveRight())
	assert.True(t, a.MoveRight())
	assert.False(t, a.MoveRight())
	assert.Equal(t, 2, a.Lane)
	assert.Equal(t, 420.0, a.X)
}

func TestActorXTracksLane(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lanes = []float64{100, 200, 300, 400, 500}
	a := NewActor(&cfg)
	assert.Equal(t, 2, a.Lane)

	moves := []func() bool{a.MoveLeft, a.MoveLeft, a.MoveLeft, a.MoveRight, a.MoveRight, a.MoveRight, a.MoveRight, a.MoveRight, a.MoveRight}
	for _, m := range moves {
		m()
		assert.GreaterOrEqual(t, a.Lane, 0)
		assert.Less(t, a.Lane, cfg.LaneCount())
		assert.Equal(t, cfg.Lanes[a.Lane]-cfg.ActorWidth/2, a.X)
	}
}

func TestActorBrakeRelease(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)
	a.Brake()
	assert.True(t, a.Braking)
	a.Brake()
	assert.True(t, a.Braking)
	a.Release()
	assert.False(t, a.Braking)
}
