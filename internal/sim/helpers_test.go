package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqSource replays a fixed sequence of draws, reduced modulo n.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// quietConfig never spawns on its own, so tests place every obstacle.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.VehicleCadence = math.MaxInt32
	cfg.CrossingInterval = math.MaxInt32
	return cfg
}

func newQuietSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(quietConfig(), NewRand(1))
	require.NoError(t, err)
	return s
}
