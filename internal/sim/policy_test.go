package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type placed struct {
	kind ObstacleKind
	lane int
	dist float64 // actor.Y minus obstacle.Y; negative is behind
}

func place(cfg *Config, a *Actor, ps ...placed) []Obstacle {
	tr := NewTraffic(cfg, NewRand(1))
	for _, p := range ps {
		if p.kind == KindCrossing {
			tr.SpawnCrossing(a.Y - p.dist)
			continue
		}
		tr.SpawnVehicle(p.lane, a.Y-p.dist)
	}
	return tr.Obstacles
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name      string
		lane      int
		obstacles []placed
		want      Decision
	}{
		{"empty road", 1, nil, DecisionClear},
		{"vehicle at 150 with left clear", 1, []placed{{KindVehicle, 1, 150}}, DecisionMoveLeft},
		{"vehicle at 199", 1, []placed{{KindVehicle, 1, 199}}, DecisionMoveLeft},
		{"vehicle at exactly 200", 1, []placed{{KindVehicle, 1, 200}}, DecisionClear},
		{"vehicle behind", 1, []placed{{KindVehicle, 1, -130}}, DecisionClear},
		{"vehicle in other lane", 1, []placed{{KindVehicle, 2, 100}}, DecisionClear},
		{
			"left blocked prefers right", 1,
			[]placed{{KindVehicle, 1, 150}, {KindVehicle, 0, 100}},
			DecisionMoveRight,
		},
		{
			"left blocked from behind", 1,
			[]placed{{KindVehicle, 1, 150}, {KindVehicle, 0, -149}},
			DecisionMoveRight,
		},
		{
			"left at exactly safe distance", 1,
			[]placed{{KindVehicle, 1, 150}, {KindVehicle, 0, 150}},
			DecisionMoveLeft,
		},
		{
			"both sides blocked", 1,
			[]placed{{KindVehicle, 1, 180}, {KindVehicle, 0, 0}, {KindVehicle, 2, 40}},
			DecisionBrake,
		},
		{"leftmost lane goes right", 0, []placed{{KindVehicle, 0, 150}}, DecisionMoveRight},
		{
			"rightmost lane with left blocked brakes", 2,
			[]placed{{KindVehicle, 2, 150}, {KindVehicle, 1, 10}},
			DecisionBrake,
		},
		{"crossing within trigger", 1, []placed{{KindCrossing, 0, 29}}, DecisionCrossingStop},
		{"crossing at trigger distance", 1, []placed{{KindCrossing, 0, 30}}, DecisionClear},
		{"crossing inside avoidance range", 1, []placed{{KindCrossing, 0, 100}}, DecisionClear},
		{
			"crossing beats vehicle", 1,
			[]placed{{KindVehicle, 1, 150}, {KindCrossing, 0, 10}},
			DecisionCrossingStop,
		},
		{
			"crossing near blocks side lanes", 1,
			[]placed{{KindVehicle, 1, 150}, {KindCrossing, 0, 60}},
			DecisionBrake,
		},
		{
			"crossing behind within safety blocks side lanes", 0,
			[]placed{{KindVehicle, 0, 190}, {KindCrossing, 0, -100}},
			DecisionBrake,
		},
		{
			"crossing beyond safety distance", 1,
			[]placed{{KindVehicle, 1, 199}, {KindCrossing, 0, 160}},
			DecisionMoveLeft,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			a := NewActor(&cfg)
			for a.Lane > tc.lane {
				a.MoveLeft()
			}
			for a.Lane < tc.lane {
				a.MoveRight()
			}
			obs := place(&cfg, &a, tc.obstacles...)
			stop := NewCrossingStop(cfg.CrossingStop)

			got, _ := Decide(&cfg, &a, obs, &stop)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLaneSafe(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)

	obs := place(&cfg, &a, placed{KindCrossing, 0, 60})
	for lane := range cfg.Lanes {
		assert.False(t, LaneSafe(&cfg, &a, obs, lane), "lane %d", lane)
	}
	assert.False(t, LaneSafe(&cfg, &a, nil, -1))
	assert.False(t, LaneSafe(&cfg, &a, nil, cfg.LaneCount()))

	obs = place(&cfg, &a, placed{KindCrossing, 0, 150}, placed{KindVehicle, 2, -150})
	assert.True(t, LaneSafe(&cfg, &a, obs, 0))
	assert.True(t, LaneSafe(&cfg, &a, obs, 2))
}

func TestDecideHoldsWhileStopping(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)
	stop := NewCrossingStop(cfg.CrossingStop)
	stop.Begin(&a)

	obs := place(&cfg, &a, placed{KindVehicle, 1, 100})
	got, la := Decide(&cfg, &a, obs, &stop)
	assert.Equal(t, DecisionCrossingHold, got)
	assert.Equal(t, -1, la.Closest)
}

func TestScanPicksNearest(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)
	obs := place(&cfg, &a,
		placed{KindVehicle, 1, 400},
		placed{KindCrossing, 0, 500},
		placed{KindVehicle, 1, 250},
		placed{KindCrossing, 0, 300},
		placed{KindVehicle, 0, 50},
	)
	la := Scan(&cfg, &a, obs)
	assert.Equal(t, 2, la.Closest)
	assert.Equal(t, 3, la.CrossingAhead)
}

func TestScanIgnoresObstaclesOffTop(t *testing.T) {
	cfg := DefaultConfig()
	a := NewActor(&cfg)
	tr := NewTraffic(&cfg, NewRand(1))
	tr.SpawnVehicle(1, -cfg.VehicleHeight)
	tr.SpawnCrossing(-cfg.CrossingHeight)

	la := Scan(&cfg, &a, tr.Obstacles)
	assert.Equal(t, Lookahead{Closest: -1, CrossingAhead: -1}, la)
}
