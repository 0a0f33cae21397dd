package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Visible road area (in world units) and tick rate.
const (
	WorldWidth  = 600
	WorldHeight = 800
	TickRate    = 60
)

// Footprints.
const (
	ActorWidth        = 60
	ActorHeight       = 120
	ActorBottomMargin = 20
	VehicleWidth      = 60
	VehicleHeight     = 120
	CrossingHeight    = 30
)

// Per-tick travel of obstacles toward the actor.
const (
	BaseSpeed  = 8.0
	BrakeSpeed = 2.0
)

// Decision distances, measured along the road.
const (
	CrossingTriggerDistance = 30.0
	AvoidDistance           = 200.0
	LaneSafeDistance        = 150.0
	CrossingRelocateMargin  = 100.0
)

// Cadences. Vehicle cadence is in ticks, the rest in seconds of ticks.
const (
	VehicleCadence          = 60
	CrossingIntervalSeconds = 30
	CrossingStopSeconds     = 5
	GameOverHoldSeconds     = 2
	CarVariants             = 3
)

// Config is fixed at startup and never changes while a simulation runs.
type Config struct {
	Width  float64
	Height float64
	Lanes  []float64 // lane center x coordinates, left to right

	ActorWidth        float64
	ActorHeight       float64
	ActorBottomMargin float64
	VehicleWidth      float64
	VehicleHeight     float64
	CrossingHeight    float64

	BaseSpeed  float64
	BrakeSpeed float64

	CrossingTrigger  float64
	AvoidDistance    float64
	LaneSafeDistance float64
	RelocateMargin   float64

	VehicleCadence   int // ticks between vehicle spawns
	CrossingInterval int // ticks between crossing spawns
	CrossingStop     int // ticks the actor holds at a crossing
	GameOverHold     int // ticks a frontend keeps the final frame up

	TickRate    int
	CarVariants int
}

// DefaultConfig returns the reference three-lane road.
func DefaultConfig() Config {
	return Config{
		Width:  WorldWidth,
		Height: WorldHeight,
		Lanes:  []float64{150, 300, 450},

		ActorWidth:        ActorWidth,
		ActorHeight:       ActorHeight,
		ActorBottomMargin: ActorBottomMargin,
		VehicleWidth:      VehicleWidth,
		VehicleHeight:     VehicleHeight,
		CrossingHeight:    CrossingHeight,

		BaseSpeed:  BaseSpeed,
		BrakeSpeed: BrakeSpeed,

		CrossingTrigger:  CrossingTriggerDistance,
		AvoidDistance:    AvoidDistance,
		LaneSafeDistance: LaneSafeDistance,
		RelocateMargin:   CrossingRelocateMargin,

		VehicleCadence:   VehicleCadence,
		CrossingInterval: CrossingIntervalSeconds * TickRate,
		CrossingStop:     CrossingStopSeconds * TickRate,
		GameOverHold:     GameOverHoldSeconds * TickRate,

		TickRate:    TickRate,
		CarVariants: CarVariants,
	}
}

// Validate rejects configurations the tick loop cannot run safely.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("area %gx%g: %w", c.Width, c.Height, ErrInvalidConfig)
	}
	if len(c.Lanes) == 0 {
		return fmt.Errorf("no lanes: %w", ErrInvalidConfig)
	}
	dims := []struct {
		name string
		v    float64
	}{
		{"actor width", c.ActorWidth},
		{"actor height", c.ActorHeight},
		{"vehicle width", c.VehicleWidth},
		{"vehicle height", c.VehicleHeight},
		{"crossing height", c.CrossingHeight},
		{"base speed", c.BaseSpeed},
		{"brake speed", c.BrakeSpeed},
		{"crossing trigger", c.CrossingTrigger},
		{"avoid distance", c.AvoidDistance},
		{"lane safe distance", c.LaneSafeDistance},
		{"relocate margin", c.RelocateMargin},
	}
	for _, d := range dims {
		if d.v <= 0 {
			return fmt.Errorf("%s %g must be positive: %w", d.name, d.v, ErrInvalidConfig)
		}
	}
	if c.ActorBottomMargin < 0 || c.ActorHeight+c.ActorBottomMargin > c.Height {
		return fmt.Errorf("actor does not fit vertically: %w", ErrInvalidConfig)
	}
	if c.BrakeSpeed > c.BaseSpeed {
		return fmt.Errorf("brake speed %g above base speed %g: %w", c.BrakeSpeed, c.BaseSpeed, ErrInvalidConfig)
	}
	ticks := []struct {
		name string
		v    int
	}{
		{"vehicle cadence", c.VehicleCadence},
		{"crossing interval", c.CrossingInterval},
		{"crossing stop", c.CrossingStop},
		{"tick rate", c.TickRate},
		{"car variants", c.CarVariants},
	}
	for _, t := range ticks {
		if t.v <= 0 {
			return fmt.Errorf("%s %d must be positive: %w", t.name, t.v, ErrInvalidConfig)
		}
	}
	if c.GameOverHold < 0 {
		return fmt.Errorf("game over hold %d: %w", c.GameOverHold, ErrInvalidConfig)
	}
	half := max(c.ActorWidth, c.VehicleWidth) / 2
	for i, x := range c.Lanes {
		if x-half < 0 || x+half > c.Width {
			return fmt.Errorf("lane %d at %g leaves the road: %w", i, x, ErrInvalidConfig)
		}
		if i > 0 && x <= c.Lanes[i-1] {
			return fmt.Errorf("lane %d at %g not right of lane %d: %w", i, x, i-1, ErrInvalidConfig)
		}
	}
	return nil
}

// LaneCount is N, the number of lanes.
func (c *Config) LaneCount() int { return len(c.Lanes) }

// MiddleLane is where the actor starts.
func (c *Config) MiddleLane() int { return len(c.Lanes) / 2 }

// LaneLeft returns the left edge of a body of the given width centered in lane.
func (c *Config) LaneLeft(lane int, width float64) float64 {
	return c.Lanes[lane] - width/2
}

// ActorY is the fixed top edge of the actor's footprint.
func (c *Config) ActorY() float64 {
	return c.Height - c.ActorHeight - c.ActorBottomMargin
}

// CrossingSpan returns the horizontal extent of a crossing band: from the
// leftmost lane's left edge to the rightmost lane's right edge.
func (c *Config) CrossingSpan() (x0, x1 float64) {
	half := c.VehicleWidth / 2
	return c.Lanes[0] - half, c.Lanes[len(c.Lanes)-1] + half
}
