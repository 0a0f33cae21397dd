package sim

// ObstacleKind separates lane-bound vehicles from road-wide crossings.
type ObstacleKind uint8

const (
	KindVehicle ObstacleKind = iota
	KindCrossing
)

// AllLanes is the lane index carried by crossings, which span the road.
const AllLanes = -1

func (k ObstacleKind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindCrossing:
		return "crossing"
	}
	return "unknown"
}

func (k ObstacleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Obstacle is a spawned entity moving down the screen toward the actor.
type Obstacle struct {
	ID      uint64
	Kind    ObstacleKind
	Lane    int // AllLanes for crossings
	X, Y    float64
	Speed   float64
	Variant int // cosmetic only
}

// InLane reports whether the obstacle occupies lane. A crossing occupies
// every lane.
func (o *Obstacle) InLane(lane int) bool {
	return o.Kind == KindCrossing || o.Lane == lane
}

// Height of the obstacle's footprint.
func (o *Obstacle) Height(cfg *Config) float64 {
	if o.Kind == KindCrossing {
		return cfg.CrossingHeight
	}
	return cfg.VehicleHeight
}

// Footprint is the collision rectangle. Vehicles are a fixed box at (X, Y);
// crossings are a band across all lanes.
func (o *Obstacle) Footprint(cfg *Config) RectF {
	if o.Kind == KindCrossing {
		x0, x1 := cfg.CrossingSpan()
		return RectF{X0: x0, Y0: o.Y, X1: x1, Y1: o.Y + cfg.CrossingHeight}
	}
	return RectXYWH(o.X, o.Y, cfg.VehicleWidth, cfg.VehicleHeight)
}

// Update advances the obstacle by its current speed.
func (o *Obstacle) Update() {
	o.Y += o.Speed
}

// Ahead reports whether the obstacle is still approaching an actor whose top
// edge is at y: above it, with part of its footprint on screen.
func (o *Obstacle) Ahead(cfg *Config, y float64) bool {
	return o.Y < y && o.Y+o.Height(cfg) > 0
}
