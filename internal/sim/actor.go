package sim

// Actor is the autonomously driven matatu. Its x is always derived from its
// lane; y never changes.
type Actor struct {
	Lane    int
	X, Y    float64
	Speed   float64
	Braking bool

	cfg *Config
}

// NewActor places the actor in the middle lane, released.
func NewActor(cfg *Config) Actor {
	a := Actor{
		Lane:  cfg.MiddleLane(),
		Y:     cfg.ActorY(),
		Speed: cfg.BaseSpeed,
		cfg:   cfg,
	}
	a.X = cfg.LaneLeft(a.Lane, cfg.ActorWidth)
	return a
}

// MoveLeft shifts one lane left. Lane 0 is a sticky boundary; the return
// value reports whether the lane changed.
func (a *Actor) MoveLeft() bool {
	if a.Lane <= 0 {
		return false
	}
	a.Lane--
	a.X = a.cfg.LaneLeft(a.Lane, a.cfg.ActorWidth)
	return true
}

// MoveRight shifts one lane right, a no-op in the last lane.
func (a *Actor) MoveRight() bool {
	if a.Lane >= a.cfg.LaneCount()-1 {
		return false
	}
	a.Lane++
	a.X = a.cfg.LaneLeft(a.Lane, a.cfg.ActorWidth)
	return true
}

func (a *Actor) Brake()   { a.Braking = true }
func (a *Actor) Release() { a.Braking = false }

func (a *Actor) Footprint() RectF {
	return RectXYWH(a.X, a.Y, a.cfg.ActorWidth, a.cfg.ActorHeight)
}
