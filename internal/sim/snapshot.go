package sim

// ActorView is the render-facing copy of the actor.
type ActorView struct {
	Lane    int     `json:"lane"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
	Braking bool    `json:"braking"`
}

// ObstacleView is the render-facing copy of one obstacle with its footprint.
type ObstacleView struct {
	ID      uint64       `json:"id"`
	Kind    ObstacleKind `json:"kind"`
	Lane    int          `json:"lane"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	W       float64      `json:"w"`
	H       float64      `json:"h"`
	Variant int          `json:"variant"`
}

// Snapshot is the one-way, read-only state handed to renderers after each
// tick. It shares no memory with the simulation.
type Snapshot struct {
	Tick      int            `json:"tick"`
	Score     int            `json:"score"`
	Outcome   Outcome        `json:"outcome"`
	Decision  Decision       `json:"decision"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Lanes     []float64      `json:"lanes"`
	Actor     ActorView      `json:"actor"`
	Obstacles []ObstacleView `json:"obstacles"`
	Crossing  CrossingPhase  `json:"crossing"`
	StopLeft  int            `json:"stopLeft"` // ticks left in a crossing stop
	Speed     float64        `json:"speed"`    // road travel on this tick
	TickRate  int            `json:"tickRate"`
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.Ticks,
		Score:    s.Score,
		Outcome:  s.outcome,
		Decision: s.decision,
		Width:    s.cfg.Width,
		Height:   s.cfg.Height,
		Lanes:    append([]float64(nil), s.cfg.Lanes...),
		Actor: ActorView{
			Lane:    s.Actor.Lane,
			X:       s.Actor.X,
			Y:       s.Actor.Y,
			W:       s.cfg.ActorWidth,
			H:       s.cfg.ActorHeight,
			Braking: s.Actor.Braking,
		},
		Obstacles: make([]ObstacleView, 0, len(s.Traffic.Obstacles)),
		Crossing:  s.Crossing.Phase(),
		StopLeft:  s.Crossing.Remaining(),
		Speed:     s.speed,
		TickRate:  s.cfg.TickRate,
	}
	for i := range s.Traffic.Obstacles {
		o := &s.Traffic.Obstacles[i]
		fp := o.Footprint(&s.cfg)
		snap.Obstacles = append(snap.Obstacles, ObstacleView{
			ID:      o.ID,
			Kind:    o.Kind,
			Lane:    o.Lane,
			X:       fp.X0,
			Y:       fp.Y0,
			W:       fp.W(),
			H:       fp.H(),
			Variant: o.Variant,
		})
	}
	return snap
}
