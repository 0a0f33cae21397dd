package sim

import "fmt"

// Outcome is the run state of a simulation. Collision and quit are both
// terminal; only collision is a scored game over.
type Outcome uint8

const (
	OutcomeRunning   Outcome = iota
	OutcomeCollision         // game over, score final
	OutcomeQuit              // external quit, clean exit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCollision:
		return "collision"
	case OutcomeQuit:
		return "quit"
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Simulation is the single owner of all mutable world state. Only the tick
// loop calls Step.
type Simulation struct {
	Actor    Actor
	Traffic  *Traffic
	Crossing CrossingStop
	Events   *EventBus

	Score int
	Ticks int

	cfg      Config
	outcome  Outcome
	decision Decision
	speed    float64 // obstacle travel applied on the last tick
}

// New validates cfg and builds a simulation drawing randomness from rng.
func New(cfg Config, rng Source) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidConfig)
	}
	cfg.Lanes = append([]float64(nil), cfg.Lanes...)
	s := &Simulation{
		Events: NewEventBus(),
		cfg:    cfg,
	}
	s.Actor = NewActor(&s.cfg)
	s.Traffic = NewTraffic(&s.cfg, rng)
	s.Crossing = NewCrossingStop(s.cfg.CrossingStop)
	return s, nil
}

func (s *Simulation) Config() *Config        { return &s.cfg }
func (s *Simulation) Outcome() Outcome       { return s.outcome }
func (s *Simulation) LastDecision() Decision { return s.decision }

// Step runs one tick: quit check, spawns, obstacle motion and eviction,
// decision, collision, score. It returns the outcome after the tick; once
// terminal, further calls change nothing.
func (s *Simulation) Step(quit bool) Outcome {
	if s.outcome != OutcomeRunning {
		return s.outcome
	}
	if quit {
		s.outcome = OutcomeQuit
		return s.outcome
	}
	s.Ticks++

	if o, ok := s.Traffic.MaybeSpawnVehicle(); ok {
		s.emit(EventVehicleSpawned, o.Lane, o.X, o.Y, int(o.ID))
	}
	if o, ok := s.Traffic.MaybeSpawnCrossing(); ok {
		s.emit(EventCrossingSpawned, o.Lane, o.X, o.Y, int(o.ID))
	}

	s.speed = s.obstacleSpeed()
	s.Traffic.Tick(s.speed)

	d, la := Decide(&s.cfg, &s.Actor, s.Traffic.Obstacles, &s.Crossing)
	s.apply(d, la)
	s.decision = d

	if s.collides() {
		s.outcome = OutcomeCollision
		s.emit(EventCollision, s.Actor.Lane, s.Actor.X, s.Actor.Y, s.Score)
		return s.outcome
	}
	s.Score++
	return s.outcome
}

// obstacleSpeed couples the world to the actor's brake: braking for a
// vehicle slows everything, a crossing stop does not.
func (s *Simulation) obstacleSpeed() float64 {
	if s.Crossing.Active() {
		return s.cfg.BaseSpeed
	}
	if s.Actor.Braking {
		return s.cfg.BrakeSpeed
	}
	return s.cfg.BaseSpeed
}

func (s *Simulation) apply(d Decision, la Lookahead) {
	a := &s.Actor
	switch d {
	case DecisionCrossingHold:
		if s.Crossing.Hold(a) {
			s.emit(EventCrossingResume, a.Lane, a.X, a.Y, 0)
		}
	case DecisionCrossingStop:
		o := s.Traffic.Obstacles[la.CrossingAhead]
		s.Crossing.Begin(a)
		s.Traffic.Relocate(la.CrossingAhead)
		s.emit(EventCrossingStop, a.Lane, a.X, a.Y, int(o.ID))
	case DecisionMoveLeft:
		from := a.Lane
		if a.MoveLeft() {
			s.emit(EventLaneChange, a.Lane, a.X, a.Y, from)
		}
	case DecisionMoveRight:
		from := a.Lane
		if a.MoveRight() {
			s.emit(EventLaneChange, a.Lane, a.X, a.Y, from)
		}
	case DecisionBrake:
		if !a.Braking {
			s.emit(EventBrake, a.Lane, a.X, a.Y, 0)
		}
		a.Brake()
	case DecisionClear:
		a.Release()
	}
}

func (s *Simulation) collides() bool {
	fp := s.Actor.Footprint()
	for i := range s.Traffic.Obstacles {
		if fp.Intersects(s.Traffic.Obstacles[i].Footprint(&s.cfg)) {
			return true
		}
	}
	return false
}

func (s *Simulation) emit(t EventType, lane int, x, y float64, data int) {
	s.Events.Emit(Event{Type: t, Tick: s.Ticks, Lane: lane, X: x, Y: y, Data: data})
}
