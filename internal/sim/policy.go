package sim

// Decision is the single branch the policy takes on a tick.
type Decision uint8

const (
	DecisionClear Decision = iota // release brake, keep lane
	DecisionBrake
	DecisionMoveLeft
	DecisionMoveRight
	DecisionCrossingStop // enter STOPPING
	DecisionCrossingHold // already STOPPING
)

func (d Decision) String() string {
	switch d {
	case DecisionClear:
		return "clear"
	case DecisionBrake:
		return "brake"
	case DecisionMoveLeft:
		return "left"
	case DecisionMoveRight:
		return "right"
	case DecisionCrossingStop:
		return "crossing-stop"
	case DecisionCrossingHold:
		return "crossing-hold"
	}
	return "unknown"
}

func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Lookahead indexes the nearest obstacles ahead in the actor's lane, -1 when
// there is none.
type Lookahead struct {
	Closest       int // nearest vehicle
	CrossingAhead int // nearest crossing
}

// Scan finds the nearest vehicle and the nearest crossing ahead of the actor
// in its lane. Nearest means largest y. Crossings are only ever handled by
// the crossing trigger, so they never become Closest.
func Scan(cfg *Config, a *Actor, obstacles []Obstacle) Lookahead {
	la := Lookahead{Closest: -1, CrossingAhead: -1}
	for i := range obstacles {
		o := &obstacles[i]
		if !o.InLane(a.Lane) || !o.Ahead(cfg, a.Y) {
			continue
		}
		switch o.Kind {
		case KindCrossing:
			if la.CrossingAhead < 0 || o.Y > obstacles[la.CrossingAhead].Y {
				la.CrossingAhead = i
			}
		case KindVehicle:
			if la.Closest < 0 || o.Y > obstacles[la.Closest].Y {
				la.Closest = i
			}
		}
	}
	return la
}

// LaneSafe reports whether lane exists and no obstacle occupying it is within
// the safety distance of the actor, ahead or behind. A crossing occupies
// every lane.
func LaneSafe(cfg *Config, a *Actor, obstacles []Obstacle, lane int) bool {
	if lane < 0 || lane >= cfg.LaneCount() {
		return false
	}
	for i := range obstacles {
		o := &obstacles[i]
		if !o.InLane(lane) {
			continue
		}
		d := o.Y - a.Y
		if d < 0 {
			d = -d
		}
		if d < cfg.LaneSafeDistance {
			return false
		}
	}
	return true
}

// Decide evaluates the precedence chain once: crossing hold, crossing
// trigger, vehicle avoidance (left, then right, then brake), clear road.
// It does not mutate anything.
func Decide(cfg *Config, a *Actor, obstacles []Obstacle, stop *CrossingStop) (Decision, Lookahead) {
	if stop.Active() {
		return DecisionCrossingHold, Lookahead{Closest: -1, CrossingAhead: -1}
	}
	la := Scan(cfg, a, obstacles)
	if la.CrossingAhead >= 0 && a.Y-obstacles[la.CrossingAhead].Y < cfg.CrossingTrigger {
		return DecisionCrossingStop, la
	}
	if la.Closest >= 0 && a.Y-obstacles[la.Closest].Y < cfg.AvoidDistance {
		switch {
		case LaneSafe(cfg, a, obstacles, a.Lane-1):
			return DecisionMoveLeft, la
		case LaneSafe(cfg, a, obstacles, a.Lane+1):
			return DecisionMoveRight, la
		default:
			return DecisionBrake, la
		}
	}
	return DecisionClear, la
}
