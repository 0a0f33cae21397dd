package sim

// CrossingPhase is the state of the crossing-stop machine.
type CrossingPhase uint8

const (
	CrossingIdle CrossingPhase = iota
	CrossingStopping
)

func (p CrossingPhase) String() string {
	if p == CrossingStopping {
		return "stopping"
	}
	return "idle"
}

func (p CrossingPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CrossingStop holds the actor braked in place for a fixed number of ticks.
// Fields are only changed through Begin and Hold, so a second stop cannot
// start while one is running.
type CrossingStop struct {
	phase    CrossingPhase
	waited   int
	duration int
	heldLane int
	heldX    float64
}

func NewCrossingStop(duration int) CrossingStop {
	return CrossingStop{duration: duration}
}

func (c *CrossingStop) Phase() CrossingPhase { return c.phase }
func (c *CrossingStop) Active() bool         { return c.phase == CrossingStopping }
func (c *CrossingStop) Waited() int          { return c.waited }

// Remaining is the number of holding ticks left, zero when idle.
func (c *CrossingStop) Remaining() int {
	if c.phase != CrossingStopping {
		return 0
	}
	return c.duration - c.waited
}

// Held returns the lane and x the actor was frozen at.
func (c *CrossingStop) Held() (lane int, x float64) {
	return c.heldLane, c.heldX
}

// Begin enters STOPPING and brakes the actor. It refuses while already
// stopping.
func (c *CrossingStop) Begin(a *Actor) bool {
	if c.phase == CrossingStopping {
		return false
	}
	c.phase = CrossingStopping
	c.waited = 0
	c.heldLane = a.Lane
	c.heldX = a.X
	a.Brake()
	return true
}

// Hold runs one STOPPING tick: brake, count, and return to IDLE once the
// duration has elapsed. It reports whether this tick ended the stop.
func (c *CrossingStop) Hold(a *Actor) bool {
	if c.phase != CrossingStopping {
		return false
	}
	a.Brake()
	c.waited++
	if c.waited < c.duration {
		return false
	}
	c.phase = CrossingIdle
	c.waited = 0
	return true
}
