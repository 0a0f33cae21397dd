package sim

// Traffic owns the live obstacles and the two spawn timers.
// Obstacles are kept in spawn order; eviction compacts in place.
type Traffic struct {
	Obstacles []Obstacle

	cfg           *Config
	rng           Source
	spawnTimer    int
	crossingTimer int
	nextID        uint64
}

func NewTraffic(cfg *Config, rng Source) *Traffic {
	return &Traffic{
		Obstacles: make([]Obstacle, 0, 16),
		cfg:       cfg,
		rng:       rng,
	}
}

// MaybeSpawnVehicle advances the vehicle timer and, once it exceeds the
// cadence, spawns a vehicle in a random lane just above the visible area.
func (t *Traffic) MaybeSpawnVehicle() (Obstacle, bool) {
	t.spawnTimer++
	if t.spawnTimer <= t.cfg.VehicleCadence {
		return Obstacle{}, false
	}
	t.spawnTimer = 0
	lane := t.rng.Intn(t.cfg.LaneCount())
	variant := t.rng.Intn(t.cfg.CarVariants)
	return t.spawnVehicle(lane, -t.cfg.VehicleHeight, variant), true
}

// MaybeSpawnCrossing advances the crossing timer and spawns a road-wide
// crossing once it exceeds the interval.
func (t *Traffic) MaybeSpawnCrossing() (Obstacle, bool) {
	t.crossingTimer++
	if t.crossingTimer <= t.cfg.CrossingInterval {
		return Obstacle{}, false
	}
	t.crossingTimer = 0
	return t.SpawnCrossing(-t.cfg.CrossingHeight), true
}

// SpawnVehicle appends a vehicle in lane with its top edge at y.
func (t *Traffic) SpawnVehicle(lane int, y float64) Obstacle {
	return t.spawnVehicle(lane, y, 0)
}

func (t *Traffic) spawnVehicle(lane int, y float64, variant int) Obstacle {
	t.nextID++
	o := Obstacle{
		ID:      t.nextID,
		Kind:    KindVehicle,
		Lane:    lane,
		X:       t.cfg.LaneLeft(lane, t.cfg.VehicleWidth),
		Y:       y,
		Speed:   t.cfg.BaseSpeed,
		Variant: variant,
	}
	t.Obstacles = append(t.Obstacles, o)
	return o
}

// SpawnCrossing appends a crossing band with its top edge at y.
func (t *Traffic) SpawnCrossing(y float64) Obstacle {
	t.nextID++
	x0, _ := t.cfg.CrossingSpan()
	o := Obstacle{
		ID:    t.nextID,
		Kind:  KindCrossing,
		Lane:  AllLanes,
		X:     x0,
		Y:     y,
		Speed: t.cfg.BaseSpeed,
	}
	t.Obstacles = append(t.Obstacles, o)
	return o
}

// Tick moves every obstacle by speed, then evicts those that left the
// bottom of the visible area.
func (t *Traffic) Tick(speed float64) {
	for i := range t.Obstacles {
		o := &t.Obstacles[i]
		o.Speed = speed
		o.Update()
	}
	t.RemoveOffscreen()
}

// RemoveOffscreen drops obstacles whose top edge is at or past the bottom.
func (t *Traffic) RemoveOffscreen() {
	kept := t.Obstacles[:0]
	for _, o := range t.Obstacles {
		if o.Y < t.cfg.Height {
			kept = append(kept, o)
		}
	}
	clear(t.Obstacles[len(kept):])
	t.Obstacles = kept
}

// Relocate moves obstacle i below the visible area plus the margin so it can
// neither trigger nor collide again. It is evicted on the next tick.
func (t *Traffic) Relocate(i int) {
	t.Obstacles[i].Y = t.cfg.Height + t.cfg.RelocateMargin
}
