package sim

type EventType int

const (
	EventVehicleSpawned EventType = iota
	EventCrossingSpawned
	EventLaneChange
	EventBrake
	EventCrossingStop
	EventCrossingResume
	EventCollision
)

func (t EventType) String() string {
	switch t {
	case EventVehicleSpawned:
		return "vehicle-spawned"
	case EventCrossingSpawned:
		return "crossing-spawned"
	case EventLaneChange:
		return "lane-change"
	case EventBrake:
		return "brake"
	case EventCrossingStop:
		return "crossing-stop"
	case EventCrossingResume:
		return "crossing-resume"
	case EventCollision:
		return "collision"
	}
	return "unknown"
}

type Event struct {
	Type EventType
	Tick int
	Lane int
	X, Y float64
	Data int // Generic payload (obstacle ID, previous lane).
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the tick goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventVehicleSpawned; t <= EventCollision; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
