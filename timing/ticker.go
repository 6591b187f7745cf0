package timing

import (
	"sync"
)

// TickEvent is the payload delivered to ticking components.
type TickEvent struct{}

// A Ticker is an object that updates states with ticks.
type Ticker interface {
	// Tick advances the component by one cycle and reports whether it wants
	// to be ticked again.
	Tick() bool
}

// TickScheduler can help schedule tick events.
type TickScheduler struct {
	lock      sync.Mutex
	handler   Handler
	engine    EventScheduler
	secondary bool

	scheduled    bool
	nextTickTime VTimeInCycle
}

// NewTickScheduler creates a scheduler for primary tick events.
func NewTickScheduler(handler Handler, engine EventScheduler) *TickScheduler {
	return &TickScheduler{
		handler: handler,
		engine:  engine,
	}
}

// NewSecondaryTickScheduler creates a scheduler that always schedules
// secondary tick events, so the ticks run after every primary event of the
// same cycle.
func NewSecondaryTickScheduler(
	handler Handler,
	engine EventScheduler,
) *TickScheduler {
	t := NewTickScheduler(handler, engine)
	t.secondary = true

	return t
}

// TickNow schedules a tick at the current cycle.
func (t *TickScheduler) TickNow() {
	t.scheduleAt(t.engine.CurrentTime())
}

// TickLater schedules a tick at the next cycle.
func (t *TickScheduler) TickLater() {
	t.scheduleAt(t.engine.CurrentTime() + 1)
}

func (t *TickScheduler) scheduleAt(time VTimeInCycle) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.scheduled && t.nextTickTime >= time {
		return
	}

	t.scheduled = true
	t.nextTickTime = time

	t.engine.Schedule(ScheduledEvent{
		Event:       TickEvent{},
		Time:        time,
		Handler:     t.handler,
		IsSecondary: t.secondary,
	})
}

// CurrentTime returns the engine's current cycle.
func (t *TickScheduler) CurrentTime() VTimeInCycle {
	return t.engine.CurrentTime()
}

// TickingComponent re-ticks itself every cycle for as long as its Ticker
// reports progress.
type TickingComponent struct {
	*TickScheduler

	name   string
	ticker Ticker
}

// NewTickingComponent creates a component that ticks with primary events.
func NewTickingComponent(
	name string,
	engine EventScheduler,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{name: name, ticker: ticker}
	tc.TickScheduler = NewTickScheduler(tc, engine)

	return tc
}

// NewSecondaryTickingComponent creates a component whose ticks run after all
// primary events of a cycle.
func NewSecondaryTickingComponent(
	name string,
	engine EventScheduler,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{name: name, ticker: ticker}
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine)

	return tc
}

// Name returns the name of the component.
func (c *TickingComponent) Name() string {
	return c.name
}

// Handle triggers the tick function of the TickingComponent.
func (c *TickingComponent) Handle(_ any) error {
	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}
