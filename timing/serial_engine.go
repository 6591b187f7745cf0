package timing

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/dramctrl/hooking"
)

// SerialEngine dispatches events one at a time in cycle order. Within a
// cycle, primary events run before secondary events.
//
// The clock and the dispatch counter can be read from other goroutines, and
// Pause/Continue may be called from them, so that a monitor can inspect a
// running simulation.
type SerialEngine struct {
	*hooking.HookableBase

	queue      eventQueue
	now        atomic.Uint64
	dispatched atomic.Uint64

	gate     sync.Mutex
	resumed  *sync.Cond
	paused   bool
	runMutex sync.Mutex
}

// NewSerialEngine creates a SerialEngine at cycle 0.
func NewSerialEngine() *SerialEngine {
	e := &SerialEngine{HookableBase: hooking.NewHookableBase()}
	e.resumed = sync.NewCond(&e.gate)

	return e
}

// Schedule registers an event. Events may be scheduled for the current cycle
// but never for a past one.
func (e *SerialEngine) Schedule(evt ScheduledEvent) {
	if now := e.CurrentTime(); evt.Time < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule %s at cycle %d, now %d",
			reflect.TypeOf(evt.Event), evt.Time, now,
		))
	}

	e.queue.push(&evt)
}

// Run dispatches events until none is left. The first handler error stops
// the run and is returned.
func (e *SerialEngine) Run() error {
	e.runMutex.Lock()
	defer e.runMutex.Unlock()

	for {
		e.waitWhilePaused()

		evt := e.queue.pop()
		if evt == nil {
			return nil
		}

		e.now.Store(uint64(evt.Time))

		if err := e.dispatch(evt); err != nil {
			return err
		}
	}
}

func (e *SerialEngine) dispatch(evt *ScheduledEvent) error {
	ctx := hooking.HookCtx{Domain: e, Pos: HookPosBeforeEvent, Item: evt}
	e.InvokeHook(ctx)

	var err error
	if evt.Handler != nil {
		err = evt.Handler.Handle(evt.Event)
	}

	e.dispatched.Add(1)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return err
}

func (e *SerialEngine) waitWhilePaused() {
	e.gate.Lock()
	for e.paused {
		e.resumed.Wait()
	}
	e.gate.Unlock()
}

// Pause stops Run before its next event. The event being dispatched, if
// any, finishes first.
func (e *SerialEngine) Pause() {
	e.gate.Lock()
	e.paused = true
	e.gate.Unlock()
}

// Continue resumes a paused engine.
func (e *SerialEngine) Continue() {
	e.gate.Lock()
	e.paused = false
	e.gate.Unlock()

	e.resumed.Broadcast()
}

// CurrentTime returns the cycle of the event being or last dispatched.
func (e *SerialEngine) CurrentTime() VTimeInCycle {
	return VTimeInCycle(e.now.Load())
}

// NumDispatched returns how many events have been handled.
func (e *SerialEngine) NumDispatched() uint64 {
	return e.dispatched.Load()
}

// NumPending returns how many events wait in the queue.
func (e *SerialEngine) NumPending() int {
	return e.queue.len()
}

var _ Engine = (*SerialEngine)(nil)
