// Package host is a small cycle-driven host simulator. Cores replay memory
// accesses from a workload against a memory controller and wait for their
// completions.
package host

import (
	"fmt"

	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/timing"
)

type eventState int

const (
	eventCreated eventState = iota
	eventPending
	eventRequeued
	eventHeld
	eventDone
)

var eventStateNames = [...]string{"created", "pending", "requeued", "held",
	"done"}

func (s eventState) String() string {
	return eventStateNames[s]
}

// simulateEvent delivers an AccessEvent to its controller.
type simulateEvent struct {
	cycle uint64
}

// accessDoneEvent tells the issuing core that an access finished.
type accessDoneEvent struct {
	access *AccessEvent
	cycle  uint64
}

// AccessEvent is the host handle of one DRAM access. A handle is held while
// the timing model serves it, or requeued when the model refuses it, and
// completes exactly once.
type AccessEvent struct {
	engine timing.EventScheduler
	target memctrl.Enqueuer
	info   memctrl.AccessInfo
	core   *Core

	line       uint64
	issueCycle uint64
	startCycle uint64
	doneCycle  uint64
	requeues   int
	state      eventState
}

// Address returns the controller-local byte address.
func (e *AccessEvent) Address() uint64 { return e.info.Addr }

// IsWrite reports whether the access is a write.
func (e *AccessEvent) IsWrite() bool { return e.info.IsWrite }

// Domain returns the host domain of the access.
func (e *AccessEvent) Domain() int { return e.info.Domain }

// MinStartCycle returns the earliest cycle the access may be enqueued.
func (e *AccessEvent) MinStartCycle() uint64 { return e.info.MinStartCycle }

// StartCycle is the cycle of the latest submission.
func (e *AccessEvent) StartCycle() uint64 { return e.startCycle }

// DoneCycle is the completion cycle, valid once the access is done.
func (e *AccessEvent) DoneCycle() uint64 { return e.doneCycle }

// Requeues counts how many times the access was refused.
func (e *AccessEvent) Requeues() int { return e.requeues }

// Handle delivers the access to its controller.
func (e *AccessEvent) Handle(evt any) error {
	se, ok := evt.(simulateEvent)
	if !ok {
		return fmt.Errorf("host: access event cannot handle %T", evt)
	}

	e.simulate(se.cycle)

	return nil
}

func (e *AccessEvent) schedule(cycle uint64) {
	e.engine.Schedule(timing.ScheduledEvent{
		Event:   simulateEvent{cycle: cycle},
		Time:    timing.VTimeInCycle(cycle),
		Handler: e,
	})
}

func (e *AccessEvent) simulate(cycle uint64) {
	e.transit(eventPending, eventCreated, eventRequeued)
	e.startCycle = cycle
	e.target.Enqueue(e, cycle)
}

// Hold marks the access as accepted by the timing model.
func (e *AccessEvent) Hold() {
	e.transit(eventHeld, eventPending)
}

// Requeue schedules another submission at the given cycle.
func (e *AccessEvent) Requeue(cycle uint64) {
	e.transit(eventRequeued, eventPending)
	e.requeues++
	e.schedule(cycle)
}

// Done completes the access. The issuing core is notified at the given
// cycle.
func (e *AccessEvent) Done(cycle uint64) {
	e.transit(eventDone, eventHeld)
	e.doneCycle = cycle

	if e.core == nil {
		return
	}

	e.engine.Schedule(timing.ScheduledEvent{
		Event:   accessDoneEvent{access: e, cycle: cycle},
		Time:    timing.VTimeInCycle(cycle),
		Handler: e.core,
	})
}

func (e *AccessEvent) transit(to eventState, from ...eventState) {
	for _, s := range from {
		if e.state == s {
			e.state = to
			return
		}
	}

	panic(fmt.Sprintf("host: access %#x cannot go from %s to %s",
		e.info.Addr, e.state, to))
}

var _ memctrl.HostEvent = (*AccessEvent)(nil)
