package host

import (
	"fmt"

	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/timing"
)

// Recorder receives the access events created on behalf of one core and
// starts them no earlier than their minimum start cycle.
type Recorder struct {
	engine timing.EventScheduler
	core   *Core

	numRecords int
}

// NewRecorder creates a recorder. A nil core is allowed for accesses nobody
// waits for.
func NewRecorder(engine timing.EventScheduler, core *Core) *Recorder {
	return &Recorder{engine: engine, core: core}
}

// NumRecords returns how many access events were pushed.
func (r *Recorder) NumRecords() int {
	return r.numRecords
}

// NewAccessEvent creates the handle of a DRAM access.
func (r *Recorder) NewAccessEvent(
	target memctrl.Enqueuer,
	info memctrl.AccessInfo,
) memctrl.HostEvent {
	ev := &AccessEvent{
		engine: r.engine,
		target: target,
		info:   info,
		core:   r.core,
	}

	if r.core != nil {
		r.core.track(ev)
	}

	return ev
}

// PushRecord schedules the access of the record.
func (r *Recorder) PushRecord(rec memctrl.TimingRecord) {
	ev, ok := rec.Event.(*AccessEvent)
	if !ok {
		panic(fmt.Sprintf("host: cannot record %T", rec.Event))
	}

	r.numRecords++
	ev.issueCycle = rec.ReqCycle

	start := max(rec.ReqCycle, uint64(r.engine.CurrentTime()))
	ev.schedule(start)
}

var _ memctrl.EventRecorder = (*Recorder)(nil)
