package host

import (
	"fmt"

	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/stats"
	"github.com/sarchlab/dramctrl/timing"
)

// BusyLines is the set of lines with an outstanding access, shared by all
// cores so that no two accesses to the same line are in flight at once.
type BusyLines struct {
	lines map[uint64]struct{}
}

// NewBusyLines creates an empty set.
func NewBusyLines() *BusyLines {
	return &BusyLines{lines: make(map[uint64]struct{})}
}

func (b *BusyLines) has(line uint64) bool {
	_, ok := b.lines[line]
	return ok
}

func (b *BusyLines) add(line uint64) {
	b.lines[line] = struct{}{}
}

func (b *BusyLines) remove(line uint64) {
	delete(b.lines, line)
}

// Len returns the number of busy lines.
func (b *BusyLines) Len() int {
	return len(b.lines)
}

// Core issues the accesses of a workload in order, keeping at most window
// accesses outstanding.
type Core struct {
	*timing.TickingComponent

	id       int
	mem      memctrl.MemObject
	workload Workload
	recorder *Recorder
	busy     *BusyLines
	window   int

	issuing     *Entry
	outstanding int
	finished    bool
	onFinish    func(c *Core)

	stats        *stats.Group
	issued       *stats.Counter
	completed    *stats.Counter
	cleanDropped *stats.Counter
	stallCycles  *stats.Counter
	totalLatency *stats.Counter
}

// CoreOptions configures a core.
type CoreOptions struct {
	ID       int
	Window   int
	Workload Workload
	Busy     *BusyLines
	OnFinish func(c *Core)
}

// NewCore creates a core that issues to mem.
func NewCore(
	engine timing.EventScheduler,
	mem memctrl.MemObject,
	opts CoreOptions,
) *Core {
	name := fmt.Sprintf("core%d", opts.ID)

	c := &Core{
		id:       opts.ID,
		mem:      mem,
		workload: opts.Workload,
		busy:     opts.Busy,
		window:   max(opts.Window, 1),
		onFinish: opts.OnFinish,
	}

	if c.busy == nil {
		c.busy = NewBusyLines()
	}

	c.TickingComponent = timing.NewTickingComponent(name, engine, c)
	c.recorder = NewRecorder(engine, c)

	c.stats = stats.NewGroup(name, "")
	c.issued = c.stats.Counter("issued", "Accesses sent to memory")
	c.completed = c.stats.Counter("completed", "DRAM accesses completed")
	c.cleanDropped = c.stats.Counter("clean_writebacks",
		"Clean writebacks that needed no DRAM access")
	c.stallCycles = c.stats.Counter("stall_cycles",
		"Cycles with a ready access that could not issue")
	c.totalLatency = c.stats.Counter("total_latency",
		"Sum of issue-to-done cycles of completed DRAM accesses")

	return c
}

// ID returns the core ID.
func (c *Core) ID() int {
	return c.id
}

// Recorder returns the core's event recorder.
func (c *Core) Recorder() *Recorder {
	return c.recorder
}

// Stats returns the core's counters.
func (c *Core) Stats() *stats.Group {
	return c.stats
}

// Outstanding returns the number of accesses waiting for DRAM.
func (c *Core) Outstanding() int {
	return c.outstanding
}

// Finished reports whether the workload is exhausted and every access done.
func (c *Core) Finished() bool {
	return c.finished
}

// Tick issues every ready access the window and the busy lines allow.
func (c *Core) Tick() bool {
	now := uint64(c.CurrentTime())

	for c.outstanding < c.window {
		entry, ok := c.workload.Peek()
		if !ok || entry.Cycle > now {
			break
		}

		if c.busy.has(entry.LineAddr) {
			c.stallCycles.Inc()
			break
		}

		c.workload.Pop()
		c.issue(entry, now)
	}

	c.checkFinished()

	return c.workload.Len() > 0
}

func (c *Core) issue(entry Entry, now uint64) {
	var state memctrl.MESIState

	req := &memctrl.MemReq{
		LineAddr: entry.LineAddr,
		Type:     entry.Type,
		Cycle:    now,
		SrcID:    c.id,
		State:    &state,
	}

	c.issuing = &entry
	c.mem.Access(req)
	c.issuing = nil

	c.issued.Inc()

	if entry.Type == memctrl.PUTS {
		c.cleanDropped.Inc()
	}
}

// track is called by the recorder for every access event created while the
// core is issuing.
func (c *Core) track(ev *AccessEvent) {
	if c.issuing == nil {
		panic("host: access event created outside of an issue")
	}

	ev.line = c.issuing.LineAddr
	c.busy.add(ev.line)
	c.outstanding++
}

// Handle receives completion notices of the core's accesses.
func (c *Core) Handle(evt any) error {
	switch e := evt.(type) {
	case accessDoneEvent:
		c.complete(e.access, e.cycle)
	default:
		return fmt.Errorf("host: core cannot handle %T", evt)
	}

	return nil
}

func (c *Core) complete(ev *AccessEvent, cycle uint64) {
	c.outstanding--
	c.busy.remove(ev.line)
	c.completed.Inc()
	c.totalLatency.Add(cycle - ev.issueCycle)

	c.TickLater()
	c.checkFinished()
}

func (c *Core) checkFinished() {
	if c.finished || c.workload.Len() > 0 || c.outstanding > 0 {
		return
	}

	c.finished = true

	if c.onFinish != nil {
		c.onFinish(c)
	}
}
