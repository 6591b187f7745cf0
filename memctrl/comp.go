package memctrl

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/dramctrl/dram"
	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/idgen"
	"github.com/sarchlab/dramctrl/stats"
	"github.com/sarchlab/dramctrl/timing"
)

// Comp is the request lifecycle controller.
type Comp struct {
	*timing.TickingComponent
	*hooking.HookableBase

	backend Backend
	idGen   idgen.Generator

	lock     sync.Mutex
	inflight *inflightTable
	curCycle uint64
	draining bool
	stopped  bool

	reads    *stats.Counter
	writes   *stats.Counter
	readLat  *stats.Counter
	writeLat *stats.Counter

	reportInterval uint64

	minLatency uint64
	lineBits   uint
	domain     int
	recorders  RecorderTable
}

// Enqueue offers the event to the timing model. An accepted event is held
// until its completion. A refused event is requeued one cycle later and
// nothing about it is kept.
func (c *Comp) Enqueue(ev HostEvent, cycle uint64) {
	req := dram.Request{
		Addr:          ev.Address(),
		Kind:          dram.Read,
		SubmitCycle:   cycle,
		MinStartCycle: ev.MinStartCycle(),
		Domain:        ev.Domain(),
	}
	if ev.IsWrite() {
		req.Kind = dram.Write
	}

	c.lock.Lock()
	stopped := c.stopped
	collision := c.inflight.has(req.Addr)
	c.lock.Unlock()

	if stopped {
		panic("memctrl: " + c.Name() + " received a request after it stopped")
	}

	if collision {
		panic(fmt.Errorf("%w: address %#x is already in flight",
			ErrInFlightConsistencyViolation, req.Addr))
	}

	if !c.backend.Submit(req) {
		c.reject(ev, req)
		return
	}

	c.accept(ev, req)
}

func (c *Comp) reject(ev HostEvent, req dram.Request) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"ctrl":  c.Name(),
			"addr":  fmt.Sprintf("%#x", req.Addr),
			"cycle": req.SubmitCycle,
		}).Debug("request rejected, retrying next cycle")
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosReqRejected,
		Item: ReqRecord{
			Addr:        req.Addr,
			Kind:        req.Kind,
			Domain:      req.Domain,
			SubmitCycle: req.SubmitCycle,
		},
	})

	ev.Requeue(req.SubmitCycle + 1)
}

func (c *Comp) accept(ev HostEvent, req dram.Request) {
	entry := &inflightEntry{
		addr:        req.Addr,
		id:          c.idGen.Generate(),
		ev:          ev,
		kind:        req.Kind,
		domain:      req.Domain,
		submitCycle: req.SubmitCycle,
	}

	c.lock.Lock()
	err := c.inflight.insert(entry)
	c.lock.Unlock()

	if err != nil {
		panic(err)
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"ctrl":  c.Name(),
			"id":    entry.id,
			"addr":  fmt.Sprintf("%#x", req.Addr),
			"kind":  req.Kind,
			"cycle": req.SubmitCycle,
		}).Debug("request accepted")
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosReqAccepted,
		Item:   entry.record(),
	})

	ev.Hold()
}

// Tick advances the controller clock and the timing model by one cycle. It
// keeps ticking until Drain was called and nothing is in flight.
func (c *Comp) Tick() bool {
	c.lock.Lock()
	c.curCycle++
	cycle := c.curCycle
	c.lock.Unlock()

	c.backend.AdvanceCycle()

	if c.reportInterval > 0 && cycle%c.reportInterval == 0 {
		if err := c.backend.Report(); err != nil {
			logrus.WithError(err).
				WithField("ctrl", c.Name()).
				Warn("periodic report failed")
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.draining && c.inflight.len() == 0 {
		c.stopped = true
		return false
	}

	return true
}

func (c *Comp) complete(req dram.Request) {
	c.lock.Lock()

	entry, err := c.inflight.remove(req.Addr)
	if err != nil {
		c.lock.Unlock()
		panic(err)
	}

	doneCycle := c.curCycle + 1
	if doneCycle <= entry.submitCycle {
		c.lock.Unlock()
		panic(fmt.Errorf("%w: request %#x completes at %d, submitted at %d",
			ErrInFlightConsistencyViolation, req.Addr, doneCycle,
			entry.submitCycle))
	}

	latency := doneCycle - entry.submitCycle

	if entry.kind == dram.Write {
		c.writes.Inc()
		c.writeLat.Add(latency)
	} else {
		c.reads.Inc()
		c.readLat.Add(latency)
	}

	c.lock.Unlock()

	rec := entry.record()
	rec.CompleteCycle = doneCycle
	rec.Latency = latency

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"ctrl":    c.Name(),
			"id":      rec.ID,
			"addr":    fmt.Sprintf("%#x", rec.Addr),
			"latency": latency,
		}).Debug("request completed")
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosReqCompleted,
		Item:   rec,
	})

	entry.ev.Done(doneCycle)
}

func (e *inflightEntry) record() ReqRecord {
	return ReqRecord{
		ID:          e.id,
		Addr:        e.addr,
		Kind:        e.kind,
		Domain:      e.domain,
		SubmitCycle: e.submitCycle,
	}
}

// Drain lets the controller stop ticking once no request is in flight.
func (c *Comp) Drain() {
	c.lock.Lock()
	c.draining = true
	c.lock.Unlock()
}

// Finalize writes the final report of the timing model.
func (c *Comp) Finalize() error {
	counters := c.Counters()

	logrus.WithFields(logrus.Fields{
		"ctrl":   c.Name(),
		"cycle":  c.CurrentCycle(),
		"reads":  counters.Reads,
		"writes": counters.Writes,
	}).Info("memory controller finished")

	return c.backend.Finalize()
}

// Report writes an intermediate report.
func (c *Comp) Report() error {
	return c.backend.Report()
}

// CurrentCycle returns the controller clock.
func (c *Comp) CurrentCycle() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.curCycle
}

// NumInflight returns the number of requests waiting for the timing model.
func (c *Comp) NumInflight() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.inflight.len()
}

// InflightAddresses lists in-flight addresses in ascending order.
func (c *Comp) InflightAddresses() []uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.inflight.addresses()
}

// Counters returns a snapshot of the latency counters.
func (c *Comp) Counters() Counters {
	return Counters{
		Reads:        c.reads.Value(),
		Writes:       c.writes.Value(),
		ReadLatency:  c.readLat.Value(),
		WriteLatency: c.writeLat.Value(),
	}
}

// Status is a consistent view of the controller state, taken under the
// controller lock.
type Status struct {
	Name           string
	Cycle          uint64
	Draining       bool
	Stopped        bool
	NumInflight    int
	Counters       Counters
	ReportInterval uint64
	MinLatency     uint64
	Domain         int
}

// Status returns the current state of the controller. It is safe to call
// while the engine runs.
func (c *Comp) Status() Status {
	c.lock.Lock()
	defer c.lock.Unlock()

	return Status{
		Name:           c.Name(),
		Cycle:          c.curCycle,
		Draining:       c.draining,
		Stopped:        c.stopped,
		NumInflight:    c.inflight.len(),
		Counters:       c.Counters(),
		ReportInterval: c.reportInterval,
		MinLatency:     c.minLatency,
		Domain:         c.domain,
	}
}

var _ Enqueuer = (*Comp)(nil)
