package memctrl

import (
	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/idgen"
	"github.com/sarchlab/dramctrl/timing"
)

// Builder can build memory controllers.
type Builder struct {
	engine         timing.EventScheduler
	backend        Backend
	idGen          idgen.Generator
	recorders      RecorderTable
	hooks          []hooking.Hook
	minLatency     uint64
	lineBits       uint
	domain         int
	reportInterval uint64
}

// MakeBuilder returns a builder with 64-byte lines and a minimum latency of
// 100 cycles.
func MakeBuilder() Builder {
	return Builder{
		minLatency: 100,
		lineBits:   6,
	}
}

// WithEngine sets the engine that ticks the controller.
func (b Builder) WithEngine(engine timing.EventScheduler) Builder {
	b.engine = engine
	return b
}

// WithBackend sets the timing model facade.
func (b Builder) WithBackend(backend Backend) Builder {
	b.backend = backend
	return b
}

// WithIDGenerator sets how request IDs are generated.
func (b Builder) WithIDGenerator(g idgen.Generator) Builder {
	b.idGen = g
	return b
}

// WithRecorders sets where access events are pushed.
func (b Builder) WithRecorders(r RecorderTable) Builder {
	b.recorders = r
	return b
}

// WithHook registers a hook on the built controller.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks, h)
	return b
}

// WithMinLatency sets the latency Access reports to the cache hierarchy.
func (b Builder) WithMinLatency(cycles uint64) Builder {
	b.minLatency = cycles
	return b
}

// WithLineBits sets log2 of the cacheline size.
func (b Builder) WithLineBits(bits uint) Builder {
	b.lineBits = bits
	return b
}

// WithDomain sets the host domain of the access events.
func (b Builder) WithDomain(domain int) Builder {
	b.domain = domain
	return b
}

// WithReportInterval makes the controller write a report every n cycles.
// Zero disables periodic reports.
func (b Builder) WithReportInterval(n uint64) Builder {
	b.reportInterval = n
	return b
}

// Build creates the controller and schedules its first tick at the current
// cycle.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil || b.backend == nil {
		panic("memctrl: engine and backend are required")
	}

	c := &Comp{
		HookableBase:   hooking.NewHookableBase(),
		backend:        b.backend,
		idGen:          b.idGen,
		inflight:       newInflightTable(),
		reportInterval: b.reportInterval,
		minLatency:     b.minLatency,
		lineBits:       b.lineBits,
		domain:         b.domain,
		recorders:      b.recorders,
	}

	if c.idGen == nil {
		c.idGen = idgen.New()
	}

	c.TickingComponent = timing.NewSecondaryTickingComponent(name, b.engine, c)

	for _, h := range b.hooks {
		c.AcceptHook(h)
	}

	group := b.backend.Stats()
	c.reads = group.Counter("rd", "Completed Read requests")
	c.writes = group.Counter("wr", "Completed Write requests")
	c.readLat = group.Counter("rdlat",
		"Total latency experienced by completed read requests")
	c.writeLat = group.Counter("wrlat",
		"Total latency experienced by completed write requests")

	b.backend.OnComplete(c.complete)

	c.curCycle = uint64(b.engine.CurrentTime())
	c.TickNow()

	return c
}
