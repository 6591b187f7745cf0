package host

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/timing"
)

// ErrUnfinishedCores is returned when the engine runs out of events while
// some cores still wait for memory.
var ErrUnfinishedCores = errors.New("host: simulation ended with unfinished cores")

// Controller is a memory controller the system can drive.
type Controller interface {
	memctrl.MemObject
	Drain()
}

// System wires cores to one or more memory controllers and runs them to
// completion.
type System struct {
	engine timing.Engine
	busy   *BusyLines
	window int

	ctrls    []Controller
	mem      memctrl.MemObject
	cores    []*Core
	running  int
	finished []func()
}

// NewSystem creates a system. Controllers must be built with the system as
// their recorder table and connected with ConnectControllers before cores
// are added.
func NewSystem(engine timing.Engine, window int) *System {
	return &System{
		engine: engine,
		busy:   NewBusyLines(),
		window: window,
	}
}

// Engine returns the engine driving the system.
func (s *System) Engine() timing.Engine {
	return s.engine
}

// EventRecorder returns the recorder of a core, or nil for unknown sources.
func (s *System) EventRecorder(srcID int) memctrl.EventRecorder {
	if srcID < 0 || srcID >= len(s.cores) {
		return nil
	}

	return s.cores[srcID].Recorder()
}

// ConnectControllers attaches the memory. Several controllers are
// interleaved by cache line.
func (s *System) ConnectControllers(ctrls ...Controller) {
	if len(ctrls) == 0 {
		panic("host: at least one controller is required")
	}

	s.ctrls = ctrls

	if len(ctrls) == 1 {
		s.mem = ctrls[0]
		return
	}

	mems := make([]memctrl.MemObject, len(ctrls))
	for i, c := range ctrls {
		mems[i] = c
	}

	s.mem = memctrl.NewSplitter("mem", mems...)
}

// AddCore creates a core replaying the workload. Core IDs follow the order
// of creation.
func (s *System) AddCore(w Workload) *Core {
	if s.mem == nil {
		panic("host: controllers must be connected before adding cores")
	}

	core := NewCore(s.engine, s.mem, CoreOptions{
		ID:       len(s.cores),
		Window:   s.window,
		Workload: w,
		Busy:     s.busy,
		OnFinish: s.coreFinished,
	})
	s.cores = append(s.cores, core)

	return core
}

// Cores returns the cores in ID order.
func (s *System) Cores() []*Core {
	return s.cores
}

// OnFinish registers a callback that runs once every core has finished.
func (s *System) OnFinish(fn func()) {
	s.finished = append(s.finished, fn)
}

func (s *System) coreFinished(c *Core) {
	s.running--

	logrus.WithFields(logrus.Fields{
		"core":  c.ID(),
		"cycle": c.CurrentTime(),
	}).Debug("core finished")

	if s.running > 0 {
		return
	}

	for _, ctrl := range s.ctrls {
		ctrl.Drain()
	}

	for _, fn := range s.finished {
		fn()
	}
}

// Run starts every core and processes events until all cores finished and
// the controllers drained.
func (s *System) Run() error {
	s.running = len(s.cores)

	if s.running == 0 {
		for _, ctrl := range s.ctrls {
			ctrl.Drain()
		}
	}

	for _, c := range s.cores {
		c.TickNow()
	}

	if err := s.engine.Run(); err != nil {
		return err
	}

	if s.running > 0 {
		return fmt.Errorf("%w: %d of %d cores", ErrUnfinishedCores,
			s.running, len(s.cores))
	}

	return nil
}
