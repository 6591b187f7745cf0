// Package adapter owns a DRAM timing model on behalf of a memory controller.
// It builds the model from the configuration, advances it one cycle per host
// tick, forwards submissions, routes completions to a single handler and
// keeps the statistics file up to date.
package adapter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/dramctrl/config"
	"github.com/sarchlab/dramctrl/dram"
	"github.com/sarchlab/dramctrl/stats"
	"github.com/sarchlab/dramctrl/technology"
)

// ErrAlreadyFinalized is returned when Finalize is called more than once.
var ErrAlreadyFinalized = errors.New("adapter: already finalized")

// StatsSuffix is appended to the configured prefix to name the stats file.
const StatsSuffix = "dram.stats"

// Adapter is the facade between a memory controller and a timing model.
type Adapter struct {
	name     string
	standard string
	model    dram.Model

	cpuNS float64
	tCK   float64

	handler   dram.CompletionHandler
	finalized bool

	stats  *stats.Group
	writer *stats.Writer
}

// New resolves the configured technology, builds the timing model and writes
// the first report. Errors from the registry keep their identity; errors
// from the model are reported as config.ErrInvalidConfig.
func New(
	name string,
	cfg *config.Config,
	registry *technology.Registry,
) (*Adapter, error) {
	construct, err := registry.Resolve(cfg.Standard)
	if err != nil {
		return nil, err
	}

	model, err := construct(name, dram.Options{
		CachelineSize: cfg.CachelineSize,
		Channels:      cfg.DRAM.Channels,
		Ranks:         cfg.DRAM.Ranks,
		Banks:         cfg.DRAM.Banks,
		QueueSize:     cfg.DRAM.QueueSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: building %s model: %w",
			config.ErrInvalidConfig, cfg.Standard, err)
	}

	cpuNS, err := cfg.CPUFreq().PeriodNS()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	writer, err := stats.NewWriter(
		filepath.Join(cfg.OutDir, cfg.StatsPrefix+StatsSuffix))
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		name:     name,
		standard: cfg.Standard,
		model:    model,
		cpuNS:    cpuNS,
		tCK:      model.ClockNS(),
		writer:   writer,
	}

	a.stats = stats.NewGroup(cfg.Standard+"-"+name, "")
	a.stats.Scalar("cpu_ns", "Host cycle period in ns", a.cpuNS)
	a.stats.Scalar("tCK", "DRAM cycle period in ns", a.tCK)
	a.stats.AddGroup(model.Stats())

	model.OnComplete(a.deliver)

	if err := a.Report(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"name":     name,
		"standard": cfg.Standard,
		"cpu_ns":   a.cpuNS,
		"tCK":      a.tCK,
		"stats":    writer.Path(),
	}).Info("timing model ready")

	return a, nil
}

// Name returns the name the adapter was built with.
func (a *Adapter) Name() string {
	return a.name
}

// Standard returns the technology name.
func (a *Adapter) Standard() string {
	return a.standard
}

// CPUNS returns the host cycle period in nanoseconds.
func (a *Adapter) CPUNS() float64 {
	return a.cpuNS
}

// ClockNS returns the DRAM cycle period in nanoseconds.
func (a *Adapter) ClockNS() float64 {
	return a.tCK
}

// StatsPath returns the path of the stats file.
func (a *Adapter) StatsPath() string {
	return a.writer.Path()
}

// Stats returns the root statistics group. Owners may register their own
// counters in it; they will be part of every report.
func (a *Adapter) Stats() *stats.Group {
	return a.stats
}

// OnComplete registers the completion handler. Only one handler may be
// registered.
func (a *Adapter) OnComplete(fn dram.CompletionHandler) {
	if a.handler != nil {
		panic("adapter: completion handler already registered")
	}

	a.handler = fn
}

func (a *Adapter) deliver(req dram.Request) {
	if a.handler == nil {
		panic(fmt.Sprintf(
			"adapter: %s completed %#x with no handler registered",
			a.name, req.Addr))
	}

	a.handler(req)
}

// AdvanceCycle ticks the model once. Completion handlers run before it
// returns.
func (a *Adapter) AdvanceCycle() {
	a.mustNotBeFinalized()
	a.model.Tick()
}

// Submit offers a request to the model without blocking. A false return is
// backpressure, not an error.
func (a *Adapter) Submit(req dram.Request) bool {
	a.mustNotBeFinalized()
	return a.model.Send(req)
}

// Report rewrites the stats file from the current values.
func (a *Adapter) Report() error {
	return a.writer.Write(a.stats)
}

// Finalize flushes the model and writes the last report. It must be called
// exactly once.
func (a *Adapter) Finalize() error {
	if a.finalized {
		return ErrAlreadyFinalized
	}

	a.finalized = true
	a.model.Finish()

	if err := a.Report(); err != nil {
		return err
	}

	logrus.WithField("name", a.name).Info("timing model finalized")

	return nil
}

func (a *Adapter) mustNotBeFinalized() {
	if a.finalized {
		panic("adapter: " + a.name + " used after Finalize")
	}
}
