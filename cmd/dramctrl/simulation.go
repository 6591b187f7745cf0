package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/dramctrl/adapter"
	"github.com/sarchlab/dramctrl/config"
	"github.com/sarchlab/dramctrl/datarecording"
	"github.com/sarchlab/dramctrl/host"
	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/monitoring"
	"github.com/sarchlab/dramctrl/technology"
	"github.com/sarchlab/dramctrl/timing"
)

type runOptions struct {
	tracePath   string
	numCores    int
	seed        int64
	accesses    int
	window      int
	monitor     bool
	monitorPort int
	openBrowser bool
	recordPath  string
	rejections  bool
}

type simulation struct {
	cfg      *config.Config
	engine   *timing.SerialEngine
	system   *host.System
	adapters []*adapter.Adapter
	ctrls    []*memctrl.Comp

	monitor  *monitoring.Monitor
	progress *monitoring.ProgressBar
	recorder datarecording.DataRecorder
	tracer   *datarecording.RequestTracer
	runInfo  *datarecording.RunRecorder
}

func controllerName(i int) string {
	return fmt.Sprintf("mem%d", i)
}

func loadWorkloads(opts runOptions) ([]host.Workload, error) {
	if opts.tracePath != "" {
		return host.LoadTrace(opts.tracePath)
	}

	workloads := make([]host.Workload, opts.numCores)
	for i := range workloads {
		syn := host.DefaultSyntheticConfig()
		syn.Seed = opts.seed + int64(i)
		if opts.accesses > 0 {
			syn.NumAccesses = opts.accesses
		}

		workloads[i] = host.NewSyntheticWorkload(syn)
	}

	return workloads, nil
}

func buildSimulation(
	cfg *config.Config,
	registry *technology.Registry,
	opts runOptions,
) (*simulation, error) {
	workloads, err := loadWorkloads(opts)
	if err != nil {
		return nil, err
	}

	s := &simulation{
		cfg:    cfg,
		engine: timing.NewSerialEngine(),
	}
	s.system = host.NewSystem(s.engine, opts.window)

	if opts.monitor {
		s.monitor = monitoring.NewMonitor().
			WithPortNumber(opts.monitorPort).
			WithBrowser(opts.openBrowser)
		s.monitor.RegisterEngine(s.engine)

		var total uint64
		for _, w := range workloads {
			total += uint64(w.Len())
		}

		s.progress = s.monitor.CreateProgressBar("accesses", total)
	}

	if err := s.buildControllers(registry); err != nil {
		return nil, err
	}

	if opts.recordPath != "" {
		if err := s.attachRecorder(opts); err != nil {
			return nil, err
		}
	}

	for _, w := range workloads {
		s.system.AddCore(w)
	}

	return s, nil
}

func (s *simulation) buildControllers(registry *technology.Registry) error {
	ctrls := make([]host.Controller, 0, s.cfg.NumControllers)

	for i := 0; i < s.cfg.NumControllers; i++ {
		name := controllerName(i)

		ctrlCfg := *s.cfg
		if s.cfg.NumControllers > 1 {
			ctrlCfg.StatsPrefix = s.cfg.StatsPrefix + name + "."
		}

		a, err := adapter.New(name, &ctrlCfg, registry)
		if err != nil {
			return err
		}

		b := memctrl.MakeBuilder().
			WithEngine(s.engine).
			WithBackend(a).
			WithRecorders(s.system).
			WithLineBits(s.cfg.LineBits()).
			WithMinLatency(s.cfg.MinLatency).
			WithDomain(s.cfg.Domain).
			WithReportInterval(s.cfg.ReportInterval)

		if s.progress != nil {
			b = b.WithHook(monitoring.NewProgressHook(s.progress))
		}

		ctrl := b.Build(name)

		if s.monitor != nil {
			s.monitor.RegisterController(ctrl)
			s.monitor.RegisterStats(a.Stats())
		}

		s.adapters = append(s.adapters, a)
		s.ctrls = append(s.ctrls, ctrl)
		ctrls = append(ctrls, ctrl)
	}

	s.system.ConnectControllers(ctrls...)

	return nil
}

// attachRecorder runs after buildControllers. A failed build must not leave
// a database file on disk.
func (s *simulation) attachRecorder(opts runOptions) error {
	recorder, err := datarecording.New(opts.recordPath)
	if err != nil {
		return err
	}

	s.recorder = recorder
	s.tracer = datarecording.NewRequestTracer(recorder, opts.rejections)
	s.runInfo = datarecording.NewRunRecorder(recorder)

	for _, ctrl := range s.ctrls {
		ctrl.AcceptHook(s.tracer)
	}

	return nil
}

// run simulates until every core is done, then finalizes every controller.
func (s *simulation) run() error {
	if s.monitor != nil {
		if _, err := s.monitor.StartServer(); err != nil {
			return err
		}
	}

	if s.runInfo != nil {
		s.runInfo.Start(
			datarecording.Property{Property: "Standard", Value: s.cfg.Standard},
			datarecording.Property{
				Property: "Controllers",
				Value:    fmt.Sprint(s.cfg.NumControllers),
			},
		)
	}

	runErr := s.system.Run()

	var finalizeErr error
	for _, ctrl := range s.ctrls {
		if err := ctrl.Finalize(); err != nil && finalizeErr == nil {
			finalizeErr = err
		}
	}

	if s.runInfo != nil {
		s.runInfo.End()
	}

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil && finalizeErr == nil {
			finalizeErr = err
		}
	}

	if s.progress != nil {
		s.monitor.CompleteProgressBar(s.progress)
	}

	if runErr != nil {
		return runErr
	}

	return finalizeErr
}

func average(total, n uint64) float64 {
	if n == 0 {
		return 0
	}

	return float64(total) / float64(n)
}

func (s *simulation) printSummary(w io.Writer) {
	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	value := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(w, "%s %s, %d controller(s), finished at cycle %s after %s events\n",
		title("dramctrl"), s.cfg.Standard, len(s.ctrls),
		value(s.engine.CurrentTime()), value(s.engine.NumDispatched()))

	for i, ctrl := range s.ctrls {
		c := ctrl.Counters()

		rdLat := fmt.Sprintf("%.2f", average(c.ReadLatency, c.Reads))
		wrLat := fmt.Sprintf("%.2f", average(c.WriteLatency, c.Writes))

		fmt.Fprintf(w, "  %s reads %s (avg %s cycles), writes %s (avg %s cycles)\n",
			title(ctrl.Name()),
			value(c.Reads), value(rdLat),
			value(c.Writes), value(wrLat))
		fmt.Fprintf(w, "    stats: %s\n", s.adapters[i].StatsPath())
	}

	logrus.WithField("cycle", s.engine.CurrentTime()).Debug("summary printed")
}
