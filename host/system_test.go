package host

import (
	"fmt"
	"os"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramctrl/adapter"
	"github.com/sarchlab/dramctrl/config"
	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/technology"
	"github.com/sarchlab/dramctrl/timing"
)

var _ = ginkgo.Describe("System", func() {
	var (
		cfg    *config.Config
		engine *timing.SerialEngine
		sys    *System
		ctrls  []*memctrl.Comp
	)

	build := func(numCtrl int) {
		engine = timing.NewSerialEngine()
		sys = NewSystem(engine, 4)
		ctrls = nil

		for i := 0; i < numCtrl; i++ {
			name := fmt.Sprintf("mem%d", i)
			c := *cfg
			c.StatsPrefix = name + "."

			a, err := adapter.New(name, &c, technology.DefaultRegistry())
			Expect(err).NotTo(HaveOccurred())

			ctrl := memctrl.MakeBuilder().
				WithEngine(engine).
				WithBackend(a).
				WithRecorders(sys).
				WithLineBits(cfg.LineBits()).
				WithMinLatency(cfg.MinLatency).
				Build(name)
			ctrls = append(ctrls, ctrl)
		}

		hostCtrls := make([]Controller, len(ctrls))
		for i, c := range ctrls {
			hostCtrls[i] = c
		}

		sys.ConnectControllers(hostCtrls...)
	}

	ginkgo.BeforeEach(func() {
		cfg = config.Default()
		cfg.OutDir = ginkgo.GinkgoT().TempDir()
		cfg.DRAM.QueueSize = 4
	})

	ginkgo.It("should serve every access of every core", func() {
		build(2)

		numAccesses := 0
		for i := 0; i < 3; i++ {
			syn := DefaultSyntheticConfig()
			syn.Seed = int64(i + 1)
			syn.NumAccesses = 200
			syn.FootprintLines = 64
			syn.MaxGap = 1
			sys.AddCore(NewSyntheticWorkload(syn))
			numAccesses += syn.NumAccesses
		}

		finished := false
		sys.OnFinish(func() { finished = true })

		Expect(sys.Run()).To(Succeed())
		Expect(finished).To(BeTrue())

		var issued, completed, clean uint64
		for _, core := range sys.Cores() {
			Expect(core.Finished()).To(BeTrue())
			Expect(core.Outstanding()).To(BeZero())
			issued += core.issued.Value()
			completed += core.completed.Value()
			clean += core.cleanDropped.Value()
		}

		var served uint64
		for _, ctrl := range ctrls {
			c := ctrl.Counters()
			served += c.Reads + c.Writes
			Expect(ctrl.NumInflight()).To(BeZero())
			Expect(ctrl.Finalize()).To(Succeed())
		}

		Expect(issued).To(Equal(uint64(numAccesses)))
		Expect(completed + clean).To(Equal(issued))
		Expect(served).To(Equal(completed))
		Expect(sys.busy.Len()).To(BeZero())

		for _, ctrl := range ctrls {
			_, err := os.Stat(fmt.Sprintf("%s/%s.%s",
				cfg.OutDir, ctrl.Name(), adapter.StatsSuffix))
			Expect(err).NotTo(HaveOccurred())
		}
	})

	ginkgo.It("should finish at once without cores", func() {
		build(1)

		Expect(sys.Run()).To(Succeed())
		Expect(ctrls[0].CurrentCycle()).To(Equal(uint64(1)))
	})

	ginkgo.It("should hand recorders only to known cores", func() {
		build(1)
		core := sys.AddCore(NewSliceWorkload(nil))

		Expect(sys.EventRecorder(0)).To(BeIdenticalTo(core.Recorder()))
		Expect(sys.EventRecorder(1)).To(BeNil())
		Expect(sys.EventRecorder(-1)).To(BeNil())
	})
})
