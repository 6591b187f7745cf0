package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/memctrl"
	"github.com/sarchlab/dramctrl/stats"
	"github.com/sarchlab/dramctrl/timing"
)

type fakeController struct {
	Label    string
	Cycle    uint64
	Inflight []uint64
	Served   memctrl.Counters
}

func (c *fakeController) Name() string                { return c.Label }
func (c *fakeController) CurrentCycle() uint64        { return c.Cycle }
func (c *fakeController) NumInflight() int            { return len(c.Inflight) }
func (c *fakeController) InflightAddresses() []uint64 { return c.Inflight }
func (c *fakeController) Counters() memctrl.Counters  { return c.Served }

func (c *fakeController) Status() memctrl.Status {
	return memctrl.Status{
		Name:        c.Label,
		Cycle:       c.Cycle,
		NumInflight: len(c.Inflight),
		Counters:    c.Served,
	}
}

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		engine *timing.SerialEngine
		ctrl   *fakeController
		router *mux.Router
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec
	}

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		ctrl = &fakeController{
			Label:    "mem0",
			Cycle:    42,
			Inflight: []uint64{0x40, 0x80},
			Served:   memctrl.Counters{Reads: 3, Writes: 1},
		}

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterController(ctrl)
		router = m.Router()
	})

	It("should report the current cycle", func() {
		rec := get("/api/now")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"now":0}`))
	})

	It("should list controllers", func() {
		Expect(get("/api/list_components").Body.String()).
			To(MatchJSON(`["mem0"]`))
	})

	It("should show the in-flight requests of a controller", func() {
		rec := get("/api/inflight/mem0")

		var rsp inflightRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Cycle).To(Equal(uint64(42)))
		Expect(rsp.NumInflight).To(Equal(2))
		Expect(rsp.Addresses).To(Equal([]uint64{0x40, 0x80}))
		Expect(rsp.Counters.Reads).To(Equal(uint64(3)))
	})

	It("should answer 404 for unknown controllers", func() {
		Expect(get("/api/inflight/mem9").Code).To(Equal(http.StatusNotFound))
		Expect(get("/api/component/mem9").Code).To(Equal(http.StatusNotFound))
	})

	It("should serialize a controller", func() {
		rec := get("/api/component/mem0")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("mem0"))
	})

	It("should flatten registered stats", func() {
		g := stats.NewGroup("DDR3-mem0", "")
		g.Counter("rd", "Total reads").Add(5)
		m.RegisterStats(g)

		var rsp []statRsp
		Expect(json.Unmarshal(get("/api/stats").Body.Bytes(), &rsp)).
			To(Succeed())
		Expect(rsp).To(ConsistOf(statRsp{
			Name:  "DDR3-mem0.rd",
			Value: "5",
			Desc:  "Total reads",
		}))
	})

	It("should only pause with POST", func() {
		Expect(get("/api/pause").Code).To(Equal(http.StatusMethodNotAllowed))
	})

	It("should pause and continue the engine", func() {
		for _, path := range []string{"/api/pause", "/api/continue"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec,
				httptest.NewRequest(http.MethodPost, path, nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
		}

		Expect(engine.Run()).To(Succeed())
	})

	It("should report process resources", func() {
		rec := get("/api/resource")

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Progress", func() {
	It("should follow accepted and completed requests", func() {
		m := NewMonitor()
		bar := m.CreateProgressBar("accesses", 2)
		hook := NewProgressHook(bar)

		hook.Func(hooking.HookCtx{Pos: memctrl.HookPosReqAccepted})
		hook.Func(hooking.HookCtx{Pos: memctrl.HookPosReqAccepted})
		hook.Func(hooking.HookCtx{Pos: memctrl.HookPosReqRejected})
		hook.Func(hooking.HookCtx{Pos: memctrl.HookPosReqCompleted})

		snap := bar.snapshot()
		Expect(snap.InProgress).To(Equal(uint64(1)))
		Expect(snap.Finished).To(Equal(uint64(1)))
		Expect(snap.ID).NotTo(BeEmpty())
	})

	It("should drop completed bars from the list", func() {
		m := NewMonitor()
		a := m.CreateProgressBar("a", 1)
		m.CreateProgressBar("b", 1)

		m.CompleteProgressBar(a)

		router := m.Router()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec,
			httptest.NewRequest(http.MethodGet, "/api/progress", nil))

		var rsp []progressSnapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("b"))
	})
})
