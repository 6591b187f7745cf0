package datarecording

import (
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/dramctrl/dram"
	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/memctrl"
)

type namedDomain struct {
	*hooking.HookableBase
	name string
}

func (d namedDomain) Name() string {
	return d.name
}

var _ = Describe("RequestTracer", func() {
	var (
		db       *sql.DB
		recorder DataRecorder
		domain   namedDomain
	)

	BeforeEach(func() {
		db = openTestDB()
		recorder = NewWithDB(db)
		domain = namedDomain{hooking.NewHookableBase(), "mem0"}
	})

	AfterEach(func() {
		Expect(recorder.Close()).To(Succeed())
	})

	It("should store completed requests", func() {
		tracer := NewRequestTracer(recorder, false)

		tracer.Func(hooking.HookCtx{
			Domain: domain,
			Pos:    memctrl.HookPosReqCompleted,
			Item: memctrl.ReqRecord{
				ID:            "3",
				Addr:          0x1c0,
				Kind:          dram.Write,
				Domain:        2,
				SubmitCycle:   10,
				CompleteCycle: 42,
				Latency:       32,
			},
		})
		tracer.Terminate()

		var (
			ctrl, kind string
			latency    uint64
		)
		query := "SELECT Ctrl, Kind, Latency FROM " + RequestTable +
			" WHERE ID = '3'"
		err := db.QueryRow(query).Scan(&ctrl, &kind, &latency)

		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl).To(Equal("mem0"))
		Expect(kind).To(Equal(dram.Write.String()))
		Expect(latency).To(Equal(uint64(32)))
		Expect(tracer.NumCompleted()).To(Equal(1))
	})

	It("should ignore rejections unless asked to record them", func() {
		tracer := NewRequestTracer(recorder, false)

		tracer.Func(hooking.HookCtx{
			Domain: domain,
			Pos:    memctrl.HookPosReqRejected,
			Item:   memctrl.ReqRecord{Addr: 0x40, SubmitCycle: 5},
		})

		Expect(tracer.NumRejected()).To(BeZero())
		Expect(recorder.ListTables()).To(Equal([]string{RequestTable}))
	})

	It("should store rejections when asked to", func() {
		tracer := NewRequestTracer(recorder, true)

		tracer.Func(hooking.HookCtx{
			Domain: domain,
			Pos:    memctrl.HookPosReqRejected,
			Item:   memctrl.ReqRecord{Addr: 0x40, SubmitCycle: 5},
		})
		tracer.Terminate()

		Expect(tracer.NumRejected()).To(Equal(1))
		Expect(countRows(db, RejectionTable)).To(Equal(1))
	})

	It("should skip accepted requests", func() {
		tracer := NewRequestTracer(recorder, true)

		tracer.Func(hooking.HookCtx{
			Domain: domain,
			Pos:    memctrl.HookPosReqAccepted,
			Item:   memctrl.ReqRecord{Addr: 0x40},
		})
		tracer.Terminate()

		Expect(countRows(db, RequestTable)).To(BeZero())
		Expect(countRows(db, RejectionTable)).To(BeZero())
	})
})

var _ = Describe("RunRecorder", func() {
	It("should write the start and end properties", func() {
		db := openTestDB()
		recorder := NewWithDB(db)
		defer recorder.Close()

		run := NewRunRecorder(recorder)
		run.Start(Property{"Standard", "DDR3"})
		run.End()

		rows, err := db.Query("SELECT Property FROM " + RunInfoTable)
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()

		var props []string
		for rows.Next() {
			var p string
			Expect(rows.Scan(&p)).To(Succeed())
			props = append(props, p)
		}

		Expect(props).To(ContainElements(
			"Start Time", "Command", "Standard", "End Time"))
		Expect(props[len(props)-1]).To(Equal("End Time"))
	})
})
