package datarecording

import (
	"sync"

	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/memctrl"
)

// Tables written by RequestTracer.
const (
	RequestTable   = "dram_requests"
	RejectionTable = "dram_rejections"
)

type requestRow struct {
	ID            string
	Ctrl          string
	Addr          uint64
	Kind          string
	Domain        int
	SubmitCycle   uint64
	CompleteCycle uint64
	Latency       uint64
}

type rejectionRow struct {
	Ctrl   string
	Addr   uint64
	Kind   string
	Domain int
	Cycle  uint64
}

type named interface {
	Name() string
}

// RequestTracer is a hook that stores every completed request, and
// optionally every rejection, of the controllers it is attached to.
type RequestTracer struct {
	mu       sync.Mutex
	recorder DataRecorder

	recordRejections bool
	numCompleted     int
	numRejected      int
}

// NewRequestTracer creates the request tables on the recorder.
func NewRequestTracer(
	recorder DataRecorder,
	recordRejections bool,
) *RequestTracer {
	recorder.CreateTable(RequestTable, requestRow{})

	if recordRejections {
		recorder.CreateTable(RejectionTable, rejectionRow{})
	}

	return &RequestTracer{
		recorder:         recorder,
		recordRejections: recordRejections,
	}
}

// Func records the request carried by the hook context.
func (t *RequestTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case memctrl.HookPosReqCompleted:
		t.recordCompletion(ctx)
	case memctrl.HookPosReqRejected:
		if t.recordRejections {
			t.recordRejection(ctx)
		}
	}
}

func (t *RequestTracer) recordCompletion(ctx hooking.HookCtx) {
	rec := ctx.Item.(memctrl.ReqRecord)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.recorder.InsertData(RequestTable, requestRow{
		ID:            rec.ID,
		Ctrl:          domainName(ctx.Domain),
		Addr:          rec.Addr,
		Kind:          rec.Kind.String(),
		Domain:        rec.Domain,
		SubmitCycle:   rec.SubmitCycle,
		CompleteCycle: rec.CompleteCycle,
		Latency:       rec.Latency,
	})
	t.numCompleted++
}

func (t *RequestTracer) recordRejection(ctx hooking.HookCtx) {
	rec := ctx.Item.(memctrl.ReqRecord)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.recorder.InsertData(RejectionTable, rejectionRow{
		Ctrl:   domainName(ctx.Domain),
		Addr:   rec.Addr,
		Kind:   rec.Kind.String(),
		Domain: rec.Domain,
		Cycle:  rec.SubmitCycle,
	})
	t.numRejected++
}

// NumCompleted returns the number of completions recorded so far.
func (t *RequestTracer) NumCompleted() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.numCompleted
}

// NumRejected returns the number of rejections recorded so far.
func (t *RequestTracer) NumRejected() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.numRejected
}

// Terminate flushes the buffered rows.
func (t *RequestTracer) Terminate() {
	t.recorder.Flush()
}

func domainName(domain hooking.Hookable) string {
	if n, ok := domain.(named); ok {
		return n.Name()
	}

	return ""
}
