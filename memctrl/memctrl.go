// Package memctrl connects a cycle-driven host simulator to a DRAM timing
// model.
//
// The controller accepts access events from the host, offers them to the
// timing model and keeps every accepted request in an in-flight table keyed
// by address. A request the model refuses is handed back to the host to be
// retried on the next cycle. When the model finishes a request, the
// controller resolves the in-flight entry, accounts the latency and tells the
// host event that it is done.
package memctrl

import (
	"errors"

	"github.com/sarchlab/dramctrl/dram"
	"github.com/sarchlab/dramctrl/hooking"
	"github.com/sarchlab/dramctrl/stats"
)

// ErrInFlightConsistencyViolation signals that the in-flight table and the
// timing model disagree about which requests are outstanding. The controller
// panics with an error wrapping it.
var ErrInFlightConsistencyViolation = errors.New(
	"in-flight consistency violation")

// HostEvent is the host-side handle of one memory access.
type HostEvent interface {
	// Address is the byte address of the access.
	Address() uint64
	IsWrite() bool
	Domain() int
	MinStartCycle() uint64

	// Hold marks the event as waiting for the timing model.
	Hold()

	// Requeue asks the host to deliver the event again at the given cycle.
	Requeue(cycle uint64)

	// Done reports that the access finished at the given cycle.
	Done(cycle uint64)
}

// Backend is the timing model facade the controller drives.
type Backend interface {
	AdvanceCycle()
	Submit(req dram.Request) bool
	OnComplete(fn dram.CompletionHandler)
	Stats() *stats.Group
	Report() error
	Finalize() error
}

// Enqueuer accepts host events for service.
type Enqueuer interface {
	Enqueue(ev HostEvent, cycle uint64)
}

var (
	// HookPosReqAccepted fires when the timing model accepts a request.
	HookPosReqAccepted = &hooking.HookPos{Name: "ReqAccepted"}

	// HookPosReqRejected fires when the timing model refuses a request.
	HookPosReqRejected = &hooking.HookPos{Name: "ReqRejected"}

	// HookPosReqCompleted fires when an in-flight request finishes.
	HookPosReqCompleted = &hooking.HookPos{Name: "ReqCompleted"}
)

// ReqRecord describes a request at a hook site. CompleteCycle and Latency
// are only set at HookPosReqCompleted.
type ReqRecord struct {
	ID            string
	Addr          uint64
	Kind          dram.Kind
	Domain        int
	SubmitCycle   uint64
	CompleteCycle uint64
	Latency       uint64
}

// Counters is a snapshot of the latency statistics.
type Counters struct {
	Reads        uint64
	Writes       uint64
	ReadLatency  uint64
	WriteLatency uint64
}
