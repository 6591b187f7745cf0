// Package dram defines the capability set of a DRAM timing model and ships a
// bank-level reference model.
//
// A model is driven one cycle at a time. Requests are offered with Send,
// which may refuse them when the model's queues are full. Completed requests
// are reported through the completion handler during Tick, in whatever order
// the model finishes them.
package dram

import (
	"errors"

	"github.com/sarchlab/dramctrl/stats"
)

// ErrInvalidOrganization is returned when a model cannot be built from the
// given organization.
var ErrInvalidOrganization = errors.New("dram: invalid organization")

// Kind tells reads from writes.
type Kind int

// Request kinds.
const (
	Read Kind = iota
	Write
)

func (k Kind) String() string {
	if k == Write {
		return "write"
	}

	return "read"
}

// A Request is a single memory access offered to the timing model.
type Request struct {
	// Addr is a byte address.
	Addr uint64
	Kind Kind

	// SubmitCycle is the host cycle of the submission attempt.
	SubmitCycle uint64

	// MinStartCycle is the earliest host cycle the access could start.
	MinStartCycle uint64

	// Domain identifies the issuing core or domain.
	Domain int
}

// IsWrite reports whether the request is a write.
func (r Request) IsWrite() bool {
	return r.Kind == Write
}

// CompletionHandler receives requests that the model has finished.
type CompletionHandler func(req Request)

// Model is a DRAM timing model.
type Model interface {
	// Tick advances the model by one cycle. Completion handlers run inside
	// Tick.
	Tick()

	// Send offers a request. It returns false when the model cannot accept
	// the request in this cycle.
	Send(req Request) bool

	// OnComplete sets the handler that receives finished requests.
	OnComplete(fn CompletionHandler)

	// ClockNS is the model's clock period in nanoseconds.
	ClockNS() float64

	// Finish flushes end-of-run statistics.
	Finish()

	// Stats returns the model's statistics.
	Stats() *stats.Group
}

// Options describe how a model is organized.
type Options struct {
	CachelineSize uint64
	Channels      int
	Ranks         int
	// Banks per rank. Zero uses the protocol default.
	Banks     int
	QueueSize int
}
