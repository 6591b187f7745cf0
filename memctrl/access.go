package memctrl

import (
	"fmt"
)

// AccessType is the coherence request type arriving from the cache
// hierarchy.
type AccessType int

// Access types.
const (
	// GETS fetches a line for reading.
	GETS AccessType = iota
	// GETX fetches a line for writing.
	GETX
	// PUTS writes back a clean line.
	PUTS
	// PUTX writes back a dirty line.
	PUTX
)

func (t AccessType) String() string {
	switch t {
	case GETS:
		return "GETS"
	case GETX:
		return "GETX"
	case PUTS:
		return "PUTS"
	case PUTX:
		return "PUTX"
	default:
		return fmt.Sprintf("AccessType(%d)", int(t))
	}
}

// MESIState is the coherence state granted to the requester.
type MESIState int

// Coherence states.
const (
	I MESIState = iota
	S
	E
	M
)

func (s MESIState) String() string {
	return [...]string{"I", "S", "E", "M"}[s]
}

// ReqFlag modifies how a request is served.
type ReqFlag uint32

// Request flags.
const (
	// NoExcl forbids granting exclusive ownership on a GETS.
	NoExcl ReqFlag = 1 << iota
)

// MemReq is a memory request coming from the last-level cache.
type MemReq struct {
	LineAddr uint64
	Type     AccessType
	Cycle    uint64
	SrcID    int
	Flags    ReqFlag

	// State receives the coherence state of the line after the access.
	State *MESIState
}

// Is reports whether the flag is set.
func (r *MemReq) Is(f ReqFlag) bool {
	return r.Flags&f != 0
}

// MemObject is anything that serves cache-line accesses and returns the
// estimated response cycle.
type MemObject interface {
	Name() string
	Access(req *MemReq) uint64
}

// AccessInfo carries what the host needs to build an access event.
type AccessInfo struct {
	Addr          uint64
	IsWrite       bool
	Domain        int
	MinStartCycle uint64
}

// TimingRecord announces an access event to the issuing core's recorder.
type TimingRecord struct {
	Addr      uint64
	ReqCycle  uint64
	RespCycle uint64
	Type      AccessType
	Event     HostEvent
}

// EventRecorder is the per-core sink for access events.
type EventRecorder interface {
	// NewAccessEvent creates the host event that will be enqueued at target.
	NewAccessEvent(target Enqueuer, info AccessInfo) HostEvent

	// PushRecord hands the event over to the host.
	PushRecord(rec TimingRecord)
}

// RecorderTable finds the recorder of a source. It returns nil when the
// source does not record events.
type RecorderTable interface {
	EventRecorder(srcID int) EventRecorder
}

// Access grants the coherence state, returns the minimum-latency response
// cycle and, except for clean writebacks, schedules the DRAM access through
// the requester's event recorder.
func (c *Comp) Access(req *MemReq) uint64 {
	var state MESIState

	switch req.Type {
	case PUTS, PUTX:
		state = I
	case GETS:
		state = E
		if req.Is(NoExcl) {
			state = S
		}
	case GETX:
		state = M
	default:
		panic(fmt.Sprintf("memctrl: unknown access type %v", req.Type))
	}

	if req.State != nil {
		*req.State = state
	}

	respCycle := req.Cycle + c.minLatency
	if respCycle <= req.Cycle {
		panic(fmt.Sprintf("memctrl: response cycle %d not after request "+
			"cycle %d", respCycle, req.Cycle))
	}

	if req.Type == PUTS || c.recorders == nil {
		return respCycle
	}

	recorder := c.recorders.EventRecorder(req.SrcID)
	if recorder == nil {
		return respCycle
	}

	addr := req.LineAddr << c.lineBits
	ev := recorder.NewAccessEvent(c, AccessInfo{
		Addr:          addr,
		IsWrite:       req.Type == PUTX,
		Domain:        c.domain,
		MinStartCycle: req.Cycle,
	})

	recorder.PushRecord(TimingRecord{
		Addr:      addr,
		ReqCycle:  req.Cycle,
		RespCycle: respCycle,
		Type:      req.Type,
		Event:     ev,
	})

	return respCycle
}

var _ MemObject = (*Comp)(nil)
