package dram

import (
	"github.com/sarchlab/dramctrl/stats"
)

type inService struct {
	req    Request
	doneAt uint64
}

type bank struct {
	queue     []Request
	current   *inService
	busyUntil uint64
}

type channel struct {
	banks     []*bank
	queued    int
	busFreeAt uint64
}

// BankedModel is a close-page timing model. Every request activates its row,
// transfers one burst over the channel's data bus, and precharges the bank.
// Banks work in parallel; the data bus of a channel is shared. Requests to
// different banks may therefore finish out of their arrival order.
type BankedModel struct {
	name      string
	timing    TimingSpec
	lineBits  uint
	numRank   int
	numBank   int
	numSub    int
	queueSize int

	cycle    uint64
	channels []*channel
	handler  CompletionHandler
	finished bool

	stats             *stats.Group
	incomingReads     *stats.Counter
	incomingWrites    *stats.Counter
	rejected          *stats.Counter
	served            *stats.Counter
	cycles            *stats.Counter
	queueOccupancy    *stats.Counter
	avgQueueOccupancy *stats.Scalar
}

// Name returns the name of the model.
func (m *BankedModel) Name() string {
	return m.name
}

// Timing returns the timing parameters the model uses.
func (m *BankedModel) Timing() TimingSpec {
	return m.timing
}

// OnComplete sets the completion handler.
func (m *BankedModel) OnComplete(fn CompletionHandler) {
	m.handler = fn
}

// ClockNS returns tCK.
func (m *BankedModel) ClockNS() float64 {
	return m.timing.TCKNS
}

// Stats returns the model's counters.
func (m *BankedModel) Stats() *stats.Group {
	return m.stats
}

// NumQueued returns the number of requests accepted but not yet finished.
func (m *BankedModel) NumQueued() int {
	n := 0
	for _, ch := range m.channels {
		n += ch.queued
	}

	return n
}

// Send places the request in its bank's queue unless the channel is full.
func (m *BankedModel) Send(req Request) bool {
	chIdx, unitIdx := m.mapAddress(req.Addr)
	ch := m.channels[chIdx]

	if ch.queued >= m.queueSize {
		m.rejected.Inc()
		return false
	}

	b := ch.banks[unitIdx]
	b.queue = append(b.queue, req)
	ch.queued++

	if req.IsWrite() {
		m.incomingWrites.Inc()
	} else {
		m.incomingReads.Inc()
	}

	return true
}

// mapAddress splits the line index into channel, bank, rank and subarray,
// in that order from the least significant part.
func (m *BankedModel) mapAddress(addr uint64) (chIdx, unitIdx int) {
	line := addr >> m.lineBits

	numChannel := uint64(len(m.channels))
	chIdx = int(line % numChannel)
	line /= numChannel

	bankIdx := int(line % uint64(m.numBank))
	line /= uint64(m.numBank)

	rankIdx := int(line % uint64(m.numRank))
	line /= uint64(m.numRank)

	subIdx := int(line % uint64(m.numSub))

	unitIdx = (rankIdx*m.numBank+bankIdx)*m.numSub + subIdx

	return chIdx, unitIdx
}

// Tick advances one memory cycle. Finished requests are reported first, then
// idle banks start their next request.
func (m *BankedModel) Tick() {
	m.cycle++
	m.cycles.Inc()

	for _, ch := range m.channels {
		m.completeFinished(ch)
	}

	for _, ch := range m.channels {
		m.issue(ch)
		m.queueOccupancy.Add(uint64(ch.queued))
	}
}

func (m *BankedModel) completeFinished(ch *channel) {
	for _, b := range ch.banks {
		if b.current == nil || b.current.doneAt > m.cycle {
			continue
		}

		req := b.current.req
		b.current = nil
		ch.queued--
		m.served.Inc()

		if m.handler != nil {
			m.handler(req)
		}
	}
}

func (m *BankedModel) issue(ch *channel) {
	burst := uint64(m.timing.BurstCycle())

	for _, b := range ch.banks {
		if b.current != nil || b.busyUntil > m.cycle || len(b.queue) == 0 {
			continue
		}

		req := b.queue[0]
		b.queue = b.queue[1:]

		latency := m.timing.ReadLatency()
		if req.IsWrite() {
			latency = m.timing.WriteLatency()
		}

		dataStart := max(m.cycle+uint64(latency), ch.busFreeAt)
		doneAt := dataStart + burst
		ch.busFreeAt = doneAt

		b.current = &inService{req: req, doneAt: doneAt}
		b.busyUntil = max(m.cycle+uint64(m.timing.TRAS), doneAt) +
			uint64(m.timing.TRP)
	}
}

// Finish computes end-of-run averages. Calling it more than once has no
// further effect.
func (m *BankedModel) Finish() {
	if m.finished {
		return
	}

	m.finished = true

	if m.cycle > 0 {
		m.avgQueueOccupancy.Set(
			float64(m.queueOccupancy.Value()) / float64(m.cycle))
	}
}

var _ Model = (*BankedModel)(nil)
