package dram

import (
	"fmt"
	"math/bits"

	"github.com/sarchlab/dramctrl/stats"
)

// Builder can build banked timing models.
type Builder struct {
	timing TimingSpec

	cachelineSize uint64
	numChannel    int
	numRank       int
	numBank       int
	queueSize     int
}

// MakeBuilder creates a builder with a single-channel, single-rank DDR3
// organization.
func MakeBuilder() Builder {
	return Builder{
		timing:        DDR3.Timing(),
		cachelineSize: 64,
		numChannel:    1,
		numRank:       1,
		queueSize:     32,
	}
}

// WithProtocol selects a protocol and loads its preset timing.
func (b Builder) WithProtocol(p Protocol) Builder {
	b.timing = p.Timing()
	return b
}

// WithTiming overrides the timing parameters.
func (b Builder) WithTiming(t TimingSpec) Builder {
	b.timing = t
	return b
}

// WithCachelineSize sets the size of a request in bytes.
func (b Builder) WithCachelineSize(size uint64) Builder {
	b.cachelineSize = size
	return b
}

// WithNumChannel sets the number of independent channels.
func (b Builder) WithNumChannel(n int) Builder {
	b.numChannel = n
	return b
}

// WithNumRank sets the number of ranks per channel.
func (b Builder) WithNumRank(n int) Builder {
	b.numRank = n
	return b
}

// WithNumBank sets the number of banks per rank. Zero keeps the protocol
// default.
func (b Builder) WithNumBank(n int) Builder {
	b.numBank = n
	return b
}

// WithQueueSize sets how many requests a channel buffers.
func (b Builder) WithQueueSize(n int) Builder {
	b.queueSize = n
	return b
}

// WithOptions applies a full organization at once.
func (b Builder) WithOptions(opts Options) Builder {
	b.cachelineSize = opts.CachelineSize
	b.numChannel = opts.Channels
	b.numRank = opts.Ranks
	b.numBank = opts.Banks
	b.queueSize = opts.QueueSize

	return b
}

// Build creates a banked model.
func (b Builder) Build(name string) (*BankedModel, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	numBank := b.timing.Banks
	if b.numBank > 0 {
		numBank = b.numBank
	}

	subarrays := max(b.timing.Subarrays, 1)

	m := &BankedModel{
		name:      name,
		timing:    b.timing,
		lineBits:  uint(bits.TrailingZeros64(b.cachelineSize)),
		numRank:   b.numRank,
		numBank:   numBank,
		numSub:    subarrays,
		queueSize: b.queueSize,
	}

	unitsPerChannel := b.numRank * numBank * subarrays
	for i := 0; i < b.numChannel; i++ {
		ch := &channel{banks: make([]*bank, unitsPerChannel)}
		for j := range ch.banks {
			ch.banks[j] = &bank{}
		}

		m.channels = append(m.channels, ch)
	}

	m.initStats()

	return m, nil
}

func (b Builder) check() error {
	if b.cachelineSize == 0 || bits.OnesCount64(b.cachelineSize) != 1 {
		return fmt.Errorf("%w: cacheline size %d is not a power of two",
			ErrInvalidOrganization, b.cachelineSize)
	}

	if b.numChannel < 1 || b.numRank < 1 || b.numBank < 0 {
		return fmt.Errorf("%w: %d channels, %d ranks, %d banks",
			ErrInvalidOrganization, b.numChannel, b.numRank, b.numBank)
	}

	if b.queueSize < 1 {
		return fmt.Errorf("%w: queue size %d",
			ErrInvalidOrganization, b.queueSize)
	}

	if b.timing.BurstLength <= 0 || b.timing.BurstCycle() == 0 {
		return fmt.Errorf("%w: burst length %d",
			ErrInvalidOrganization, b.timing.BurstLength)
	}

	if b.timing.TCKNS <= 0 {
		return fmt.Errorf("%w: tCK %g ns", ErrInvalidOrganization, b.timing.TCKNS)
	}

	return nil
}

// NewBankedModel builds a model of the given protocol with its preset timing.
func NewBankedModel(
	name string,
	p Protocol,
	opts Options,
) (*BankedModel, error) {
	return MakeBuilder().
		WithProtocol(p).
		WithOptions(opts).
		Build(name)
}

func (m *BankedModel) initStats() {
	m.stats = stats.NewGroup(m.name, m.timing.Protocol.String()+" timing model")
	m.stats.Scalar("tCK", "Memory clock period in ns", m.timing.TCKNS)
	m.incomingReads = m.stats.Counter("incoming_read_requests",
		"Read requests accepted by the model")
	m.incomingWrites = m.stats.Counter("incoming_write_requests",
		"Write requests accepted by the model")
	m.rejected = m.stats.Counter("rejected_requests",
		"Requests refused because the channel queue was full")
	m.served = m.stats.Counter("served_requests",
		"Requests whose data transfer has finished")
	m.cycles = m.stats.Counter("memory_cycles", "Cycles ticked")
	m.queueOccupancy = m.stats.Counter("queue_occupancy_sum",
		"Sum over cycles of the number of queued requests")
	m.avgQueueOccupancy = m.stats.Scalar("avg_queue_occupancy",
		"Average number of queued requests, set at finish", 0)
}
