package dram

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type completion struct {
	req   Request
	cycle uint64
}

var _ = Describe("BankedModel", func() {
	var (
		m         *BankedModel
		completed []completion
	)

	tickUntil := func(n int) {
		for i := 0; i < n; i++ {
			m.Tick()
		}
	}

	BeforeEach(func() {
		var err error
		m, err = MakeBuilder().
			WithProtocol(DDR3).
			WithQueueSize(4).
			Build("DRAM")
		Expect(err).NotTo(HaveOccurred())

		completed = nil
		m.OnComplete(func(req Request) {
			completed = append(completed, completion{req, m.cycle})
		})
	})

	It("should finish a read after activation, CAS and burst", func() {
		Expect(m.Send(Request{Addr: 0x40, Kind: Read})).To(BeTrue())

		tickUntil(1 + 11 + 11 + 4)

		Expect(completed).To(HaveLen(1))
		Expect(completed[0].req.Addr).To(Equal(uint64(0x40)))
		Expect(completed[0].cycle).To(Equal(uint64(27)))
	})

	It("should finish a write using the write latency", func() {
		Expect(m.Send(Request{Addr: 0, Kind: Write})).To(BeTrue())

		tickUntil(1 + 11 + 8 + 3)
		Expect(completed).To(BeEmpty())

		m.Tick()
		Expect(completed).To(HaveLen(1))
		Expect(completed[0].req.IsWrite()).To(BeTrue())
	})

	It("should reject requests once the channel queue is full", func() {
		for i := 0; i < 4; i++ {
			Expect(m.Send(Request{Addr: uint64(i) << 6})).To(BeTrue())
		}

		Expect(m.Send(Request{Addr: 0x1000})).To(BeFalse())
		Expect(m.rejected.Value()).To(Equal(uint64(1)))
		Expect(m.NumQueued()).To(Equal(4))
	})

	It("should accept again after a request finishes", func() {
		for i := 0; i < 4; i++ {
			m.Send(Request{Addr: uint64(i) << 6})
		}

		for len(completed) == 0 {
			m.Tick()
		}

		Expect(m.Send(Request{Addr: 0x1000})).To(BeTrue())
	})

	It("should let a later request to an idle bank overtake", func() {
		// Lines 0 and 8 share bank 0; line 1 is in bank 1.
		m.Send(Request{Addr: 0 << 6, Domain: 0})
		m.Send(Request{Addr: 8 << 6, Domain: 1})
		m.Send(Request{Addr: 1 << 6, Domain: 2})

		for len(completed) < 3 {
			m.Tick()
		}

		Expect(completed[0].req.Domain).To(Equal(0))
		Expect(completed[1].req.Domain).To(Equal(2))
		Expect(completed[2].req.Domain).To(Equal(1))
	})

	It("should serialize bursts on the shared data bus", func() {
		m.Send(Request{Addr: 0 << 6})
		m.Send(Request{Addr: 1 << 6})

		for len(completed) < 2 {
			m.Tick()
		}

		Expect(completed[1].cycle - completed[0].cycle).
			To(Equal(uint64(m.timing.BurstCycle())))
	})

	It("should compute averages at finish", func() {
		m.Send(Request{Addr: 0})
		tickUntil(10)

		m.Finish()
		m.Finish()

		Expect(m.avgQueueOccupancy.Value()).To(BeNumerically("==", 1.0))
		Expect(m.cycles.Value()).To(Equal(uint64(10)))
	})
})

var _ = Describe("Builder", func() {
	It("should reject a cacheline size that is not a power of two", func() {
		_, err := MakeBuilder().WithCachelineSize(48).Build("DRAM")

		Expect(err).To(MatchError(ErrInvalidOrganization))
	})

	It("should reject an empty queue", func() {
		_, err := NewBankedModel("DRAM", HBM, Options{
			CachelineSize: 64, Channels: 1, Ranks: 1, QueueSize: 0,
		})

		Expect(err).To(MatchError(ErrInvalidOrganization))
	})

	It("should use the protocol's bank count unless overridden", func() {
		m, err := NewBankedModel("DRAM", DDR4, Options{
			CachelineSize: 64, Channels: 2, Ranks: 2, QueueSize: 8,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.channels).To(HaveLen(2))
		Expect(m.channels[0].banks).To(HaveLen(2 * 16))

		m, err = NewBankedModel("DRAM", DDR4, Options{
			CachelineSize: 64, Channels: 1, Ranks: 1, Banks: 4, QueueSize: 8,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.channels[0].banks).To(HaveLen(4))
	})

	It("should multiply banks by subarrays for SALP", func() {
		m, err := NewBankedModel("DRAM", SALPMASA, Options{
			CachelineSize: 64, Channels: 1, Ranks: 1, QueueSize: 8,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(m.channels[0].banks).To(HaveLen(8 * 8))
		Expect(m.ClockNS()).To(Equal(DDR3.Timing().TCKNS))
	})
})

var _ = Describe("Protocol", func() {
	It("should use a quarter of the burst length on GDDR5", func() {
		Expect(GDDR5.Timing().BurstCycle()).To(Equal(2))
		Expect(DDR3.Timing().BurstCycle()).To(Equal(4))
	})

	It("should print protocol names", func() {
		Expect(SALP2.String()).To(Equal("SALP-2"))
		Expect(Protocol(99).String()).To(Equal("unknown"))
	})
})
