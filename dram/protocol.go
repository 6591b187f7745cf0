package dram

// Protocol defines the category of the memory technology.
type Protocol int

// A list of all supported DRAM protocols.
const (
	DDR3 Protocol = iota
	DDR4
	LPDDR3
	LPDDR4
	GDDR5
	WideIO
	WideIO2
	HBM
	SALP1
	SALP2
	SALPMASA
)

var protocolNames = map[Protocol]string{
	DDR3:     "DDR3",
	DDR4:     "DDR4",
	LPDDR3:   "LPDDR3",
	LPDDR4:   "LPDDR4",
	GDDR5:    "GDDR5",
	WideIO:   "WideIO",
	WideIO2:  "WideIO2",
	HBM:      "HBM",
	SALP1:    "SALP-1",
	SALP2:    "SALP-2",
	SALPMASA: "SALP-MASA",
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}

	return "unknown"
}

func (p Protocol) isGDDR() bool {
	return p == GDDR5
}

// TimingSpec holds the timing parameters of a protocol, in memory cycles.
type TimingSpec struct {
	Protocol Protocol

	TCKNS       float64
	BurstLength int

	TCL  int
	TCWL int
	TRCD int
	TRP  int
	TRAS int

	// Banks per rank.
	Banks int

	// Subarrays is the number of independently operable subarrays per bank.
	// Values above one model subarray-level parallelism.
	Subarrays int
}

// BurstCycle is the number of cycles the data bus is occupied by a burst.
func (t TimingSpec) BurstCycle() int {
	if t.Protocol.isGDDR() {
		return t.BurstLength / 4
	}

	return t.BurstLength / 2
}

// ReadLatency is the number of cycles from activation to the first read data.
func (t TimingSpec) ReadLatency() int {
	return t.TRCD + t.TCL
}

// WriteLatency is the number of cycles from activation to the first write
// data.
func (t TimingSpec) WriteLatency() int {
	return t.TRCD + t.TCWL
}

// Timing returns the preset timing of the protocol.
func (p Protocol) Timing() TimingSpec {
	switch p {
	case DDR4:
		return TimingSpec{Protocol: p, TCKNS: 0.833, BurstLength: 8,
			TCL: 16, TCWL: 12, TRCD: 16, TRP: 16, TRAS: 39, Banks: 16,
			Subarrays: 1}
	case LPDDR3:
		return TimingSpec{Protocol: p, TCKNS: 1.25, BurstLength: 8,
			TCL: 12, TCWL: 6, TRCD: 15, TRP: 16, TRAS: 34, Banks: 8,
			Subarrays: 1}
	case LPDDR4:
		return TimingSpec{Protocol: p, TCKNS: 0.625, BurstLength: 16,
			TCL: 28, TCWL: 14, TRCD: 29, TRP: 29, TRAS: 68, Banks: 8,
			Subarrays: 1}
	case GDDR5:
		return TimingSpec{Protocol: p, TCKNS: 0.667, BurstLength: 8,
			TCL: 18, TCWL: 15, TRCD: 18, TRP: 18, TRAS: 42, Banks: 16,
			Subarrays: 1}
	case WideIO:
		return TimingSpec{Protocol: p, TCKNS: 3.75, BurstLength: 4,
			TCL: 3, TCWL: 1, TRCD: 3, TRP: 3, TRAS: 9, Banks: 4,
			Subarrays: 1}
	case WideIO2:
		return TimingSpec{Protocol: p, TCKNS: 1.875, BurstLength: 4,
			TCL: 9, TCWL: 4, TRCD: 9, TRP: 9, TRAS: 21, Banks: 8,
			Subarrays: 1}
	case HBM:
		return TimingSpec{Protocol: p, TCKNS: 1.0, BurstLength: 4,
			TCL: 7, TCWL: 4, TRCD: 7, TRP: 7, TRAS: 17, Banks: 16,
			Subarrays: 1}
	case SALP1, SALP2, SALPMASA:
		t := DDR3.Timing()
		t.Protocol = p
		t.Subarrays = map[Protocol]int{SALP1: 2, SALP2: 4, SALPMASA: 8}[p]

		return t
	default:
		return TimingSpec{Protocol: DDR3, TCKNS: 1.25, BurstLength: 8,
			TCL: 11, TCWL: 8, TRCD: 11, TRP: 11, TRAS: 28, Banks: 8,
			Subarrays: 1}
	}
}
