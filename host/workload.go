package host

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/dramctrl/memctrl"
)

// ErrMalformedTrace is returned when a trace line cannot be parsed.
var ErrMalformedTrace = errors.New("malformed trace")

// Entry is one access a core issues.
type Entry struct {
	Cycle    uint64
	LineAddr uint64
	Type     memctrl.AccessType
}

// Workload feeds a core with accesses in issue order.
type Workload interface {
	// Peek returns the next access without consuming it.
	Peek() (Entry, bool)
	Pop()
	Len() int
}

// SliceWorkload replays a fixed list of entries.
type SliceWorkload struct {
	entries []Entry
}

// NewSliceWorkload creates a workload from entries sorted by cycle. The sort
// is stable, so entries of the same cycle keep their order.
func NewSliceWorkload(entries []Entry) *SliceWorkload {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Cycle < sorted[j].Cycle
	})

	return &SliceWorkload{entries: sorted}
}

// Peek returns the next entry.
func (w *SliceWorkload) Peek() (Entry, bool) {
	if len(w.entries) == 0 {
		return Entry{}, false
	}

	return w.entries[0], true
}

// Pop drops the next entry.
func (w *SliceWorkload) Pop() {
	w.entries = w.entries[1:]
}

// Len returns the number of entries left.
func (w *SliceWorkload) Len() int {
	return len(w.entries)
}

var accessTypes = map[string]memctrl.AccessType{
	"GETS": memctrl.GETS,
	"GETX": memctrl.GETX,
	"PUTS": memctrl.PUTS,
	"PUTX": memctrl.PUTX,
}

// ReadTrace parses a CSV trace with the columns cycle, core, type and line
// address. The line address may be decimal or 0x-prefixed hexadecimal. A
// header row starting with "cycle" is skipped. Entries are grouped by core.
func ReadTrace(r io.Reader) (map[int][]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	out := make(map[int][]Entry)

	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTrace, err)
		}

		if line == 1 && strings.EqualFold(record[0], "cycle") {
			continue
		}

		core, entry, err := parseTraceRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTrace, line, err)
		}

		out[core] = append(out[core], entry)
	}
}

func parseTraceRecord(record []string) (int, Entry, error) {
	cycle, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return 0, Entry{}, err
	}

	core, err := strconv.Atoi(record[1])
	if err != nil || core < 0 {
		return 0, Entry{}, fmt.Errorf("bad core %q", record[1])
	}

	typ, ok := accessTypes[strings.ToUpper(record[2])]
	if !ok {
		return 0, Entry{}, fmt.Errorf("bad access type %q", record[2])
	}

	addr, err := strconv.ParseUint(record[3], 0, 64)
	if err != nil {
		return 0, Entry{}, err
	}

	return core, Entry{Cycle: cycle, LineAddr: addr, Type: typ}, nil
}

// LoadTrace reads a trace file and returns one workload per core, indexed by
// core ID. Cores absent from the trace get an empty workload.
func LoadTrace(path string) ([]Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	perCore, err := ReadTrace(f)
	if err != nil {
		return nil, err
	}

	numCores := 0
	for core := range perCore {
		numCores = max(numCores, core+1)
	}

	workloads := make([]Workload, numCores)
	for i := range workloads {
		workloads[i] = NewSliceWorkload(perCore[i])
	}

	return workloads, nil
}

// SyntheticConfig shapes a generated workload.
type SyntheticConfig struct {
	Seed           int64
	NumAccesses    int
	MaxGap         uint64 // cycles between consecutive accesses
	FootprintLines uint64
	WriteRatio     float64 // share of GETX among fetches
	WritebackRatio float64 // share of writebacks among all accesses
	DirtyRatio     float64 // share of PUTX among writebacks
}

// DefaultSyntheticConfig returns a read-mostly stream over 64 Ki lines.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Seed:           1,
		NumAccesses:    1000,
		MaxGap:         4,
		FootprintLines: 1 << 16,
		WriteRatio:     0.3,
		WritebackRatio: 0.2,
		DirtyRatio:     0.5,
	}
}

// NewSyntheticWorkload generates a reproducible random workload. Cores given
// different seeds get different streams.
func NewSyntheticWorkload(cfg SyntheticConfig) *SliceWorkload {
	rng := rand.New(rand.NewSource(cfg.Seed))
	entries := make([]Entry, 0, cfg.NumAccesses)
	footprint := max(cfg.FootprintLines, 1)

	var cycle uint64
	for i := 0; i < cfg.NumAccesses; i++ {
		if cfg.MaxGap > 0 {
			cycle += uint64(rng.Int63n(int64(cfg.MaxGap) + 1))
		}

		entries = append(entries, Entry{
			Cycle:    cycle,
			LineAddr: uint64(rng.Int63n(int64(footprint))),
			Type:     pickType(rng, cfg),
		})
	}

	return NewSliceWorkload(entries)
}

func pickType(rng *rand.Rand, cfg SyntheticConfig) memctrl.AccessType {
	if rng.Float64() < cfg.WritebackRatio {
		if rng.Float64() < cfg.DirtyRatio {
			return memctrl.PUTX
		}

		return memctrl.PUTS
	}

	if rng.Float64() < cfg.WriteRatio {
		return memctrl.GETX
	}

	return memctrl.GETS
}
