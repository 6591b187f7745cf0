// Package stats holds the counters reported by the memory controller and the
// DRAM model, and writes them to a line-oriented statistics file.
package stats

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// A Stat is a single named value that can be dumped to the stats file.
type Stat interface {
	Name() string
	Desc() string
	String() string
}

// Counter is a monotonically non-decreasing unsigned value.
type Counter struct {
	name  string
	desc  string
	value atomic.Uint64
}

// NewCounter creates a counter that starts at zero.
func NewCounter(name, desc string) *Counter {
	return &Counter{name: name, desc: desc}
}

// Name returns the name of the counter.
func (c *Counter) Name() string { return c.name }

// Desc returns the description of the counter.
func (c *Counter) Desc() string { return c.desc }

// Inc adds one to the counter.
func (c *Counter) Inc() { c.value.Add(1) }

// Add adds n to the counter.
func (c *Counter) Add(n uint64) { c.value.Add(n) }

// Value returns the current value.
func (c *Counter) Value() uint64 { return c.value.Load() }

func (c *Counter) String() string {
	return fmt.Sprintf("%d", c.Value())
}

// Scalar is a floating point value that may be overwritten, such as a clock
// period.
type Scalar struct {
	name string
	desc string
	bits atomic.Uint64
}

// NewScalar creates a scalar with an initial value.
func NewScalar(name, desc string, v float64) *Scalar {
	s := &Scalar{name: name, desc: desc}
	s.Set(v)

	return s
}

// Name returns the name of the scalar.
func (s *Scalar) Name() string { return s.name }

// Desc returns the description of the scalar.
func (s *Scalar) Desc() string { return s.desc }

// Set replaces the value.
func (s *Scalar) Set(v float64) { s.bits.Store(math.Float64bits(v)) }

// Value returns the current value.
func (s *Scalar) Value() float64 { return math.Float64frombits(s.bits.Load()) }

func (s *Scalar) String() string {
	return fmt.Sprintf("%g", s.Value())
}

// Group is a named collection of stats and nested groups. Entries keep their
// registration order.
type Group struct {
	lock   sync.RWMutex
	name   string
	desc   string
	stats  []Stat
	groups []*Group
	names  map[string]bool
}

// NewGroup creates an empty group.
func NewGroup(name, desc string) *Group {
	return &Group{
		name:  name,
		desc:  desc,
		names: make(map[string]bool),
	}
}

// Name returns the name of the group.
func (g *Group) Name() string { return g.name }

// Desc returns the description of the group.
func (g *Group) Desc() string { return g.desc }

// Counter registers and returns a new counter. Registering the same name
// twice panics.
func (g *Group) Counter(name, desc string) *Counter {
	c := NewCounter(name, desc)
	g.Register(c)

	return c
}

// Scalar registers and returns a new scalar.
func (g *Group) Scalar(name, desc string, v float64) *Scalar {
	s := NewScalar(name, desc, v)
	g.Register(s)

	return s
}

// Register adds an existing stat to the group.
func (g *Group) Register(s Stat) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.mustBeNewName(s.Name())
	g.stats = append(g.stats, s)
}

// AddGroup nests a child group.
func (g *Group) AddGroup(child *Group) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.mustBeNewName(child.Name())
	g.groups = append(g.groups, child)
}

func (g *Group) mustBeNewName(name string) {
	if g.names[name] {
		panic(fmt.Sprintf("stats: %q already registered in group %q",
			name, g.name))
	}

	g.names[name] = true
}

// Stats returns the stats directly registered in the group.
func (g *Group) Stats() []Stat {
	g.lock.RLock()
	defer g.lock.RUnlock()

	out := make([]Stat, len(g.stats))
	copy(out, g.stats)

	return out
}

// Groups returns the nested groups.
func (g *Group) Groups() []*Group {
	g.lock.RLock()
	defer g.lock.RUnlock()

	out := make([]*Group, len(g.groups))
	copy(out, g.groups)

	return out
}

// Entry is one flattened stat with its fully qualified name.
type Entry struct {
	Name  string
	Value string
	Desc  string
}

// Flatten walks the group depth first and returns every stat with its name
// prefixed by the enclosing group names, joined by dots.
func (g *Group) Flatten() []Entry {
	var entries []Entry
	g.flattenInto("", &entries)

	return entries
}

func (g *Group) flattenInto(prefix string, entries *[]Entry) {
	qualified := g.name
	if prefix != "" {
		qualified = prefix + "." + g.name
	}

	for _, s := range g.Stats() {
		*entries = append(*entries, Entry{
			Name:  qualified + "." + s.Name(),
			Value: s.String(),
			Desc:  s.Desc(),
		})
	}

	for _, child := range g.Groups() {
		child.flattenInto(qualified, entries)
	}
}
