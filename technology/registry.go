// Package technology maps memory technology names to timing model
// constructors.
package technology

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sarchlab/dramctrl/dram"
)

// ErrUnknownTechnology is returned when a name is not in the registry.
var ErrUnknownTechnology = errors.New("unknown technology")

// Constructor builds a timing model.
type Constructor func(name string, opts dram.Options) (dram.Model, error)

// Entry binds a technology name to its constructor.
type Entry struct {
	Name        string
	Constructor Constructor
}

// Registry is an immutable name to constructor mapping.
type Registry struct {
	entries map[string]Constructor
}

// NewRegistry creates a registry from the entries. A later entry with the same
// name replaces an earlier one.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Constructor, len(entries))}

	for _, e := range entries {
		r.entries[e.Name] = e.Constructor
	}

	return r
}

// Resolve returns the constructor registered under the name.
func (r *Registry) Resolve(name string) (Constructor, error) {
	c, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTechnology, name)
	}

	return c, nil
}

// Names lists the registered technologies in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// BankedModel returns a constructor that builds the reference banked model
// with the protocol's preset timing.
func BankedModel(p dram.Protocol) Constructor {
	return func(name string, opts dram.Options) (dram.Model, error) {
		return dram.NewBankedModel(name, p, opts)
	}
}

// DefaultRegistry contains every protocol the reference model supports.
func DefaultRegistry() *Registry {
	protocols := []dram.Protocol{
		dram.DDR3, dram.DDR4, dram.LPDDR3, dram.LPDDR4, dram.GDDR5,
		dram.WideIO, dram.WideIO2, dram.HBM,
		dram.SALP1, dram.SALP2, dram.SALPMASA,
	}

	entries := make([]Entry, 0, len(protocols))
	for _, p := range protocols {
		entries = append(entries, Entry{
			Name:        p.String(),
			Constructor: BankedModel(p),
		})
	}

	return NewRegistry(entries...)
}
