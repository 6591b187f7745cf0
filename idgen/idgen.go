// Package idgen provides ID generators for requests and events.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// New returns a sequential generator whose first emitted ID is "1". Runs that
// use it are reproducible.
func New() Generator {
	return &sequentialGenerator{}
}

// NewGlobal returns a generator whose IDs are unique across processes. Use it
// when records from several runs are merged into one database.
func NewGlobal() Generator {
	return globalGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() string {
	return strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
}

type globalGenerator struct{}

func (globalGenerator) Generate() string {
	return xid.New().String()
}
