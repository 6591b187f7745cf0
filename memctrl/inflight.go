package memctrl

import (
	"fmt"

	"github.com/google/btree"

	"github.com/sarchlab/dramctrl/dram"
)

type inflightEntry struct {
	addr        uint64
	id          string
	ev          HostEvent
	kind        dram.Kind
	domain      int
	submitCycle uint64
}

func (e *inflightEntry) Less(than btree.Item) bool {
	return e.addr < than.(*inflightEntry).addr
}

// inflightTable maps addresses to pending host events. At most one request
// per address may be outstanding.
type inflightTable struct {
	tree *btree.BTree
}

func newInflightTable() *inflightTable {
	return &inflightTable{tree: btree.New(16)}
}

func (t *inflightTable) has(addr uint64) bool {
	return t.tree.Has(&inflightEntry{addr: addr})
}

func (t *inflightTable) insert(e *inflightEntry) error {
	if t.tree.Has(e) {
		return fmt.Errorf("%w: address %#x is already in flight",
			ErrInFlightConsistencyViolation, e.addr)
	}

	t.tree.ReplaceOrInsert(e)

	return nil
}

func (t *inflightTable) remove(addr uint64) (*inflightEntry, error) {
	item := t.tree.Delete(&inflightEntry{addr: addr})
	if item == nil {
		return nil, fmt.Errorf("%w: completion for address %#x with no "+
			"in-flight request", ErrInFlightConsistencyViolation, addr)
	}

	return item.(*inflightEntry), nil
}

func (t *inflightTable) len() int {
	return t.tree.Len()
}

func (t *inflightTable) addresses() []uint64 {
	addrs := make([]uint64, 0, t.tree.Len())

	t.tree.Ascend(func(i btree.Item) bool {
		addrs = append(addrs, i.(*inflightEntry).addr)
		return true
	})

	return addrs
}
