package memctrl

// Splitter interleaves cache lines across several memory objects. Line L is
// served by object L mod n, which sees it as line L div n.
type Splitter struct {
	name string
	mems []MemObject
}

// NewSplitter creates a splitter over mems, which must not be empty.
func NewSplitter(name string, mems ...MemObject) *Splitter {
	if len(mems) == 0 {
		panic("memctrl: splitter needs at least one memory object")
	}

	return &Splitter{name: name, mems: mems}
}

// Name returns the name of the splitter.
func (s *Splitter) Name() string {
	return s.name
}

// Access forwards the request with a controller-local line address. The
// request's line address is restored before returning.
func (s *Splitter) Access(req *MemReq) uint64 {
	addr := req.LineAddr
	n := uint64(len(s.mems))

	req.LineAddr = addr / n
	respCycle := s.mems[addr%n].Access(req)
	req.LineAddr = addr

	return respCycle
}

var _ MemObject = (*Splitter)(nil)
