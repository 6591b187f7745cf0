package timing

import (
	"container/heap"
	"sync"
)

type queuedEvent struct {
	*ScheduledEvent
	seq uint64
}

// eventQueue orders events by cycle, then primary before secondary, then
// by push order. The push order keeps retries of the same cycle
// deterministic.
type eventQueue struct {
	lock    sync.Mutex
	events  eventHeap
	nextSeq uint64
}

func (q *eventQueue) push(evt *ScheduledEvent) {
	q.lock.Lock()
	heap.Push(&q.events, queuedEvent{ScheduledEvent: evt, seq: q.nextSeq})
	q.nextSeq++
	q.lock.Unlock()
}

// pop removes the earliest event, or returns nil when the queue is empty.
func (q *eventQueue) pop() *ScheduledEvent {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	return heap.Pop(&q.events).(queuedEvent).ScheduledEvent
}

func (q *eventQueue) len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.events)
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]

	switch {
	case a.Time != b.Time:
		return a.Time < b.Time
	case a.IsSecondary != b.IsSecondary:
		return !a.IsSecondary
	default:
		return a.seq < b.seq
	}
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(queuedEvent)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	evt := old[n-1]
	*h = old[:n-1]

	return evt
}
