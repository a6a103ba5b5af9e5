package event

import "sort"

// Queue is an ordered sequence of events. push does not sort; sort is a
// separate, explicit stable operation the driver calls immediately before
// handing the queue to a plugin's process() call.
type Queue struct {
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event without sorting.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Sort stably orders the queue by non-decreasing TimeSamples. Events at
// the same time keep their relative insertion order.
func (q *Queue) Sort() {
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].Header.TimeSamples < q.events[j].Header.TimeSamples
	})
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Get returns the event at index, panicking like a slice index would if
// out of range — callers only ever iterate [0, Len()).
func (q *Queue) Get(index int) Event {
	return q.events[index]
}

// Iter returns a copy of the queue contents in current order; later Push
// calls do not change the returned slice. Queue has no internal locking,
// so Iter must not run concurrently with Push.
func (q *Queue) Iter() []Event {
	out := make([]Event, len(q.events))
	copy(out, q.events)
	return out
}

// Drain returns the queued events and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Clear empties the queue without returning its contents.
func (q *Queue) Clear() {
	q.events = q.events[:0]
}

// IsSorted reports whether the queue currently satisfies the
// non-decreasing time invariant; used by tests.
func (q *Queue) IsSorted() bool {
	return sort.SliceIsSorted(q.events, func(i, j int) bool {
		return q.events[i].Header.TimeSamples < q.events[j].Header.TimeSamples
	})
}
