// Package sequence issues strictly monotonic sequence numbers. The
// engine stamps every accepted order with one; within a price level
// the smaller stamp always fills and displays first.
package sequence

import "sync/atomic"

type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer that will hand out start+1 first.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence number.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
