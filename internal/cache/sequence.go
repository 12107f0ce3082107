package cache

import "sync/atomic"

// Sequencer provides monotonically increasing sequence numbers used to
// order fetches per tag and discard superseded responses.
type Sequencer struct{ n atomic.Uint64 }

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 { return s.n.Add(1) }
