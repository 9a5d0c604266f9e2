package agent

import "sync/atomic"

// Sequencer stamps each issued load of one logical operation with a
// monotonically increasing sequence number. A response is committed only if
// its stamp is still the latest issued, so a slow stale response can never
// overwrite the result of a later load.
type Sequencer struct {
	latest atomic.Uint64
}

// Begin issues a new sequence stamp for an outgoing load.
func (s *Sequencer) Begin() uint64 {
	return s.latest.Add(1)
}

// Latest reports whether seq is still the most recently issued stamp.
func (s *Sequencer) Latest(seq uint64) bool {
	return s.latest.Load() == seq
}
