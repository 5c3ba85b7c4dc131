package report

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vm"
)

// EventDigest folds an emitted event stream into a single deterministic
// checksum, in emission order. It implements vm.Sink, so it can be
// attached to a Simulator directly in place of a TraceWriter (a
// Simulator holds one Sink at a time). Two runs of the same input can
// then be compared by their Sum64 values, a check of the determinism law
// in spec.md §8 that needs no comparison of large strings.
type EventDigest struct {
	h *xxhash.XXHash64
}

// NewEventDigest returns a digest ready to accumulate events.
func NewEventDigest() *EventDigest {
	return &EventDigest{h: xxhash.New64()}
}

// Emit folds one event into the running checksum.
func (d *EventDigest) Emit(ev vm.Event) {
	var buf [13]byte
	buf[0] = byte(ev.Kind)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(ev.ProcessID))
	binary.LittleEndian.PutUint32(buf[5:9], uint32(ev.VPage))
	binary.LittleEndian.PutUint32(buf[9:13], uint32(ev.FrameIndex))
	d.h.Write(buf[:])
}

// Sum64 returns the checksum of every event folded in so far.
func (d *EventDigest) Sum64() uint64 {
	return d.h.Sum64()
}

// DigestEvents is a convenience wrapper for a pre-collected event slice.
func DigestEvents(events []vm.Event) uint64 {
	d := NewEventDigest()
	for _, ev := range events {
		d.Emit(ev)
	}
	return d.Sum64()
}
