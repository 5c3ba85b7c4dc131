package vm

// Frame is one physical-frame slot: its current tenant (process id and
// virtual page, or FreeProcess when unowned) plus the per-policy
// bookkeeping fields the replacement policies read and mutate
// (spec.md §3, §4.3). No bytes are ever actually stored here — this is
// pure bookkeeping, per spec.md §1's non-goals.
type Frame struct {
	ProcessID   int
	VPage       int
	Dirty       bool
	AgeBits     uint32
	LastUseInst int
}

// Free reports whether this frame is currently unowned.
func (f *Frame) Free() bool { return f.ProcessID == FreeProcess }

// Occupy binds this frame to a tenant and resets the bookkeeping fields
// a fresh mapping starts with (spec.md §4.4 step 5).
func (f *Frame) Occupy(pid, vpage int, now int) {
	f.ProcessID = pid
	f.VPage = vpage
	f.AgeBits = 0
	f.LastUseInst = now
}

// Release marks this frame unowned. Dirty is cleared by the caller at
// the point the dirty page has been accounted for (OUT/FOUT decision),
// not here, so Release never hides a pending write-back.
func (f *Frame) Release() {
	f.ProcessID = FreeProcess
	f.VPage = 0
}

// FrameTable is the fixed-size ordered array of frame slots.
type FrameTable struct {
	Frames []Frame
}

// NewFrameTable builds a table of n frames, all initially free.
func NewFrameTable(n int) *FrameTable {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i].ProcessID = FreeProcess
	}
	return &FrameTable{Frames: frames}
}

// Len returns the number of frames in the pool.
func (t *FrameTable) Len() int { return len(t.Frames) }
