// Package vm implements the paging subsystem: the frame table,
// per-process page tables bound by virtual memory areas, the
// page-fault service routine, and the interchangeable replacement
// policies that select eviction victims.
package vm

const (
	// PageTableSize is the fixed number of virtual pages per process.
	PageTableSize = 64

	// MaxFrames is the largest pool size a simulation can run with; a
	// frame index must fit in the PTE's 7-bit frame_number field.
	MaxFrames = 128

	// FreeProcess marks a frame slot as unowned.
	FreeProcess = -1
)

// VMA is a virtual memory area: a contiguous, attribute-tagged range of
// virtual pages owned by a process. Page ranges are inclusive and,
// within one process, disjoint. A VMA is immutable once the process is
// loaded.
type VMA struct {
	StartVPage     int
	EndVPage       int
	WriteProtected bool
	FileMapped     bool
}

// Covers reports whether vpage falls within this area.
func (v VMA) Covers(vpage int) bool {
	return vpage >= v.StartVPage && vpage <= v.EndVPage
}

// ProcessStats are the per-process event counters from spec.md §3.
// They are unsigned by contract: no stat is ever decremented.
type ProcessStats struct {
	Unmaps   uint64
	Maps     uint64
	Ins      uint64
	Outs     uint64
	Fins     uint64
	Fouts    uint64
	Zeros    uint64
	Segv     uint64
	Segprot  uint64
}

// TotalCost returns this process's contribution to the weighted total
// cost line (§6): maps·350 + unmaps·410 + ins·3200 + outs·2750 +
// fins·2350 + fouts·2800 + zeros·150 + segv·440 + segprot·410.
func (s ProcessStats) TotalCost() uint64 {
	return s.Maps*350 + s.Unmaps*410 + s.Ins*3200 + s.Outs*2750 +
		s.Fins*2350 + s.Fouts*2800 + s.Zeros*150 + s.Segv*440 + s.Segprot*410
}
