package vm

import (
	"fmt"

	"github.com/tarun2001sharma/Virtual-Memory-Management/internal/vmerr"
)

// invariantf builds a fatal, stack-trace-bearing error for a condition
// the engine must never hit (spec.md §7: "invariant violations ... halt
// the process"). Callers panic with it; cmd/vmsim recovers at the top
// level only to log the stack before exiting nonzero.
func invariantf(format string, args ...interface{}) error {
	return vmerr.Invariant(format, args...)
}

// CheckInvariants walks the frame table and process tables and verifies
// the ownership invariants spec.md §8 requires to hold after every
// instruction: the frame<->PTE back-pointer agrees in both directions,
// and a frame is in the free list iff it is unowned. It returns the
// first violation found, or nil. Tests use this after every Step to
// catch a broken invariant at the instruction that caused it, rather
// than only at the end of a run.
func (s *Simulator) CheckInvariants() error {
	for i := range s.frames.Frames {
		f := &s.frames.Frames[i]
		inFree := s.free.Contains(i)

		if f.Free() {
			if !inFree {
				return fmt.Errorf("frame %d is free but missing from the free list", i)
			}
			continue
		}

		if inFree {
			return fmt.Errorf("frame %d is occupied by pid %d but also in the free list", i, f.ProcessID)
		}

		proc := s.processes.Get(f.ProcessID)
		if proc == nil {
			return fmt.Errorf("frame %d claims tenant pid %d which does not exist", i, f.ProcessID)
		}
		pte := &proc.PageTable[f.VPage]
		if !pte.Present() {
			return fmt.Errorf("frame %d tenant pid %d vpage %d has a non-present PTE", i, f.ProcessID, f.VPage)
		}
		if pte.FrameNumber() != i {
			return fmt.Errorf("frame %d tenant pid %d vpage %d PTE points at frame %d instead", i, f.ProcessID, f.VPage, pte.FrameNumber())
		}
	}

	for _, proc := range s.processes.All() {
		for vpage := 0; vpage < PageTableSize; vpage++ {
			pte := &proc.PageTable[vpage]
			if !pte.Present() {
				continue
			}
			f := &s.frames.Frames[pte.FrameNumber()]
			if f.ProcessID != proc.Pid || f.VPage != vpage {
				return fmt.Errorf("pid %d vpage %d PTE points at frame %d which is bound to pid %d vpage %d instead", proc.Pid, vpage, pte.FrameNumber(), f.ProcessID, f.VPage)
			}
		}
	}

	return nil
}
