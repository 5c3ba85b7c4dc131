package vm

// fault runs the page-fault service routine for proc's vpage, which is
// covered by vma but not currently present (spec.md §4.4). Events are
// emitted in the fixed order: UNMAP -> (OUT|FOUT) -> (IN|FIN|ZERO) ->
// MAP.
func (s *Simulator) fault(proc *Process, vpage int, vma *VMA) {
	pte := &proc.PageTable[vpage]

	// Step 1: copy the covering VMA's flags into the PTE. This is
	// idempotent and may overwrite stale values from a prior mapping.
	pte.SetWriteProtect(vma.WriteProtected)
	pte.SetFileMapped(vma.FileMapped)

	// Step 2: obtain a frame, evicting if necessary.
	frameIdx := s.getFrame()
	frame := &s.frames.Frames[frameIdx]

	// Step 3: if occupied, unmap the prior tenant.
	if !frame.Free() {
		s.unmapForEviction(frameIdx)
	}

	// Step 4: page-in classification for the faulting PTE.
	switch {
	case pte.FileMapped():
		s.emit(Event{Kind: EventFin})
		proc.Stats.Fins++
	case pte.PagedOut():
		s.emit(Event{Kind: EventIn})
		proc.Stats.Ins++
	default:
		s.emit(Event{Kind: EventZero})
		proc.Stats.Zeros++
	}
	frame.Dirty = false

	// Step 5: map.
	frame.Occupy(proc.Pid, vpage, s.InstCount)
	pte.SetPresent()
	pte.SetFrameNumber(frameIdx)
	s.emit(Event{Kind: EventMap, FrameIndex: frameIdx})
	proc.Stats.Maps++
}

// unmapForEviction evicts the current tenant of an occupied frame that
// the allocator chose as a victim for a new mapping (spec.md §4.4 step
// 3). This is the fault-driven eviction path, distinct from exitProcess
// in exit.go: a dirty anonymous page here becomes OUT, but on exit it is
// discarded silently.
func (s *Simulator) unmapForEviction(frameIdx int) {
	frame := &s.frames.Frames[frameIdx]
	tenant := s.processes.Get(frame.ProcessID)
	if tenant == nil {
		panic(invariantf("frame %d occupied by unknown process %d", frameIdx, frame.ProcessID))
	}
	pte := &tenant.PageTable[frame.VPage]
	if !pte.Present() || pte.FrameNumber() != frameIdx {
		panic(invariantf("frame %d tenant pte out of sync (present=%v frame=%d)", frameIdx, pte.Present(), pte.FrameNumber()))
	}

	s.emit(Event{Kind: EventUnmap, ProcessID: tenant.Pid, VPage: frame.VPage})
	tenant.Stats.Unmaps++

	if frame.Dirty {
		if pte.FileMapped() {
			s.emit(Event{Kind: EventFout})
			tenant.Stats.Fouts++
		} else {
			s.emit(Event{Kind: EventOut})
			tenant.Stats.Outs++
			pte.SetPagedOut()
		}
	}

	pte.Unmap()
	frame.Dirty = false
	frame.Release()
}
