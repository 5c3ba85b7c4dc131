package vm

// exitProcess runs process exit cleanup over all 64 PTEs (spec.md §4.6).
// Unlike fault-driven eviction, a dirty anonymous page is discarded
// silently here — no OUT is ever emitted on exit, only FOUT for
// file-mapped dirty pages. This is the behavior spec.md §9 calls out
// explicitly as the resolution of its first open question.
func (s *Simulator) exitProcess(proc *Process) {
	for vpage := 0; vpage < PageTableSize; vpage++ {
		pte := &proc.PageTable[vpage]
		pte.ClearPagedOut()

		if !pte.Present() {
			continue
		}

		frameIdx := pte.FrameNumber()
		frame := &s.frames.Frames[frameIdx]

		s.emit(Event{Kind: EventUnmap, ProcessID: proc.Pid, VPage: vpage})
		proc.Stats.Unmaps++

		if frame.Dirty && pte.FileMapped() {
			s.emit(Event{Kind: EventFout})
			proc.Stats.Fouts++
		}

		pte.Unmap()
		frame.Dirty = false
		frame.Release()
		s.free.Push(frameIdx)
	}

	s.emit(Event{Kind: EventExit, ProcessID: proc.Pid})
}
