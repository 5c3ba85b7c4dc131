package vm

// access runs the read/write access path for the current process
// against vpage (spec.md §4.5).
func (s *Simulator) access(opcode byte, vpage int) {
	proc := s.current
	if proc == nil {
		panic(invariantf("%c %d with no current process", opcode, vpage))
	}

	vma := proc.FindVMA(vpage)
	if vma == nil {
		s.emit(Event{Kind: EventSegv})
		proc.Stats.Segv++
		return
	}

	pte := &proc.PageTable[vpage]
	if !pte.Present() {
		s.fault(proc, vpage, vma)
	}

	pte.SetReferenced()

	if opcode == 'w' {
		if !pte.WriteProtect() {
			pte.SetModified()
			s.frames.Frames[pte.FrameNumber()].Dirty = true
		} else {
			s.emit(Event{Kind: EventSegprot})
			proc.Stats.Segprot++
		}
	}
}
