package vm

// newTestSimulator builds a Simulator with numFrames frames and one
// process per entry in vmaLists, each with exactly the VMAs in its entry
// (fullVMA builds one covering the whole page table).
func newTestSimulator(numFrames int, vmaLists [][]VMA, policy Policy, random *RandomSource) *Simulator {
	processes := NewProcessTable(vmaLists)
	return NewSimulator(numFrames, processes, policy, random)
}

// fullVMA is a single VMA covering every virtual page, used by tests
// that don't care about SEGV/VMA boundaries.
func fullVMA(writeProtected, fileMapped bool) []VMA {
	return []VMA{{StartVPage: 0, EndVPage: PageTableSize - 1, WriteProtected: writeProtected, FileMapped: fileMapped}}
}

// occupy directly binds frame frameIdx to (pid, vpage) without going
// through the fault handler, for policy unit tests that need a known
// starting layout. It keeps the frame<->PTE back-pointer consistent so
// CheckInvariants still passes.
func occupy(sim *Simulator, frameIdx, pid, vpage int) {
	f := &sim.frames.Frames[frameIdx]
	f.ProcessID = pid
	f.VPage = vpage

	pte := &sim.processes.Get(pid).PageTable[vpage]
	pte.SetPresent()
	pte.SetFrameNumber(frameIdx)

	// Drain the frame from the free list so CheckInvariants' "occupied
	// implies not free" half holds for tests that call it.
	for i, idx := range sim.free.queue {
		if idx == frameIdx {
			sim.free.queue = append(sim.free.queue[:i], sim.free.queue[i+1:]...)
			break
		}
	}
}

// recordingSink collects every emitted event in order, for tests that
// want to assert on the event sequence rather than just counters.
type recordingSink struct {
	events []Event
}

func (r *recordingSink) Emit(ev Event) { r.events = append(r.events, ev) }
